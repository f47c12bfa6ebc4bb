package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"recommendations/helper"
	"recommendations/models"
	"recommendations/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	service services.RecommendationService
	helper  *helper.HTTPHelper
}

func NewRecommendationHandler(service services.RecommendationService, httpHelper *helper.HTTPHelper) *RecommendationHandler {
	return &RecommendationHandler{service: service, helper: httpHelper}
}

func (h *RecommendationHandler) Create(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	rec, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/recommendations/%d", rec.ID))
	c.JSON(http.StatusCreated, rec)
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) List(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendErrorWithStatus(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecommendationHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecommendationHandler) Like(c *gin.Context) {
	h.action(c, h.service.Like)
}

func (h *RecommendationHandler) Dislike(c *gin.Context) {
	h.action(c, h.service.Dislike)
}

func (h *RecommendationHandler) Activate(c *gin.Context) {
	h.action(c, h.service.Activate)
}

func (h *RecommendationHandler) Cancel(c *gin.Context) {
	h.action(c, h.service.Cancel)
}

func (h *RecommendationHandler) Send(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, receipt, err := h.service.Send(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracking_code":  receipt.TrackingCode,
		"sent_at":        receipt.SentAt,
		"recommendation": rec,
	})
}

// action runs a state-machine operation that takes only an id.
func (h *RecommendationHandler) action(c *gin.Context, fn func(ctx context.Context, id uint) (*models.Recommendation, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, err := fn(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// parseID reads the :id path parameter.
func (h *RecommendationHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.helper.SendErrorWithStatus(c, http.StatusBadRequest, "Invalid recommendation id")
		return 0, false
	}
	return uint(id), true
}

// bindPayload enforces the exact application/json content type, decodes the
// body and runs constraint validation. Shape errors (wrong JSON type for a
// field) surface as InvalidValue, matching the enum-token contract.
func (h *RecommendationHandler) bindPayload(c *gin.Context) (*models.RecommendationPayload, bool) {
	if c.ContentType() != "application/json" {
		h.helper.SendErrorWithStatus(c, http.StatusUnsupportedMediaType,
			"Content-Type must be application/json")
		return nil, false
	}

	var payload models.RecommendationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.helper.SendError(c, &models.InvalidValueError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("field %q must be of type %s", typeErr.Field, typeErr.Type),
			})
			return nil, false
		}
		h.helper.SendErrorWithStatus(c, http.StatusBadRequest, "Invalid data: "+err.Error())
		return nil, false
	}

	if err := h.helper.ValidatePayload(&payload); err != nil {
		h.helper.SendError(c, err)
		return nil, false
	}

	return &payload, true
}
