package handlers

import (
	"errors"
	"net/http"

	"recommendations/helper"
	"recommendations/models"
	"recommendations/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, helper: httpHelper}
}

// IssueToken exchanges the configured service-account credentials for a
// bearer token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendErrorWithStatus(c, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.authService.IssueToken(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.helper.SendErrorWithStatus(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.helper.SendErrorWithStatus(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	c.JSON(http.StatusOK, resp)
}
