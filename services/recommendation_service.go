package services

import (
	"context"
	"strconv"
	"time"

	"recommendations/models"
	"recommendations/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// sortWhitelist maps the accepted sort tokens to their order clause.
// Unknown sort tokens are a client error; the enum filters stay permissive.
var sortWhitelist = map[string]struct {
	column string
	desc   bool
}{
	"id_asc":          {"id", false},
	"id_desc":         {"id", true},
	"name_asc":        {"name", false},
	"name_desc":       {"name", true},
	"created_at_asc":  {"created_at", false},
	"created_at_desc": {"created_at", true},
}

type RecommendationService interface {
	Create(ctx context.Context, payload *models.RecommendationPayload) (*models.Recommendation, error)
	Get(ctx context.Context, id uint) (*models.Recommendation, error)
	Update(ctx context.Context, id uint, payload *models.RecommendationPayload) (*models.Recommendation, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) (*models.ListResult, error)
	Like(ctx context.Context, id uint) (*models.Recommendation, error)
	Dislike(ctx context.Context, id uint) (*models.Recommendation, error)
	Activate(ctx context.Context, id uint) (*models.Recommendation, error)
	Cancel(ctx context.Context, id uint) (*models.Recommendation, error)
	Send(ctx context.Context, id uint) (*models.Recommendation, *models.SendReceipt, error)
}

type recommendationService struct {
	repo   repositories.RecommendationRepository
	logger *zap.SugaredLogger
}

func NewRecommendationService(repo repositories.RecommendationRepository, logger *zap.SugaredLogger) RecommendationService {
	return &recommendationService{repo: repo, logger: logger}
}

func (s *recommendationService) Create(ctx context.Context, payload *models.RecommendationPayload) (*models.Recommendation, error) {
	rec := &models.Recommendation{}
	if err := rec.Deserialize(payload); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Errorw("error creating record", "name", rec.Name, "error", err)
		return nil, err
	}
	s.logger.Infow("created recommendation", "id", rec.ID, "name", rec.Name)
	return rec, nil
}

func (s *recommendationService) Get(ctx context.Context, id uint) (*models.Recommendation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &models.NotFoundError{ID: id}
	}
	return rec, nil
}

// Update is a full replace of the mutable fields from the payload.
func (s *recommendationService) Update(ctx context.Context, id uint, payload *models.RecommendationPayload) (*models.Recommendation, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.Deserialize(payload); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Errorw("error updating record", "id", id, "error", err)
		return nil, err
	}
	s.logger.Infow("updated recommendation", "id", rec.ID)
	return rec, nil
}

func (s *recommendationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Errorw("error deleting record", "id", id, "error", err)
		return err
	}
	s.logger.Infow("deleted recommendation", "id", id)
	return nil
}

// List normalizes the raw query parameters into a repository filter.
// The enum filters are permissive (an unparseable token is ignored); the
// sort token and pagination bounds are strict.
func (s *recommendationService) List(ctx context.Context, params models.ListParams) (*models.ListResult, error) {
	filter := repositories.ListFilter{
		SortColumn: "id",
		Limit:      defaultLimit,
	}

	// product_a_id and base_product_id alias the same column; first non-null wins.
	if params.ProductAID != nil {
		filter.BaseProductID = params.ProductAID
	} else if params.BaseProductID != nil {
		filter.BaseProductID = params.BaseProductID
	}

	if params.RelationshipType != "" {
		recType, err := models.ParseRecommendationType(params.RelationshipType)
		if err != nil {
			s.logger.Warnw("invalid relationship_type value, ignoring filter", "value", params.RelationshipType)
		} else {
			filter.Type = &recType
		}
	}

	if params.Status != "" {
		status, err := models.ParseRecommendationStatus(params.Status)
		if err != nil {
			s.logger.Warnw("invalid status value, ignoring filter", "value", params.Status)
		} else {
			filter.Status = &status
		}
	}

	if params.Sort != "" {
		order, ok := sortWhitelist[params.Sort]
		if !ok {
			return nil, &models.InvalidValueError{Field: "sort", Value: params.Sort}
		}
		filter.SortColumn = order.column
		filter.SortDesc = order.desc
	}

	if params.Limit != nil {
		if *params.Limit < 1 || *params.Limit > maxLimit {
			return nil, &models.InvalidValueError{Field: "limit", Value: strconv.Itoa(*params.Limit)}
		}
		filter.Limit = *params.Limit
	}
	if params.Offset != nil {
		if *params.Offset < 0 {
			return nil, &models.InvalidValueError{Field: "offset", Value: strconv.Itoa(*params.Offset)}
		}
		filter.Offset = *params.Offset
	}

	recs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	s.logger.Infow("listed recommendations", "count", len(recs), "total", total)

	return &models.ListResult{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Count:  len(recs),
		Items:  recs,
	}, nil
}

func (s *recommendationService) Like(ctx context.Context, id uint) (*models.Recommendation, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.StatusActive {
		return nil, &models.ConflictError{Message: "Only active recommendations can be liked"}
	}
	rec.Likes++
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Dislike decrements the like counter with a floor at zero; a dislike at
// zero is a no-op, not an error.
func (s *recommendationService) Dislike(ctx context.Context, id uint) (*models.Recommendation, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.StatusActive {
		return nil, &models.ConflictError{Message: "Only active recommendations can be disliked"}
	}
	if rec.Likes > 0 {
		rec.Likes--
		if err := s.repo.Update(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (s *recommendationService) Activate(ctx context.Context, id uint) (*models.Recommendation, error) {
	return s.transition(ctx, id, models.StatusActive)
}

func (s *recommendationService) Cancel(ctx context.Context, id uint) (*models.Recommendation, error) {
	return s.transition(ctx, id, models.StatusInactive)
}

func (s *recommendationService) transition(ctx context.Context, id uint, target models.RecommendationStatus) (*models.Recommendation, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == target {
		return rec, nil
	}
	rec.Status = target
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Infow("status transition", "id", rec.ID, "status", target)
	return rec, nil
}

// Send records a merchant send on any existing record regardless of status
// and returns a one-time tracking code that is not persisted.
func (s *recommendationService) Send(ctx context.Context, id uint) (*models.Recommendation, *models.SendReceipt, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	rec.MerchantSendCount++
	rec.LastSentAt = &now
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, nil, err
	}
	receipt := &models.SendReceipt{
		TrackingCode:      uuid.NewString(),
		SentAt:            now,
		MerchantSendCount: rec.MerchantSendCount,
	}
	s.logger.Infow("sent recommendation", "id", rec.ID, "tracking_code", receipt.TrackingCode)
	return rec, receipt, nil
}
