package repositories

import (
	"context"
	"errors"
	"fmt"

	"recommendations/models"

	"gorm.io/gorm"
)

// ListFilter is the normalized query built by the service layer. SortColumn
// is already validated against the sort whitelist before it reaches GORM.
type ListFilter struct {
	BaseProductID *int
	Type          *models.RecommendationType
	Status        *models.RecommendationStatus
	SortColumn    string
	SortDesc      bool
	Limit         int
	Offset        int
}

type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	Update(ctx context.Context, rec *models.Recommendation) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Recommendation, error)
	GetByName(ctx context.Context, name string) ([]models.Recommendation, error)
	GetAll(ctx context.Context) ([]models.Recommendation, error)
	List(ctx context.Context, filter ListFilter) ([]models.Recommendation, int64, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// Create inserts the record. The store is authoritative for id assignment,
// so any caller-supplied id is discarded before the insert.
func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		rec.ID = 0
		return &models.DataValidationError{Err: err}
	}
	return nil
}

func (r *recommendationRepository) Update(ctx context.Context, rec *models.Recommendation) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return &models.DataValidationError{Err: err}
	}
	return nil
}

func (r *recommendationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Recommendation{}, id).Error; err != nil {
		return &models.DataValidationError{Err: err}
	}
	return nil
}

// GetByID returns (nil, nil) when no record exists; not-found is not an error.
func (r *recommendationRepository) GetByID(ctx context.Context, id uint) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) GetByName(ctx context.Context, name string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.WithContext(ctx).Where("name = ?", name).Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) GetAll(ctx context.Context) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.WithContext(ctx).Find(&recs).Error
	return recs, err
}

// List applies the filter clauses, counts the filtered set, then applies
// ordering and pagination. Filters compose by AND only.
func (r *recommendationRepository) List(ctx context.Context, filter ListFilter) ([]models.Recommendation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recommendation{})

	if filter.BaseProductID != nil {
		query = query.Where("base_product_id = ?", *filter.BaseProductID)
	}
	if filter.Type != nil {
		query = query.Where("recommendation_type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "asc"
	if filter.SortDesc {
		direction = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", filter.SortColumn, direction))

	var recs []models.Recommendation
	err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&recs).Error
	return recs, total, err
}
