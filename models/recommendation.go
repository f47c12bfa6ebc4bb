package models

import (
	"fmt"
	"time"
)

// RecommendationType classifies why two products are linked.
type RecommendationType string

const (
	TypeCrossSell RecommendationType = "cross_sell"
	TypeUpSell    RecommendationType = "up_sell"
	TypeAccessory RecommendationType = "accessory"
	TypeTrending  RecommendationType = "trending"
)

// RecommendationStatus is the lifecycle state of a recommendation.
// StatusDeleted is a valid vocabulary token but no action transitions into it.
type RecommendationStatus string

const (
	StatusActive   RecommendationStatus = "active"
	StatusInactive RecommendationStatus = "inactive"
	StatusDraft    RecommendationStatus = "draft"
	StatusDeleted  RecommendationStatus = "deleted"
)

// ParseRecommendationType converts a string token to a RecommendationType.
func ParseRecommendationType(value string) (RecommendationType, error) {
	switch t := RecommendationType(value); t {
	case TypeCrossSell, TypeUpSell, TypeAccessory, TypeTrending:
		return t, nil
	}
	return "", &InvalidValueError{Field: "recommendation_type", Value: value}
}

// ParseRecommendationStatus converts a string token to a RecommendationStatus.
func ParseRecommendationStatus(value string) (RecommendationStatus, error) {
	switch s := RecommendationStatus(value); s {
	case StatusActive, StatusInactive, StatusDraft, StatusDeleted:
		return s, nil
	}
	return "", &InvalidValueError{Field: "status", Value: value}
}

// Recommendation is a directed product-pair relationship record.
type Recommendation struct {
	ID                   uint                 `json:"id" gorm:"primarykey"`
	Name                 string               `json:"name" gorm:"size:63;not null"`
	BaseProductID        int                  `json:"base_product_id" gorm:"not null"`
	RecommendedProductID int                  `json:"recommended_product_id" gorm:"not null"`
	RecommendationType   RecommendationType   `json:"recommendation_type" gorm:"size:32;not null"`
	Status               RecommendationStatus `json:"status" gorm:"size:32;not null;default:'draft'"`
	Likes                int                  `json:"likes" gorm:"not null;default:0"`
	MerchantSendCount    int                  `json:"merchant_send_count" gorm:"not null;default:0"`
	LastSentAt           *time.Time           `json:"last_sent_at"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func (r *Recommendation) String() string {
	return fmt.Sprintf("<Recommendation %d: %d -> %d (%s)>",
		r.ID, r.BaseProductID, r.RecommendedProductID, r.RecommendationType)
}

// Deserialize populates the record from a payload. Required fields are
// checked first, in a fixed order, and nothing is assigned until every
// check has passed, so a failed call never leaves the record half-updated.
func (r *Recommendation) Deserialize(payload *RecommendationPayload) error {
	if payload.Name == nil {
		return &MissingFieldError{Field: "name"}
	}
	if payload.RecommendationType == nil {
		return &MissingFieldError{Field: "recommendation_type"}
	}
	if payload.BaseProductID == nil {
		return &MissingFieldError{Field: "base_product_id"}
	}
	if payload.RecommendedProductID == nil {
		return &MissingFieldError{Field: "recommended_product_id"}
	}
	if payload.Status == nil {
		return &MissingFieldError{Field: "status"}
	}

	recType, err := ParseRecommendationType(*payload.RecommendationType)
	if err != nil {
		return err
	}
	status, err := ParseRecommendationStatus(*payload.Status)
	if err != nil {
		return err
	}

	likes := 0
	if payload.Likes != nil {
		if *payload.Likes < 0 {
			return &InvalidValueError{Field: "likes", Value: fmt.Sprint(*payload.Likes)}
		}
		likes = *payload.Likes
	}

	r.Name = *payload.Name
	r.RecommendationType = recType
	r.BaseProductID = *payload.BaseProductID
	r.RecommendedProductID = *payload.RecommendedProductID
	r.Status = status
	r.Likes = likes

	return nil
}
