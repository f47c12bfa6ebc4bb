package models

import "time"

// RecommendationPayload is the request body for create and update. Pointer
// fields distinguish absent keys from zero values so Deserialize can name
// the missing one.
type RecommendationPayload struct {
	Name                 *string `json:"name" validate:"omitempty,max=63"`
	RecommendationType   *string `json:"recommendation_type"`
	BaseProductID        *int    `json:"base_product_id"`
	RecommendedProductID *int    `json:"recommended_product_id"`
	Status               *string `json:"status"`
	Likes                *int    `json:"likes"`
}

// ListParams are the raw query parameters of the list endpoint.
// product_a_id and base_product_id are aliases for the same column.
type ListParams struct {
	ProductAID       *int   `form:"product_a_id"`
	BaseProductID    *int   `form:"base_product_id"`
	RelationshipType string `form:"relationship_type"`
	Status           string `form:"status"`
	Sort             string `form:"sort"`
	Limit            *int   `form:"limit"`
	Offset           *int   `form:"offset"`
}

// ListResult is the paginated list envelope.
type ListResult struct {
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Count  int              `json:"count"`
	Items  []Recommendation `json:"items"`
}

// SendReceipt is the response of the send action. The tracking code is
// generated per call and not persisted.
type SendReceipt struct {
	TrackingCode      string    `json:"tracking_code"`
	SentAt            time.Time `json:"sent_at"`
	MerchantSendCount int       `json:"merchant_send_count"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
