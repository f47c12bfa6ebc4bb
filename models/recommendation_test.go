package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factorySequence int

// factoryPayload builds a valid payload, cycling through the enum
// vocabularies the way the original data factory does.
func factoryPayload() *RecommendationPayload {
	factorySequence++
	types := []RecommendationType{TypeCrossSell, TypeUpSell, TypeAccessory, TypeTrending}
	statuses := []RecommendationStatus{StatusActive, StatusInactive, StatusDraft}

	name := fmt.Sprintf("recommendation-%d", factorySequence)
	recType := string(types[factorySequence%len(types)])
	status := string(statuses[factorySequence%len(statuses)])
	baseID := 100 + factorySequence
	recommendedID := 200 + factorySequence
	likes := 0

	return &RecommendationPayload{
		Name:                 &name,
		RecommendationType:   &recType,
		BaseProductID:        &baseID,
		RecommendedProductID: &recommendedID,
		Status:               &status,
		Likes:                &likes,
	}
}

func TestDeserializeValidPayload(t *testing.T) {
	payload := factoryPayload()
	var rec Recommendation

	require.NoError(t, rec.Deserialize(payload))

	assert.Equal(t, *payload.Name, rec.Name)
	assert.Equal(t, *payload.RecommendationType, string(rec.RecommendationType))
	assert.Equal(t, *payload.BaseProductID, rec.BaseProductID)
	assert.Equal(t, *payload.RecommendedProductID, rec.RecommendedProductID)
	assert.Equal(t, *payload.Status, string(rec.Status))
	assert.Equal(t, 0, rec.Likes)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	var original Recommendation
	require.NoError(t, original.Deserialize(factoryPayload()))

	body, err := json.Marshal(&original)
	require.NoError(t, err)

	var payload RecommendationPayload
	require.NoError(t, json.Unmarshal(body, &payload))

	var restored Recommendation
	require.NoError(t, restored.Deserialize(&payload))

	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.RecommendationType, restored.RecommendationType)
	assert.Equal(t, original.BaseProductID, restored.BaseProductID)
	assert.Equal(t, original.RecommendedProductID, restored.RecommendedProductID)
	assert.Equal(t, original.Status, restored.Status)
}

func TestDeserializeMissingFields(t *testing.T) {
	cases := []struct {
		field string
		strip func(p *RecommendationPayload)
	}{
		{"name", func(p *RecommendationPayload) { p.Name = nil }},
		{"recommendation_type", func(p *RecommendationPayload) { p.RecommendationType = nil }},
		{"base_product_id", func(p *RecommendationPayload) { p.BaseProductID = nil }},
		{"recommended_product_id", func(p *RecommendationPayload) { p.RecommendedProductID = nil }},
		{"status", func(p *RecommendationPayload) { p.Status = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			payload := factoryPayload()
			tc.strip(payload)

			var rec Recommendation
			err := rec.Deserialize(payload)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestDeserializeMissingFieldOrderIsDeterministic(t *testing.T) {
	// With everything absent, the first required field is reported.
	var rec Recommendation
	err := rec.Deserialize(&RecommendationPayload{})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Field)
}

func TestDeserializeInvalidEnumTokens(t *testing.T) {
	badType := "bundle"
	payload := factoryPayload()
	payload.RecommendationType = &badType

	var rec Recommendation
	var invalid *InvalidValueError
	require.ErrorAs(t, rec.Deserialize(payload), &invalid)
	assert.Equal(t, "recommendation_type", invalid.Field)

	badStatus := "long"
	payload = factoryPayload()
	payload.Status = &badStatus
	require.ErrorAs(t, rec.Deserialize(payload), &invalid)
	assert.Equal(t, "status", invalid.Field)
}

func TestDeserializeNegativeLikes(t *testing.T) {
	payload := factoryPayload()
	likes := -1
	payload.Likes = &likes

	var rec Recommendation
	var invalid *InvalidValueError
	require.ErrorAs(t, rec.Deserialize(payload), &invalid)
	assert.Equal(t, "likes", invalid.Field)
}

func TestDeserializeFailureLeavesRecordUntouched(t *testing.T) {
	var rec Recommendation
	require.NoError(t, rec.Deserialize(factoryPayload()))
	before := rec

	bad := factoryPayload()
	bad.Status = nil
	require.Error(t, rec.Deserialize(bad))

	assert.Equal(t, before, rec)
}

func TestParseRecommendationType(t *testing.T) {
	for _, token := range []string{"cross_sell", "up_sell", "accessory", "trending"} {
		parsed, err := ParseRecommendationType(token)
		require.NoError(t, err)
		assert.Equal(t, token, string(parsed))
	}

	_, err := ParseRecommendationType("CROSS_SELL")
	assert.Error(t, err)
}

func TestParseRecommendationStatus(t *testing.T) {
	for _, token := range []string{"active", "inactive", "draft", "deleted"} {
		parsed, err := ParseRecommendationStatus(token)
		require.NoError(t, err)
		assert.Equal(t, token, string(parsed))
	}

	_, err := ParseRecommendationStatus("archived")
	assert.Error(t, err)
}

func TestStringContainsKeyInfo(t *testing.T) {
	var rec Recommendation
	require.NoError(t, rec.Deserialize(factoryPayload()))
	rec.ID = 42

	text := rec.String()
	assert.Contains(t, text, fmt.Sprint(rec.BaseProductID))
	assert.Contains(t, text, fmt.Sprint(rec.RecommendedProductID))
	assert.Contains(t, text, string(rec.RecommendationType))
	assert.True(t, len(text) > 0 && text[0] == '<')
}
