package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

func testDefaults() *model.PipelineConfig {
	return &model.PipelineConfig{
		DefaultDestination: "강릉",
		DefaultStartDate:   "2025-05-01",
		DefaultEndDate:     "2025-05-02",
	}
}

func TestParseIntent(t *testing.T) {
	raw := `{"intent_type": "travel_plan", "destination": "부산", "start_date": "2025-06-10", "end_date": "2025-06-12"}`

	intent, err := ParseIntent(raw, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, model.LabelTravelPlan, intent.Label)
	assert.Equal(t, "부산", intent.Destination)
	assert.Equal(t, "2025-06-10", intent.StartDate)
	assert.Equal(t, "2025-06-12", intent.EndDate)
}

func TestParseIntentStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"intent_type\": \"restaurant_search\", \"destination\": \"전주\"}\n```"

	intent, err := ParseIntent(raw, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, model.LabelRestaurantSearch, intent.Label)
	assert.Equal(t, "전주", intent.Destination)
}

func TestParseIntentAppliesDefaults(t *testing.T) {
	raw := `{"intent_type": "spot_search", "destination": "", "start_date": "not-a-date", "end_date": ""}`

	intent, err := ParseIntent(raw, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "강릉", intent.Destination)
	assert.Equal(t, "2025-05-01", intent.StartDate)
	assert.Equal(t, "2025-05-02", intent.EndDate)
}

func TestParseIntentRepairsInvertedDates(t *testing.T) {
	raw := `{"intent_type": "travel_plan", "destination": "제주", "start_date": "2025-06-12", "end_date": "2025-06-10"}`

	intent, err := ParseIntent(raw, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", intent.EndDate)
}

func TestParseIntentRejectsUnknownLabel(t *testing.T) {
	_, err := ParseIntent(`{"intent_type": "flight_search"}`, testDefaults())
	assert.Error(t, err)
}

func TestParseIntentRejectsGarbage(t *testing.T) {
	_, err := ParseIntent("죄송해요, JSON을 만들 수 없어요.", testDefaults())
	assert.Error(t, err)

	_, err = ParseIntent("", testDefaults())
	assert.Error(t, err)
}
