package augment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

type fakeCongestion struct {
	reviews map[string]int
	delay   time.Duration
}

func (f *fakeCongestion) PlaceStats(ctx context.Context, placeID string) (string, float64, int, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", 0, 0, ctx.Err()
		}
	}
	n, ok := f.reviews[placeID]
	if !ok {
		return "", 0, 0, errors.New("place not found")
	}
	return "name-" + placeID, 4.2, n, nil
}

type fakeDirections struct {
	fare *model.RouteFare
	err  error
}

func (f *fakeDirections) Route(_ context.Context, _, _ string) (*model.RouteFare, error) {
	return f.fare, f.err
}

type fakePrices struct {
	rate int
	err  error
}

func (f *fakePrices) LowestNightlyRate(_ context.Context, _, _, _ string, _ int) (int, error) {
	return f.rate, f.err
}

func TestEstimateCongestionBuckets(t *testing.T) {
	tests := []struct {
		reviews int
		level   string
	}{
		{reviews: 0, level: "여유"},
		{reviews: 99, level: "여유"},
		{reviews: 100, level: "보통"},
		{reviews: 499, level: "보통"},
		{reviews: 500, level: "붐빔"},
		{reviews: 1999, level: "붐빔"},
		{reviews: 2000, level: "매우 붐빔"},
	}
	for _, tt := range tests {
		level, rec := EstimateCongestion(tt.reviews)
		assert.Equal(t, tt.level, level, "reviews=%d", tt.reviews)
		assert.NotEmpty(t, rec)
	}
}

func planAggregate() *model.Aggregate {
	return &model.Aggregate{
		Destination: "강릉",
		DailyPlans: map[int]*model.DailyItinerary{
			1: {
				DayNumber: 1,
				Date:      "2025-05-01",
				Items: []model.ItineraryItem{
					{Time: "10:00", PlaceName: "경포대", PlaceID: "spot-1", Category: model.CategoryLandmark},
					{Time: "12:00", PlaceName: "초당순두부", PlaceID: "rest-1", Category: model.CategoryRestaurant},
				},
			},
		},
	}
}

func planIntent() *model.Intent {
	return &model.Intent{
		Label:       model.LabelTravelPlan,
		Destination: "강릉",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-02",
	}
}

func TestAugmentAnnotatesAttractionsOnly(t *testing.T) {
	a := &Augmenter{
		Congestion:    &fakeCongestion{reviews: map[string]int{"spot-1": 650}},
		Timeout:       time.Second,
		Persons:       2,
		DefaultBudget: 500000,
	}

	agg := a.Augment(context.Background(), planIntent(), &model.SearchResults{}, planAggregate())
	items := agg.DailyPlans[1].Items

	require.NotNil(t, items[0].Crowd)
	assert.Equal(t, "붐빔", items[0].Crowd.PopularityLevel)
	assert.Equal(t, 650, items[0].Crowd.ReviewCount)
	assert.Nil(t, items[1].Crowd)
}

func TestAugmentTimeoutReturnsOriginal(t *testing.T) {
	a := &Augmenter{
		Congestion: &fakeCongestion{reviews: map[string]int{"spot-1": 10}, delay: 500 * time.Millisecond},
		Timeout:    20 * time.Millisecond,
		Persons:    2,
	}

	original := planAggregate()
	agg := a.Augment(context.Background(), planIntent(), &model.SearchResults{}, original)

	assert.Same(t, original, agg)
	assert.Nil(t, agg.DailyPlans[1].Items[0].Crowd)
	assert.Nil(t, agg.Budget)
}

func TestAugmentSkipsNonPlanIntents(t *testing.T) {
	a := &Augmenter{Timeout: time.Second}
	original := planAggregate()

	intent := &model.Intent{Label: model.LabelRestaurantSearch, Destination: "강릉"}
	agg := a.Augment(context.Background(), intent, &model.SearchResults{}, original)

	assert.Same(t, original, agg)
}

func TestEstimateBudgetWithLiveLookups(t *testing.T) {
	e := &BudgetEstimator{
		Directions: &fakeDirections{fare: &model.RouteFare{TaxiFare: 150000, TollFare: 10000}},
		Prices:     &fakePrices{rate: 90000},
		Origin:     "서울",
	}
	results := &model.SearchResults{
		Accommodations: []model.PlaceData{{Name: "세인트존스 호텔", Category: model.CategoryAccommodation}},
	}

	budget := e.Estimate(context.Background(), planIntent(), results, 2, 1500000)

	// Round trip for two plus one night at the live rate.
	assert.Equal(t, 640000, budget.Spent["transportation"])
	assert.Equal(t, 90000, budget.Spent["accommodation"])
	assert.Equal(t, 120000, budget.Spent["food"])      // 30000 * 2 persons * 2 days
	assert.Equal(t, 200000, budget.Spent["other"])     // 50000 * 2 persons * 2 days
	assert.Equal(t, 90000, budget.Spent["admission"])  // 강릉 top fees * 2 persons
	assert.Equal(t, 1500000-1140000, budget.Remaining) // sums to 1140000
	assert.False(t, budget.Warning)
}

func TestEstimateBudgetFallbacks(t *testing.T) {
	e := &BudgetEstimator{
		Directions: &fakeDirections{err: errors.New("navi down")},
		Prices:     &fakePrices{err: errors.New("no rates")},
		Origin:     "서울",
	}
	results := &model.SearchResults{
		Accommodations: []model.PlaceData{{Name: "경포 호텔", Category: model.CategoryAccommodation}},
	}

	budget := e.Estimate(context.Background(), planIntent(), results, 2, 100000)

	assert.Equal(t, 80000, budget.Spent["transportation"]) // 20000 * 2 * 2
	assert.Equal(t, 80000, budget.Spent["accommodation"])  // 호텔 base * 강릉 1.0 * 1 night
	assert.True(t, budget.Warning)
	assert.Negative(t, budget.Remaining)
}

func TestEstimateBudgetMatchesRegionBySubstring(t *testing.T) {
	e := &BudgetEstimator{Origin: "서울"}
	results := &model.SearchResults{
		Accommodations: []model.PlaceData{{Name: "경포 호텔", Category: model.CategoryAccommodation}},
	}

	for _, destination := range []string{"강릉시", "강원도 강릉"} {
		intent := &model.Intent{
			Label:       model.LabelTravelPlan,
			Destination: destination,
			StartDate:   "2025-05-01",
			EndDate:     "2025-05-02",
		}
		budget := e.Estimate(context.Background(), intent, results, 2, 1500000)
		assert.Equal(t, 90000, budget.Spent["admission"], destination)    // 강릉 fees * 2 persons
		assert.Equal(t, 80000, budget.Spent["accommodation"], destination) // 호텔 base * 강릉 1.0 * 1 night
	}

	// The district key beats its parent city.
	intent := &model.Intent{
		Label:       model.LabelTravelPlan,
		Destination: "부산 해운대",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-02",
	}
	budget := e.Estimate(context.Background(), intent, results, 2, 1500000)
	assert.Equal(t, 96000, budget.Spent["accommodation"]) // 호텔 base * 해운대 1.2 * 1 night
}

func TestEstimateBudgetUnknownRegionAdmission(t *testing.T) {
	e := &BudgetEstimator{Origin: "서울"}
	intent := &model.Intent{
		Label:       model.LabelTravelPlan,
		Destination: "양양",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-01",
	}

	budget := e.Estimate(context.Background(), intent, &model.SearchResults{}, 3, 500000)

	assert.Equal(t, 24000, budget.Spent["admission"]) // fallback fees * 3 persons
	assert.Zero(t, budget.Spent["accommodation"])     // day trip, no nights
}
