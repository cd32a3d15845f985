package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

func places(category model.Category, names ...string) []model.PlaceData {
	out := make([]model.PlaceData, 0, len(names))
	for i, n := range names {
		out = append(out, model.PlaceData{
			Name:        n,
			PlaceID:     fmt.Sprintf("%s-%d", category, i),
			Category:    category,
			Rating:      4.5,
			ReviewCount: 120,
		})
	}
	return out
}

func planIntent(start, end string) *model.Intent {
	return &model.Intent{
		Label:       model.LabelTravelPlan,
		Destination: "강릉",
		StartDate:   start,
		EndDate:     end,
	}
}

func TestBuildPlanSlotsOneDay(t *testing.T) {
	results := &model.SearchResults{
		Landmarks:   places(model.CategoryLandmark, "경포대", "오죽헌", "안목해변"),
		Restaurants: places(model.CategoryRestaurant, "초당순두부", "중앙시장 닭강정"),
		Desserts:    places(model.CategoryCafe, "테라로사"),
	}

	agg := NewBuilder().Build(planIntent("2025-05-01", "2025-05-01"), results)
	require.Len(t, agg.DailyPlans, 1)

	day := agg.DailyPlans[1]
	require.NotNil(t, day)
	assert.Equal(t, "2025-05-01", day.Date)
	assert.False(t, day.SimpleList)

	var got []string
	for _, item := range day.Items {
		got = append(got, item.Time+" "+item.PlaceName)
	}
	assert.Equal(t, []string{
		"10:00 경포대",
		"12:00 초당순두부",
		"13:30 오죽헌",
		"16:00 테라로사",
		"17:30 안목해변",
		"18:30 중앙시장 닭강정",
	}, got)

	// 90 + 60 + 120 + 60 + 60 + 90 minutes
	assert.Equal(t, "약 8시간", day.TotalDuration)
	assert.Equal(t, "⭐ 4.5 (120)", day.Items[0].Notes)
}

func TestBuildPlanAlwaysOneDay(t *testing.T) {
	results := &model.SearchResults{
		Landmarks:   places(model.CategoryLandmark, "경포대", "오죽헌", "주문진항", "정동진"),
		Restaurants: places(model.CategoryRestaurant, "초당순두부", "동화가든"),
		Desserts:    places(model.CategoryCafe, "테라로사", "보헤미안"),
	}

	// A multi-day travel window still produces a single-day plan.
	agg := NewBuilder().Build(planIntent("2025-05-01", "2025-05-02"), results)
	require.Len(t, agg.DailyPlans, 1)

	day := agg.DailyPlans[1]
	require.NotNil(t, day)
	assert.Equal(t, 1, day.DayNumber)
	assert.Equal(t, "2025-05-01", day.Date)
	assert.Equal(t, "경포대", day.Items[0].PlaceName)
}

func TestBuildPlanDropsExcessMealsAndCafes(t *testing.T) {
	results := &model.SearchResults{
		Landmarks:   places(model.CategoryLandmark, "경포대"),
		Restaurants: places(model.CategoryRestaurant, "초당순두부", "동화가든", "엄지네포장마차"),
		Desserts:    places(model.CategoryCafe, "테라로사", "보헤미안"),
	}

	agg := NewBuilder().Build(planIntent("2025-05-01", "2025-05-01"), results)
	day := agg.DailyPlans[1]

	var names []string
	for _, item := range day.Items {
		assert.NotEqual(t, "09:00", item.Time)
		names = append(names, item.PlaceName)
	}
	// Only the slotted places survive: morning spot, lunch, cafe break, dinner.
	assert.Equal(t, []string{"경포대", "초당순두부", "테라로사", "동화가든"}, names)
	assert.NotContains(t, names, "엄지네포장마차")
	assert.NotContains(t, names, "보헤미안")
}

func TestBuildSimpleList(t *testing.T) {
	results := &model.SearchResults{
		Restaurants: places(model.CategoryRestaurant, "초당순두부", "동화가든"),
	}
	intent := &model.Intent{Label: model.LabelRestaurantSearch, Destination: "강릉", StartDate: "2025-05-01"}

	agg := NewBuilder().Build(intent, results)
	require.Len(t, agg.DailyPlans, 1)

	day := agg.DailyPlans[1]
	assert.True(t, day.SimpleList)
	require.Len(t, day.Items, 2)
	assert.Equal(t, "추천", day.Items[0].Time)
	assert.Empty(t, day.Items[0].Duration)
}

func TestBuildSimpleListCapsAtTen(t *testing.T) {
	restaurantNames := make([]string, 10)
	dessertNames := make([]string, 10)
	for i := range restaurantNames {
		restaurantNames[i] = fmt.Sprintf("맛집%d", i+1)
		dessertNames[i] = fmt.Sprintf("카페%d", i+1)
	}
	results := &model.SearchResults{
		Restaurants: places(model.CategoryRestaurant, restaurantNames...),
		Desserts:    places(model.CategoryCafe, dessertNames...),
	}
	intent := &model.Intent{Label: model.LabelRestaurantSearch, Destination: "강릉", StartDate: "2025-05-01"}

	agg := NewBuilder().Build(intent, results)
	day := agg.DailyPlans[1]
	require.NotNil(t, day)
	require.Len(t, day.Items, 10)
	// Higher-ranked restaurants win the cut over desserts.
	assert.Equal(t, "맛집1", day.Items[0].PlaceName)
	assert.Equal(t, "맛집10", day.Items[9].PlaceName)
}

func TestBuildGalleryMode(t *testing.T) {
	gallery := &model.GalleryData{
		Region: "여수",
		Images: map[string][]string{"풍경": {"https://img/1.jpg"}},
	}
	intent := &model.Intent{Label: model.LabelPhotoSearch, Destination: "여수"}

	agg := NewBuilder().Build(intent, &model.SearchResults{Gallery: gallery})
	assert.True(t, agg.GalleryMode)
	assert.Equal(t, gallery, agg.Gallery)
	assert.Empty(t, agg.DailyPlans)
}

func TestBuildEmptyResults(t *testing.T) {
	intent := &model.Intent{Label: model.LabelSpotSearch, Destination: "강릉"}

	agg := NewBuilder().Build(intent, &model.SearchResults{})
	assert.Empty(t, agg.DailyPlans)
	assert.Equal(t, "강릉", agg.Destination)
}
