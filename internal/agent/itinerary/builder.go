// Package itinerary aggregates lookup results into the response payload:
// a day-structured plan, a flat recommendation list, or a photo gallery.
package itinerary

import (
	"fmt"

	"github.com/gongdu300/localy/internal/agent/model"
)

// Builder assembles the aggregate handed to the persona layer.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build picks the aggregation shape from the intent: gallery requests pass
// the gallery through, narrow searches produce a flat ranked list, and plan
// requests get the full day-slotted itinerary.
func (b *Builder) Build(intent *model.Intent, results *model.SearchResults) *model.Aggregate {
	agg := &model.Aggregate{
		Destination: intent.Destination,
		DailyPlans:  map[int]*model.DailyItinerary{},
	}

	switch {
	case intent.WantsGallery():
		agg.GalleryMode = true
		agg.Gallery = results.Gallery
	case intent.WantsPlan():
		b.buildPlan(intent, results, agg)
	default:
		b.buildSimpleList(intent, results, agg)
	}

	if intent.WantsShopping() {
		agg.Shopping = results.Shopping
	}
	agg.Weather = results.Weather
	return agg
}

// maxListItems caps the flat recommendation list.
const maxListItems = 10

// buildSimpleList flattens whichever categories the dispatcher filled into a
// single ranked recommendation list wearing the day-plan envelope. The merged
// list is cut at the top 10.
func (b *Builder) buildSimpleList(intent *model.Intent, results *model.SearchResults, agg *model.Aggregate) {
	var places []model.PlaceData
	places = append(places, results.Restaurants...)
	places = append(places, results.Desserts...)
	places = append(places, results.Landmarks...)
	places = append(places, results.Accommodations...)
	places = append(places, results.Shopping...)
	if len(places) == 0 {
		return
	}
	if len(places) > maxListItems {
		places = places[:maxListItems]
	}

	day := &model.DailyItinerary{
		DayNumber:  1,
		Date:       intent.StartDate,
		SimpleList: true,
	}
	for _, p := range places {
		day.Items = append(day.Items, model.ItineraryItem{
			Time:      "추천",
			PlaceName: p.Name,
			PlaceID:   p.PlaceID,
			Category:  p.Category,
			MapsURL:   p.MapsURL,
			Notes:     placeNotes(p, intent.Destination),
		})
	}
	agg.DailyPlans[1] = day
}

// slot is one fixed position of the daily schedule template.
type slot struct {
	time     string
	duration string
	minutes  int
}

var (
	morningSpot   = slot{time: "10:00", duration: "1시간 30분", minutes: 90}
	lunch         = slot{time: "12:00", duration: "1시간", minutes: 60}
	afternoonSpot = slot{time: "13:30", duration: "2시간", minutes: 120}
	cafeBreak     = slot{time: "16:00", duration: "1시간", minutes: 60}
)

// buildPlan slots the ranked places into a single day's fixed schedule:
// morning attraction, lunch, long afternoon attraction, cafe break, extra
// attractions on the evening half-hours, then dinner. The plan is always one
// day regardless of the travel window; restaurants beyond dinner and cafes
// beyond the break are dropped.
func (b *Builder) buildPlan(intent *model.Intent, results *model.SearchResults, agg *model.Aggregate) {
	day := &model.DailyItinerary{
		DayNumber: 1,
		Date:      intent.StartDate,
	}
	spots, meals, sweets := results.Landmarks, results.Restaurants, results.Desserts
	totalMin := 0

	add := func(p model.PlaceData, s slot) {
		day.Items = append(day.Items, model.ItineraryItem{
			Time:      s.time,
			PlaceName: p.Name,
			PlaceID:   p.PlaceID,
			Category:  p.Category,
			Duration:  s.duration,
			MapsURL:   p.MapsURL,
			Notes:     placeNotes(p, intent.Destination),
		})
		totalMin += s.minutes
	}

	if len(spots) > 0 {
		add(spots[0], morningSpot)
	}
	if len(meals) > 0 {
		add(meals[0], lunch)
	}
	if len(spots) > 1 {
		add(spots[1], afternoonSpot)
	}
	if len(sweets) > 0 {
		add(sweets[0], cafeBreak)
	}

	// Extra attractions take the evening half-hours, dinner the next one.
	hour := 17
	for _, p := range spots[min(2, len(spots)):] {
		add(p, slot{time: fmt.Sprintf("%d:30", hour), duration: "1시간", minutes: 60})
		hour++
	}
	if len(meals) > 1 {
		add(meals[1], slot{time: fmt.Sprintf("%d:30", hour), duration: "1시간 30분", minutes: 90})
	}

	day.TotalDuration = renderDuration(totalMin)
	agg.DailyPlans[1] = day
}

func placeNotes(p model.PlaceData, region string) string {
	if p.Rating > 0 {
		return fmt.Sprintf("⭐ %.1f (%d)", p.Rating, p.ReviewCount)
	}
	return fmt.Sprintf("%s의 추천 장소", region)
}

func renderDuration(minutes int) string {
	if minutes == 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("약 %d시간", h)
	}
	return fmt.Sprintf("약 %d시간 %d분", h, m)
}
