package augment

import (
	"context"
	"sync"

	"github.com/gongdu300/localy/internal/agent/lookup"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Review-volume buckets behind the congestion estimate.
const (
	quietBelow    = 100
	moderateBelow = 500
	busyBelow     = 2000
)

// EstimateCongestion buckets a place's review volume into a popularity level
// with a visit recommendation.
func EstimateCongestion(reviewCount int) (level, recommendation string) {
	switch {
	case reviewCount < quietBelow:
		return "여유", "한적해요. 여유롭게 둘러보기 좋아요."
	case reviewCount < moderateBelow:
		return "보통", "보통 수준이에요. 방문하기 괜찮아요."
	case reviewCount < busyBelow:
		return "붐빔", "다소 붐벼요. 오전 일찍 방문을 추천해요."
	default:
		return "매우 붐빔", "매우 붐벼요. 평일이나 이른 시간 방문을 추천해요."
	}
}

// crowdInfo builds the annotation from fresh stats when the provider has
// them, falling back to the stats captured at search time.
func crowdInfo(ctx context.Context, provider lookup.CongestionProvider, item model.ItineraryItem) *model.CrowdInfo {
	name, rating, reviews := item.PlaceName, 0.0, 0

	if provider != nil && item.PlaceID != "" {
		liveName, liveRating, liveReviews, err := provider.PlaceStats(ctx, item.PlaceID)
		if err != nil {
			logx.Warn().Err(err).Str("place", item.PlaceName).Msg("place stats lookup failed")
		} else {
			name, rating, reviews = liveName, liveRating, liveReviews
		}
	}

	level, recommendation := EstimateCongestion(reviews)
	return &model.CrowdInfo{
		PlaceName:       name,
		PlaceID:         item.PlaceID,
		Rating:          rating,
		ReviewCount:     reviews,
		PopularityLevel: level,
		Recommendation:  recommendation,
	}
}

// annotateCrowds attaches congestion info to every attraction in the plan.
// Lookups for different places run concurrently; each goroutine writes a
// distinct item, so no locking is needed.
func annotateCrowds(ctx context.Context, provider lookup.CongestionProvider, agg *model.Aggregate) {
	var wg sync.WaitGroup
	for _, day := range agg.DailyPlans {
		for i := range day.Items {
			if day.Items[i].Category != model.CategoryLandmark {
				continue
			}
			wg.Add(1)
			go func(item *model.ItineraryItem) {
				defer wg.Done()
				item.Crowd = crowdInfo(ctx, provider, *item)
			}(&day.Items[i])
		}
	}
	wg.Wait()
}
