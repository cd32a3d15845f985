package augment

import (
	"context"
	"strings"
	"time"

	"github.com/gongdu300/localy/internal/agent/lookup"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Per-person daily estimates (KRW).
const (
	foodPerPersonPerDay  = 30000
	otherPerPersonPerDay = 50000
	fallbackOneWayFare   = 20000
)

// regionMultipliers scales accommodation estimates by destination.
var regionMultipliers = map[string]float64{
	"서울": 1.2, "강남": 1.5, "명동": 1.3,
	"부산": 1.0, "해운대": 1.2, "광안리": 1.1,
	"제주": 1.3, "서귀포": 1.2,
	"강릉": 1.0, "속초": 1.0, "양양": 0.9,
	"전주": 0.9, "경주": 0.9, "여수": 1.0,
	"인천": 0.9, "대전": 0.8, "대구": 0.8, "광주": 0.8, "울산": 0.8, "춘천": 0.8,
}

// nightlyBasePrices keys on the accommodation kind appearing in its name.
var nightlyBasePrices = []struct {
	kind  string
	price int
}{
	{kind: "리조트", price: 150000},
	{kind: "호텔", price: 80000},
	{kind: "펜션", price: 70000},
	{kind: "모텔", price: 50000},
	{kind: "게스트하우스", price: 40000},
}

const defaultNightlyPrice = 60000

// regionAdmissions lists well-known paid attractions per region; the top
// three fees approximate a trip's admission spend.
var regionAdmissions = map[string][]int{
	"서울": {3000, 16000, 62000},
	"부산": {12000, 30000, 8000},
	"제주": {5000, 4000, 14000},
	"강릉": {3000, 25000, 17000},
	"경주": {6000, 3000, 50000},
	"전주": {3000, 2000, 5000},
}

var fallbackAdmissions = []int{3000, 5000}

// BudgetEstimator prices a trip from live fare and room-rate lookups with
// static regional tables as fallback.
type BudgetEstimator struct {
	Directions lookup.DirectionsProvider
	Prices     lookup.PriceComparer
	Origin     string // departure city for the transport estimate
}

// Estimate builds the full cost breakdown for a trip.
func (e *BudgetEstimator) Estimate(ctx context.Context, intent *model.Intent, results *model.SearchResults, persons, totalBudget int) *model.BudgetData {
	days := tripDays(intent.StartDate, intent.EndDate)
	nights := days - 1

	spent := map[string]int{
		"transportation": e.transportCost(ctx, intent.Destination, persons),
		"accommodation":  e.accommodationCost(ctx, intent, results, persons, nights),
		"food":           foodPerPersonPerDay * persons * days,
		"admission":      admissionCost(intent.Destination, persons),
		"other":          otherPerPersonPerDay * persons * days,
	}

	used := 0
	for _, v := range spent {
		used += v
	}
	remaining := totalBudget - used

	return &model.BudgetData{
		TotalBudget: totalBudget,
		Spent:       spent,
		Remaining:   remaining,
		Warning:     remaining < 0,
		Breakdown: map[string]any{
			"days":    days,
			"persons": persons,
			"origin":  e.Origin,
		},
	}
}

// transportCost prices a round trip for the party from the live route fare,
// falling back to a flat one-way estimate.
func (e *BudgetEstimator) transportCost(ctx context.Context, destination string, persons int) int {
	if e.Directions != nil {
		route, err := e.Directions.Route(ctx, e.Origin, destination)
		if err == nil {
			return route.Total() * persons * 2
		}
		logx.Warn().Err(err).Str("destination", destination).Msg("route fare lookup failed, using flat estimate")
	}
	return fallbackOneWayFare * persons * 2
}

// accommodationCost prefers a live nightly rate for the top search hit and
// otherwise estimates from the accommodation kind and region.
func (e *BudgetEstimator) accommodationCost(ctx context.Context, intent *model.Intent, results *model.SearchResults, persons, nights int) int {
	if nights <= 0 {
		return 0
	}

	var top *model.PlaceData
	if len(results.Accommodations) > 0 {
		top = &results.Accommodations[0]
	}

	if e.Prices != nil && top != nil {
		rate, err := e.Prices.LowestNightlyRate(ctx, top.Name, intent.StartDate, intent.EndDate, persons)
		if err == nil && rate > 0 {
			return rate * nights
		}
		if err != nil {
			logx.Warn().Err(err).Str("place", top.Name).Msg("room rate lookup failed, using regional estimate")
		}
	}

	base := defaultNightlyPrice
	if top != nil {
		for _, bp := range nightlyBasePrices {
			if strings.Contains(top.Name, bp.kind) {
				base = bp.price
				break
			}
		}
	}

	return int(float64(base)*regionMultiplier(intent.Destination)) * nights
}

// regionMultiplier matches table keys as substrings so non-canonical
// destinations ("강릉시", "강원도 강릉") still hit their region. The longest
// matching key wins, keeping districts ahead of their parent city.
func regionMultiplier(destination string) float64 {
	multiplier, matched := 1.0, 0
	for key, m := range regionMultipliers {
		if strings.Contains(destination, key) && len(key) > matched {
			multiplier, matched = m, len(key)
		}
	}
	return multiplier
}

func admissionCost(destination string, persons int) int {
	fees, matched := fallbackAdmissions, 0
	for key, f := range regionAdmissions {
		if strings.Contains(destination, key) && len(key) > matched {
			fees, matched = f, len(key)
		}
	}
	sum := 0
	for _, f := range fees {
		sum += f
	}
	return sum * persons
}

func tripDays(startDate, endDate string) int {
	start, errS := time.Parse("2006-01-02", startDate)
	end, errE := time.Parse("2006-01-02", endDate)
	if errS != nil || errE != nil || end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/24) + 1
}
