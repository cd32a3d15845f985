// Package augment enriches a finished plan with congestion annotations and a
// budget estimate. Enrichment is strictly best-effort: it runs under its own
// deadline and the plan ships unenriched when that deadline passes.
package augment

import (
	"context"
	"time"

	"github.com/gongdu300/localy/internal/agent/lookup"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

type Augmenter struct {
	Congestion lookup.CongestionProvider
	Budget     *BudgetEstimator
	Timeout    time.Duration

	Persons       int
	DefaultBudget int
}

// Augment annotates the plan's attractions with congestion info and attaches
// the budget estimate. Only full plan requests are enriched; for everything
// else the aggregate passes through untouched. If enrichment outlives the
// deadline the original aggregate is returned as-is.
func (a *Augmenter) Augment(ctx context.Context, intent *model.Intent, results *model.SearchResults, agg *model.Aggregate) *model.Aggregate {
	if !intent.WantsPlan() || agg == nil {
		return agg
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	enrichCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan *model.Aggregate, 1)
	go func() {
		// Work on a copy so a timed-out enrichment cannot leave the
		// returned aggregate half-annotated.
		enriched := *agg
		enriched.DailyPlans = copyPlans(agg.DailyPlans)
		annotateCrowds(enrichCtx, a.Congestion, &enriched)
		if a.Budget != nil {
			enriched.Budget = a.Budget.Estimate(enrichCtx, intent, results, a.Persons, a.DefaultBudget)
		}
		done <- &enriched
	}()

	select {
	case enriched := <-done:
		return enriched
	case <-enrichCtx.Done():
		logx.Warn().
			Str("destination", intent.Destination).
			Dur("timeout", timeout).
			Msg("enrichment deadline passed, returning plan unenriched")
		return agg
	}
}

func copyPlans(plans map[int]*model.DailyItinerary) map[int]*model.DailyItinerary {
	out := make(map[int]*model.DailyItinerary, len(plans))
	for n, day := range plans {
		if day == nil {
			continue
		}
		d := *day
		d.Items = make([]model.ItineraryItem, len(day.Items))
		copy(d.Items, day.Items)
		out[n] = &d
	}
	return out
}
