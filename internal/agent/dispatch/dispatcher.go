// Package dispatch fans the classified intent out to the lookup providers
// that can serve it and gathers their results.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/gongdu300/localy/internal/agent/lookup"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Dispatcher owns one provider per result category. Nil providers are
// skipped, so a deployment without e.g. a Tavily key simply produces no
// gallery.
type Dispatcher struct {
	Restaurants    lookup.PlaceProvider
	Desserts       lookup.PlaceProvider
	Landmarks      lookup.PlaceProvider
	Accommodations lookup.PlaceProvider
	Shopping       lookup.ShoppingProvider
	Gallery        lookup.GalleryProvider
	Weather        lookup.WeatherProvider
	Transit        lookup.TransitProvider
}

// Dispatch runs every lookup the intent activates concurrently and collects
// the results. A failing or panicking lookup leaves its category empty; it
// never fails the other lookups or the dispatch itself. Each goroutine
// writes only its own field of the shared results, so no locking is needed.
func (d *Dispatcher) Dispatch(ctx context.Context, intent *model.Intent, userInput string) *model.SearchResults {
	results := &model.SearchResults{}
	region := intent.Destination

	var wg sync.WaitGroup
	run := func(name string, task func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logx.Error().
						Str("lookup", name).
						Str("region", region).
						Msg(fmt.Sprintf("lookup panicked: %v", r))
				}
			}()
			task()
		}()
	}

	if intent.WantsRestaurants() {
		if d.Restaurants != nil {
			run("restaurants", func() {
				results.Restaurants = placesOf(d.Restaurants.Search(ctx, region))
			})
		}
		if d.Desserts != nil {
			run("desserts", func() {
				results.Desserts = placesOf(d.Desserts.Search(ctx, region))
			})
		}
	}
	if intent.WantsLandmarks() && d.Landmarks != nil {
		run("landmarks", func() {
			results.Landmarks = placesOf(d.Landmarks.Search(ctx, region))
		})
	}
	if intent.WantsAccommodations() && d.Accommodations != nil {
		run("accommodations", func() {
			results.Accommodations = placesOf(d.Accommodations.Search(ctx, region))
		})
	}
	if intent.WantsShopping() && d.Shopping != nil {
		run("shopping", func() {
			results.Shopping = placesOf(d.Shopping.Search(ctx, region, userInput))
		})
	}
	if intent.WantsGallery() && d.Gallery != nil {
		run("gallery", func() {
			gallery, err := d.Gallery.Build(ctx, region)
			if err != nil {
				logx.Warn().Err(err).Str("region", region).Msg("gallery lookup failed")
				return
			}
			results.Gallery = gallery
		})
	}
	if intent.WantsWeather() && d.Weather != nil {
		run("weather", func() {
			forecast, err := d.Weather.Forecast(ctx, region, intent.StartDate, intent.EndDate)
			if err != nil {
				logx.Warn().Err(err).Str("region", region).Msg("weather lookup failed")
				return
			}
			results.Weather = forecast
		})
	}
	if intent.WantsTransit() && d.Transit != nil {
		run("transit", func() {
			info, err := d.Transit.Info(ctx, region)
			if err != nil {
				logx.Warn().Err(err).Str("region", region).Msg("transit lookup failed")
				return
			}
			results.Transit = info
		})
	}

	wg.Wait()
	return results
}

func placesOf(r model.LookupResult) []model.PlaceData {
	if !r.Success {
		return nil
	}
	return r.Places
}
