// Package lookup wraps the external search/data collaborators (Google Places,
// Kakao Local/Mobility, Tavily, weather) behind a uniform envelope so the
// dispatcher and augmenter can treat them interchangeably and substitute
// fakes in tests.
package lookup

import (
	"context"

	"github.com/gongdu300/localy/internal/agent/model"
)

// PlaceProvider searches one place category within a region.
type PlaceProvider interface {
	Search(ctx context.Context, region string) model.LookupResult
}

// ShoppingProvider searches shops; the raw user text drives category
// inference (convenience store vs. pharmacy vs. mart vs. generic shopping).
type ShoppingProvider interface {
	Search(ctx context.Context, region, userInput string) model.LookupResult
}

// GalleryProvider assembles a photo gallery for a region from image search.
type GalleryProvider interface {
	Build(ctx context.Context, region string) (*model.GalleryData, error)
}

// WeatherProvider returns the forecast for the travel window.
type WeatherProvider interface {
	Forecast(ctx context.Context, region, startDate, endDate string) (*model.WeatherForecast, error)
}

// TransitProvider returns regional traffic status and major hubs.
type TransitProvider interface {
	Info(ctx context.Context, region string) (*model.TransitInfo, error)
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Coordinates(ctx context.Context, query string) (model.Coordinate, error)
}

// DirectionsProvider returns a route summary with fare information.
type DirectionsProvider interface {
	Route(ctx context.Context, origin, destination string) (*model.RouteFare, error)
}

// CongestionProvider fetches the rating/review stats backing the congestion
// heuristic for a single place.
type CongestionProvider interface {
	PlaceStats(ctx context.Context, placeID string) (name string, rating float64, reviewCount int, err error)
}

// PriceComparer finds a live nightly rate for a named accommodation.
// Implementations may legitimately return zero results; callers fall back to
// static estimates.
type PriceComparer interface {
	LowestNightlyRate(ctx context.Context, placeName string, checkIn, checkOut string, guests int) (int, error)
}
