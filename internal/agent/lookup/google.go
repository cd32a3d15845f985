package lookup

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

const defaultPlaceLimit = 10

// categoryQuery holds the Korean search suffix and the Places type filter
// used for one place category.
type categoryQuery struct {
	suffix    string
	placeType maps.PlaceType
}

var categoryQueries = map[model.Category]categoryQuery{
	model.CategoryRestaurant:    {suffix: "맛집", placeType: maps.PlaceTypeRestaurant},
	model.CategoryCafe:          {suffix: "카페 디저트", placeType: maps.PlaceTypeCafe},
	model.CategoryLandmark:      {suffix: "관광지", placeType: maps.PlaceTypeTouristAttraction},
	model.CategoryAccommodation: {suffix: "숙소", placeType: maps.PlaceTypeLodging},
}

// GooglePlaces wraps the Google Maps client for place search, geocoding and
// place detail stats.
type GooglePlaces struct {
	client *maps.Client
	limit  int
}

func NewGooglePlaces(apiKey string) (*GooglePlaces, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GooglePlaces{client: c, limit: defaultPlaceLimit}, nil
}

// CategorySearcher binds one category to a GooglePlaces client so it
// satisfies PlaceProvider.
type CategorySearcher struct {
	Places   *GooglePlaces
	Category model.Category
	Agent    string
}

func (s *CategorySearcher) Search(ctx context.Context, region string) model.LookupResult {
	places, err := s.Places.SearchCategory(ctx, region, s.Category)
	if err != nil {
		logx.Warn().Err(err).
			Str("agent", s.Agent).
			Str("region", region).
			Msg("place search failed")
		return model.FailLookup(s.Agent, err, fmt.Sprintf("%s 검색에 실패했어요", region))
	}
	return model.OkLookup(s.Agent, places, fmt.Sprintf("%s에서 %d곳을 찾았어요", region, len(places)))
}

// SearchCategory runs a text search like "강릉 맛집" and maps the results
// into the internal place shape.
func (g *GooglePlaces) SearchCategory(ctx context.Context, region string, category model.Category) ([]model.PlaceData, error) {
	q, ok := categoryQueries[category]
	if !ok {
		return nil, fmt.Errorf("unknown place category %q", category)
	}

	resp, err := g.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    fmt.Sprintf("%s %s", region, q.suffix),
		Language: "ko",
		Type:     q.placeType,
	})
	if err != nil {
		return nil, fmt.Errorf("text search %s/%s: %w", region, category, err)
	}

	places := make([]model.PlaceData, 0, g.limit)
	for _, r := range resp.Results {
		if len(places) >= g.limit {
			break
		}
		places = append(places, fromSearchResult(r, category, region))
	}
	return places, nil
}

// NearbyShopping searches shops around the region centre. placeType narrows
// the result to a shop kind when category inference picked one up from the
// user text.
func (g *GooglePlaces) NearbyShopping(ctx context.Context, region string, placeType maps.PlaceType, keyword string) ([]model.PlaceData, error) {
	loc, err := g.Geocode(ctx, region)
	if err != nil {
		return nil, err
	}

	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: loc.Latitude, Lng: loc.Longitude},
		Radius:   3000,
		Language: "ko",
		Type:     placeType,
		Keyword:  keyword,
	}
	resp, err := g.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("nearby search %s: %w", region, err)
	}

	places := make([]model.PlaceData, 0, g.limit)
	for _, r := range resp.Results {
		if len(places) >= g.limit {
			break
		}
		places = append(places, fromSearchResult(r, model.CategoryShopping, region))
	}
	return places, nil
}

// Geocode resolves a region name to coordinates.
func (g *GooglePlaces) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	resp, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address, Language: "ko"})
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(resp) == 0 {
		return model.Coordinate{}, fmt.Errorf("geocode %q: no results", address)
	}
	loc := resp[0].Geometry.Location
	return model.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// PlaceStats fetches the rating and review count behind the congestion
// estimate.
func (g *GooglePlaces) PlaceStats(ctx context.Context, placeID string) (string, float64, int, error) {
	resp, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskUserRatingsTotal,
		},
	})
	if err != nil {
		return "", 0, 0, fmt.Errorf("place details %s: %w", placeID, err)
	}
	return resp.Name, float64(resp.Rating), resp.UserRatingsTotal, nil
}

func fromSearchResult(r maps.PlacesSearchResult, category model.Category, region string) model.PlaceData {
	p := model.PlaceData{
		PlaceID:     r.PlaceID,
		Name:        r.Name,
		Category:    category,
		Address:     r.FormattedAddress,
		Latitude:    r.Geometry.Location.Lat,
		Longitude:   r.Geometry.Location.Lng,
		Region:      region,
		Rating:      float64(r.Rating),
		ReviewCount: r.UserRatingsTotal,
		PriceLevel:  r.PriceLevel,
		Tags:        r.Types,
		MapsURL:     mapsURL(r),
	}
	if r.OpeningHours != nil {
		p.OpenNow = r.OpeningHours.OpenNow
	}
	return p
}

func mapsURL(r maps.PlacesSearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "https://www.google.com/maps/search/?api=1&query=%f,%f",
		r.Geometry.Location.Lat, r.Geometry.Location.Lng)
	if r.PlaceID != "" {
		fmt.Fprintf(&b, "&query_place_id=%s", r.PlaceID)
	}
	return b.String()
}
