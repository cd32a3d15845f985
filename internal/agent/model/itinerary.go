package model

// CrowdInfo is a per-place popularity estimate derived from review volume.
type CrowdInfo struct {
	PlaceName       string  `json:"place_name"`
	PlaceID         string  `json:"place_id"`
	Recommendation  string  `json:"recommendation"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	PopularityLevel string  `json:"popularity_level"`
}

// ItineraryItem is one scheduled stop of a day plan.
type ItineraryItem struct {
	Time      string     `json:"time"`
	PlaceName string     `json:"place_name"`
	PlaceID   string     `json:"place_id"`
	Category  Category   `json:"category"`
	Duration  string     `json:"duration"`
	MapsURL   string     `json:"google_maps_url"`
	Notes     string     `json:"notes,omitempty"`
	Crowd     *CrowdInfo `json:"crowd_info,omitempty"`
}

// DailyItinerary is an ordered day plan. SimpleList marks a flat
// recommendation list that only borrows the day-plan envelope.
type DailyItinerary struct {
	DayNumber     int             `json:"day_number"`
	Date          string          `json:"date"`
	Items         []ItineraryItem `json:"items"`
	TotalDuration string          `json:"total_duration"`
	SimpleList    bool            `json:"is_simple_list,omitempty"`
}

// BudgetData is the estimated cost breakdown for a trip.
// Invariant: Remaining == TotalBudget - sum(Spent) and Warning == (Remaining < 0).
type BudgetData struct {
	TotalBudget int            `json:"total_budget"`
	Spent       map[string]int `json:"spent"`
	Remaining   int            `json:"remaining"`
	Warning     bool           `json:"warning"`
	Breakdown   map[string]any `json:"breakdown,omitempty"`
}

// WeatherDay is one day of forecast data.
type WeatherDay struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`
	TempMin   int    `json:"temp_min"`
	TempMax   int    `json:"temp_max"`
}

// WeatherForecast covers the requested travel window for a region.
type WeatherForecast struct {
	Region   string       `json:"region"`
	Forecast []WeatherDay `json:"forecast"`
}

// TransitInfo summarizes regional traffic and major transport hubs.
type TransitInfo struct {
	Region        string   `json:"region"`
	TrafficStatus string   `json:"traffic_status"`
	MajorHubs     []string `json:"major_hubs"`
}

// GalleryData maps place names to image URLs found by the image-search lookup.
type GalleryData struct {
	Region  string              `json:"region"`
	Images  map[string][]string `json:"gallery_results"`
	Message string              `json:"final_response,omitempty"`
}

// Coordinate is a longitude/latitude pair in the order Kakao returns it.
type Coordinate struct {
	Longitude float64 `json:"x"`
	Latitude  float64 `json:"y"`
}

// RouteFare is the cost and geometry summary of a directions lookup.
type RouteFare struct {
	TaxiFare    int     `json:"taxi_fare"`
	TollFare    int     `json:"toll_fare"`
	DurationMin int     `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
}

// Total returns the combined fare used for budget estimation.
func (r RouteFare) Total() int { return r.TaxiFare + r.TollFare }

// Aggregate is the assembled pipeline result handed to the persona layer.
type Aggregate struct {
	Destination string                  `json:"destination"`
	DailyPlans  map[int]*DailyItinerary `json:"daily_plans"`
	GalleryMode bool                    `json:"gallery_mode,omitempty"`
	Gallery     *GalleryData            `json:"gallery,omitempty"`
	Shopping    []PlaceData             `json:"shopping,omitempty"`
	Weather     *WeatherForecast        `json:"weather,omitempty"`
	Budget      *BudgetData             `json:"budget_info,omitempty"`
}
