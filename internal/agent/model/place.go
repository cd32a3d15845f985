package model

// Category classifies a place returned by a lookup collaborator.
type Category string

const (
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryLandmark      Category = "landmark"
	CategoryAccommodation Category = "accommodation"
	CategoryShopping      Category = "shopping"
)

// PlaceData is the standard shape every place-producing lookup returns.
// PlaceID is the only field safe for cross-referencing the same physical
// place across collaborators; names collide across chains and franchises.
type PlaceData struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Region      string   `json:"region"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	PriceLevel  int      `json:"price_level"`
	OpenNow     *bool    `json:"open_now,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	MapsURL     string   `json:"google_maps_url"`
	Tags        []string `json:"tags,omitempty"`
}

// LookupResult is the discriminated success/data/error envelope every lookup
// collaborator returns. Callers read Places only when Success is true.
type LookupResult struct {
	Success bool        `json:"success"`
	Agent   string      `json:"agent_name"`
	Places  []PlaceData `json:"data"`
	Count   int         `json:"count"`
	Message string      `json:"message"`
	Err     string      `json:"error,omitempty"`
}

// OkLookup builds a successful envelope.
func OkLookup(agent string, places []PlaceData, message string) LookupResult {
	return LookupResult{
		Success: true,
		Agent:   agent,
		Places:  places,
		Count:   len(places),
		Message: message,
	}
}

// FailLookup builds a failed envelope. Places stays empty so downstream code
// can consume the result without branching.
func FailLookup(agent string, err error, message string) LookupResult {
	res := LookupResult{
		Agent:   agent,
		Message: message,
	}
	if err != nil {
		res.Err = err.Error()
	}
	return res
}
