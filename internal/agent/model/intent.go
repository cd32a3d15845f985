package model

// Label is the closed set of intents the classifier may produce.
type Label string

const (
	LabelChat                Label = "chat"
	LabelTravelPlan          Label = "travel_plan"
	LabelRestaurantSearch    Label = "restaurant_search"
	LabelAccommodationSearch Label = "accommodation_search"
	LabelSpotSearch          Label = "spot_search"
	LabelShoppingSearch      Label = "shopping_search"
	LabelPhotoSearch         Label = "photo_search"
)

// ParseLabel validates a raw classifier output against the closed label set.
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelChat, LabelTravelPlan, LabelRestaurantSearch, LabelAccommodationSearch,
		LabelSpotSearch, LabelShoppingSearch, LabelPhotoSearch:
		return Label(s), true
	}
	return LabelChat, false
}

// Intent is the classified purpose of a user utterance plus its extracted slots.
type Intent struct {
	Label       Label  `json:"intent_type"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// IsChat reports whether the request should take the conversational path.
func (i Intent) IsChat() bool { return i.Label == LabelChat || i.Label == "" }

// IsTask reports whether the request should take the lookup pipeline path.
func (i Intent) IsTask() bool { return !i.IsChat() }

// WantsPlan reports whether a full day-structured itinerary was requested.
func (i Intent) WantsPlan() bool { return i.Label == LabelTravelPlan }

// Capability accessors. A full plan pulls in every place category plus
// weather and transit; the narrower search intents activate exactly one
// family of lookups.

func (i Intent) WantsWeather() bool { return i.WantsPlan() }

func (i Intent) WantsTransit() bool { return i.WantsPlan() }

func (i Intent) WantsRestaurants() bool {
	return i.WantsPlan() || i.Label == LabelRestaurantSearch
}

func (i Intent) WantsAccommodations() bool {
	return i.WantsPlan() || i.Label == LabelAccommodationSearch
}

func (i Intent) WantsLandmarks() bool {
	return i.WantsPlan() || i.Label == LabelSpotSearch
}

func (i Intent) WantsShopping() bool { return i.Label == LabelShoppingSearch }

func (i Intent) WantsGallery() bool { return i.Label == LabelPhotoSearch }

// SimpleSearch reports whether the aggregator should emit a flat ranked list
// instead of a day-structured itinerary.
func (i Intent) SimpleSearch() bool {
	return i.IsTask() && !i.WantsPlan() && !i.WantsGallery()
}
