package model

import (
	"github.com/cloudwego/eino/schema"
)

// QueryInput represents one incoming conversation turn. History carries a
// caller-resubmitted transcript for stateless clients; it only takes effect
// when the conversation has no stored messages yet.
type QueryInput struct {
	ConversationID string            `json:"conversation_id"`
	Query          string            `json:"query"`
	Character      string            `json:"character"`
	History        []*schema.Message `json:"history,omitempty"`
}

// SearchResults holds the per-category output of the parallel dispatcher.
// Categories the dispatcher did not activate stay at their zero value.
type SearchResults struct {
	Restaurants    []PlaceData      `json:"restaurants"`
	Desserts       []PlaceData      `json:"desserts"`
	Landmarks      []PlaceData      `json:"landmarks"`
	Accommodations []PlaceData      `json:"accommodations"`
	Shopping       []PlaceData      `json:"shopping"`
	Gallery        *GalleryData     `json:"gallery,omitempty"`
	Weather        *WeatherForecast `json:"weather_info,omitempty"`
	Transit        *TransitInfo     `json:"gps_data,omitempty"`
}

// Empty reports whether no category produced any data.
func (s *SearchResults) Empty() bool {
	if s == nil {
		return true
	}
	return len(s.Restaurants) == 0 && len(s.Desserts) == 0 && len(s.Landmarks) == 0 &&
		len(s.Accommodations) == 0 && len(s.Shopping) == 0 &&
		(s.Gallery == nil || len(s.Gallery.Images) == 0)
}

// TripState stores per-invocation state for the pipeline graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
//
// Messages is append-only; every other field is written once by the node that
// produces it and treated as read-only downstream.
type TripState struct {
	ConversationID string
	UserInput      string
	Character      string
	Language       string // "ko" or "en"

	Persona *UserPersona
	Intent  *Intent
	Results *SearchResults
	Plans   *Aggregate

	Messages      []*schema.Message // mutated only inside Eino state handlers
	FinalResponse string

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}

// PipelineOutput is the transport-facing result of one pipeline run.
type PipelineOutput struct {
	Response string     `json:"response"`
	Intent   string     `json:"intent"`
	Language string     `json:"language"`
	Data     *Aggregate `json:"data,omitempty"`
}
