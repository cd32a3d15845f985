// Package parsers turns raw LLM output into validated structures.
package parsers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gongdu300/localy/internal/agent/model"
)

type rawIntent struct {
	IntentType  string `json:"intent_type"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// ParseIntent decodes the classifier's JSON response into an Intent, applying
// the configured defaults for any slot the model left empty or malformed.
// Models occasionally wrap JSON in markdown code fences; those are stripped
// before decoding.
func ParseIntent(raw string, defaults *model.PipelineConfig) (*model.Intent, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty classifier response")
	}

	var r rawIntent
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	label, ok := model.ParseLabel(strings.TrimSpace(r.IntentType))
	if !ok {
		return nil, fmt.Errorf("unknown intent label %q", r.IntentType)
	}

	intent := &model.Intent{
		Label:       label,
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   validDate(r.StartDate),
		EndDate:     validDate(r.EndDate),
	}
	ApplyDefaults(intent, defaults)
	return intent, nil
}

// ApplyDefaults fills empty slots from the configured defaults and repairs an
// inverted date range by collapsing it onto the start date.
func ApplyDefaults(intent *model.Intent, defaults *model.PipelineConfig) {
	if defaults == nil {
		return
	}
	if intent.Destination == "" {
		intent.Destination = defaults.DefaultDestination
	}
	if intent.StartDate == "" {
		intent.StartDate = defaults.DefaultStartDate
	}
	if intent.EndDate == "" {
		intent.EndDate = defaults.DefaultEndDate
	}
	start, errS := time.Parse("2006-01-02", intent.StartDate)
	end, errE := time.Parse("2006-01-02", intent.EndDate)
	if errS == nil && errE == nil && end.Before(start) {
		intent.EndDate = intent.StartDate
	}
}

func validDate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
