package model

// UserPersona is the stored travel profile read at session start.
// Absence of a record is normal for new users and never blocks the pipeline.
type UserPersona struct {
	UserID             string   `json:"user_id"`
	AgeGroup           string   `json:"age_group,omitempty"`
	TravelStyle        []string `json:"travel_style,omitempty"`
	BudgetLevel        string   `json:"budget_level,omitempty"` // 저 | 중 | 고
	FoodPreferences    []string `json:"food_preferences,omitempty"`
	AccommodationStyle string   `json:"accommodation_style,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}
