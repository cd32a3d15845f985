package model

// ================ Config ================

type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"5"`
}

type IntentModelConfig struct {
	Model       string  `envconfig:"INTENT_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"INTENT_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"INTENT_TEMPERATURE" default:"0"`
}

type PersonaModelConfig struct {
	Model        string  `envconfig:"PERSONA_MODEL" default:"gemini-2.5-flash"`
	EnglishModel string  `envconfig:"PERSONA_EN_MODEL" default:"gemini-2.5-flash"`
	MaxTokens    int     `envconfig:"PERSONA_MAX_TOKENS" default:"2000"`
	Temperature  float32 `envconfig:"PERSONA_TEMPERATURE" default:"0.7"`
}

// PipelineConfig carries the slot defaults applied when classification
// cannot extract a value, plus pipeline-wide bounds.
type PipelineConfig struct {
	DefaultDestination string `envconfig:"DEFAULT_DESTINATION" default:"강릉"`
	DefaultStartDate   string `envconfig:"DEFAULT_START_DATE" default:"2025-05-01"`
	DefaultEndDate     string `envconfig:"DEFAULT_END_DATE" default:"2025-05-02"`
	DefaultBudget      int    `envconfig:"DEFAULT_BUDGET" default:"500000"`
	DefaultTravelers   int    `envconfig:"DEFAULT_TRAVELERS" default:"2"`
	AugmentTimeout     string `envconfig:"AUGMENT_TIMEOUT" default:"10s"`
}

type CacheConfig struct {
	TTL string `envconfig:"RESPONSE_CACHE_TTL" default:"5m"`
}

// LookupConfig holds credentials and limits for the external lookup clients.
type LookupConfig struct {
	GoogleAPIKey string `envconfig:"GOOGLE_PLACES_API_KEY"`
	KakaoAPIKey  string `envconfig:"KAKAO_REST_API_KEY"`
	TavilyAPIKey string `envconfig:"TAVILY_API_KEY"`
	HTTPTimeout  int    `envconfig:"LOOKUP_HTTP_TIMEOUT" default:"10"`
}
