package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gongdu300/localy/internal/agent/augment"
	"github.com/gongdu300/localy/internal/agent/dispatch"
	"github.com/gongdu300/localy/internal/agent/graph"
	"github.com/gongdu300/localy/internal/agent/lookup"
	"github.com/gongdu300/localy/internal/agent/model"
	"github.com/gongdu300/localy/internal/agent/repo"
	"github.com/gongdu300/localy/internal/cache"
	"github.com/gongdu300/localy/internal/core"
	"github.com/gongdu300/localy/internal/server"
	logx "github.com/gongdu300/localy/pkg/logger"
	pkgredis "github.com/gongdu300/localy/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	ServerAddr  string `envconfig:"SERVER_ADDR" default:":8000"`
	Origin      string `envconfig:"TRIP_ORIGIN" default:"서울"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Intent       model.IntentModelConfig
	Persona      model.PersonaModelConfig
	Pipeline     model.PipelineConfig
	Conversation model.ConversationConfig
	Cache        model.CacheConfig
	Lookup       model.LookupConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()
	logx.Info().Msg("connected to Redis")

	conversationTTL, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}
	cacheTTL, err := time.ParseDuration(envCfg.Cache.TTL)
	if err != nil {
		log.Fatalf("Invalid RESPONSE_CACHE_TTL '%s': %v", envCfg.Cache.TTL, err)
	}
	augmentTimeout, err := time.ParseDuration(envCfg.Pipeline.AugmentTimeout)
	if err != nil {
		log.Fatalf("Invalid AUGMENT_TIMEOUT '%s': %v", envCfg.Pipeline.AugmentTimeout, err)
	}

	dispatcher, augmenter := buildLookups(envCfg, augmentTimeout)

	runner, err := graph.BuildPipelineGraph(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		IntentModel:      envCfg.Intent,
		PersonaModel:     envCfg.Persona,
		Pipeline:         envCfg.Pipeline,
		Conversation:     envCfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, conversationTTL),
		ProfileRepo:      repo.NewRedisProfileRepository(rdb),
		Dispatcher:       dispatcher,
		Augmenter:        augmenter,
	})
	if err != nil {
		log.Fatalf("Failed to build pipeline graph: %v", err)
	}

	srv := server.New(runner, cache.New(cacheTTL), nil)
	if err := srv.Run(envCfg.ServerAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// buildLookups wires the external lookup clients into the dispatcher and
// augmenter. Providers whose credentials are missing stay nil and their
// categories simply produce no results.
func buildLookups(cfg AppConfig, augmentTimeout time.Duration) (*dispatch.Dispatcher, *augment.Augmenter) {
	httpTimeout := time.Duration(cfg.Lookup.HTTPTimeout) * time.Second

	dispatcher := &dispatch.Dispatcher{
		Weather: lookup.MockWeather{},
		Transit: lookup.MockTransit{},
	}
	augmenter := &augment.Augmenter{
		Timeout:       augmentTimeout,
		Persons:       cfg.Pipeline.DefaultTravelers,
		DefaultBudget: cfg.Pipeline.DefaultBudget,
		Budget:        &augment.BudgetEstimator{Origin: cfg.Origin},
	}

	if cfg.Lookup.GoogleAPIKey != "" {
		places, err := lookup.NewGooglePlaces(cfg.Lookup.GoogleAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Google Places client: %v", err)
		}
		dispatcher.Restaurants = &lookup.CategorySearcher{Places: places, Category: model.CategoryRestaurant, Agent: "restaurants"}
		dispatcher.Desserts = &lookup.CategorySearcher{Places: places, Category: model.CategoryCafe, Agent: "desserts"}
		dispatcher.Landmarks = &lookup.CategorySearcher{Places: places, Category: model.CategoryLandmark, Agent: "landmarks"}
		dispatcher.Accommodations = &lookup.CategorySearcher{Places: places, Category: model.CategoryAccommodation, Agent: "accommodations"}
		dispatcher.Shopping = &lookup.ShoppingSearcher{Places: places, Agent: "shopping"}
		augmenter.Congestion = places
	} else {
		logx.Warn().Msg("GOOGLE_PLACES_API_KEY not set, place lookups disabled")
	}

	if cfg.Lookup.KakaoAPIKey != "" {
		augmenter.Budget.Directions = lookup.NewKakaoClient(cfg.Lookup.KakaoAPIKey, httpTimeout)
	} else {
		logx.Warn().Msg("KAKAO_REST_API_KEY not set, live route fares disabled")
	}

	if cfg.Lookup.TavilyAPIKey != "" {
		dispatcher.Gallery = lookup.NewTavilyClient(cfg.Lookup.TavilyAPIKey, httpTimeout)
	} else {
		logx.Warn().Msg("TAVILY_API_KEY not set, photo galleries disabled")
	}

	return dispatcher, augmenter
}
