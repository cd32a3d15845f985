package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey        string
	BaseURL       string
	IntentConfig  *model.IntentModelConfig
	PersonaConfig *model.PersonaModelConfig
}

// ChatModels holds the intent-classification and persona chat models.
// Korean responses render on Persona, everything else on PersonaEn.
type ChatModels struct {
	Intent             *gemini.ChatModel
	Persona            *gemini.ChatModel
	PersonaEn          *gemini.ChatModel
	IntentModelName    string
	PersonaModelName   string
	PersonaEnModelName string
}

// NewChatModels creates both chat models against a shared Gemini client
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	intentModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.IntentConfig.Model,
		Temperature: &config.IntentConfig.Temperature,
		MaxTokens:   &config.IntentConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating intent model")
		return nil, fmt.Errorf("error creating intent model: %w", err)
	}

	personaModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.PersonaConfig.Model,
		Temperature: &config.PersonaConfig.Temperature,
		MaxTokens:   &config.PersonaConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating persona model")
		return nil, fmt.Errorf("error creating persona model: %w", err)
	}

	personaEnModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.PersonaConfig.EnglishModel,
		Temperature: &config.PersonaConfig.Temperature,
		MaxTokens:   &config.PersonaConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating English persona model")
		return nil, fmt.Errorf("error creating English persona model: %w", err)
	}

	return &ChatModels{
		Intent:             intentModel,
		Persona:            personaModel,
		PersonaEn:          personaEnModel,
		IntentModelName:    config.IntentConfig.Model,
		PersonaModelName:   config.PersonaConfig.Model,
		PersonaEnModelName: config.PersonaConfig.EnglishModel,
	}, nil
}
