// Package classify decides the intent of a user turn. The primary path asks
// an LLM for a structured classification; a keyword table covers every
// failure so the pipeline always gets a usable intent.
package classify

import (
	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/internal/agent/graph/parsers"
	"github.com/gongdu300/localy/internal/agent/graph/prompts"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

type Classifier struct {
	chatModel einomodel.BaseChatModel
	modelName string
	defaults  *model.PipelineConfig
}

func New(chatModel einomodel.BaseChatModel, modelName string, defaults *model.PipelineConfig) *Classifier {
	return &Classifier{
		chatModel: chatModel,
		modelName: modelName,
		defaults:  defaults,
	}
}

// Classify returns the intent for one user turn plus the LLM cost incurred.
// It never fails: any error on the LLM path degrades to the keyword fallback.
// conversationCtx is the tagged transcript from the messages manager and may
// be empty, in which case the raw input is sent alone.
func (c *Classifier) Classify(ctx context.Context, userInput, conversationCtx string) (*model.Intent, float64) {
	if c.chatModel == nil {
		return FallbackIntent(userInput, c.defaults), 0
	}

	systemPrompt, err := prompts.RenderIntentSystem(ctx, c.defaults)
	if err != nil {
		logx.Error().Err(err).Msg("render intent system prompt")
		return FallbackIntent(userInput, c.defaults), 0
	}

	userContent := conversationCtx
	if userContent == "" {
		userContent = userInput
	}
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userContent),
	}

	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		logx.Warn().Err(err).Msg("intent model unavailable, using keyword fallback")
		return FallbackIntent(userInput, c.defaults), 0
	}

	cost := c.logUsage(out)

	intent, err := parsers.ParseIntent(out.Content, c.defaults)
	if err != nil {
		logx.Warn().Err(err).Str("raw", out.Content).Msg("unparseable classification, using keyword fallback")
		return FallbackIntent(userInput, c.defaults), cost
	}

	logx.Debug().
		Str("intent", string(intent.Label)).
		Str("destination", intent.Destination).
		Msg("intent classified")
	return intent, cost
}

func (c *Classifier) logUsage(out *schema.Message) float64 {
	if !model.CostEnabled() || out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	pricing := model.ResolvePricing(c.modelName)
	inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
	logx.Debug().
		Str("model", c.modelName).
		Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
		Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
		Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
	return totalC
}
