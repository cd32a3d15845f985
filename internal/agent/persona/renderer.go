// Package persona turns assembled travel data into the selected character's
// voice. Rendering never fails: when the LLM is unavailable the content ships
// wrapped in the character's canned lines, facts intact.
package persona

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/internal/agent/graph/prompts"
	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Renderer routes Korean responses to the primary backend and everything
// else to the English one, each with its own prompt set.
type Renderer struct {
	koModel einomodel.BaseChatModel
	enModel einomodel.BaseChatModel
	koName  string
	enName  string
}

func NewRenderer(koModel einomodel.BaseChatModel, koName string, enModel einomodel.BaseChatModel, enName string) *Renderer {
	return &Renderer{koModel: koModel, koName: koName, enModel: enModel, enName: enName}
}

func (r *Renderer) backend(language string) (einomodel.BaseChatModel, string) {
	if language != "ko" && r.enModel != nil {
		return r.enModel, r.enName
	}
	return r.koModel, r.koName
}

// Render rewrites the aggregate in the character's voice and returns the
// response plus LLM cost. Any failure degrades to the character-framed plain
// rendering, never to an error.
func (r *Renderer) Render(ctx context.Context, characterKey, language string, agg *model.Aggregate) (string, float64) {
	character := CharacterByKey(characterKey)
	content := RenderContent(agg)
	if content == "" {
		return character.EmptyResults, 0
	}

	chatModel, modelName := r.backend(language)
	if chatModel == nil {
		return fallback(character, content), 0
	}

	systemPrompt, err := prompts.RenderPersonaSystem(ctx, character.Prompt(language), language)
	if err != nil {
		logx.Error().Err(err).Msg("render persona system prompt")
		return fallback(character, content), 0
	}

	out, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(content),
	})
	if err != nil {
		logx.Warn().Err(err).Str("character", character.Key).Msg("persona model unavailable, using plain rendering")
		return fallback(character, content), 0
	}

	cost := logUsage(out, modelName)
	if strings.TrimSpace(out.Content) == "" {
		return fallback(character, content), cost
	}
	return out.Content, cost
}

// Chat answers a free-conversation turn in character.
func (r *Renderer) Chat(ctx context.Context, characterKey, language string, history []*schema.Message, userInput string) (string, float64) {
	character := CharacterByKey(characterKey)

	chatModel, modelName := r.backend(language)
	if chatModel == nil {
		return character.FallbackChat, 0
	}

	systemPrompt, err := prompts.RenderChatSystem(ctx, character.Prompt(language), language)
	if err != nil {
		logx.Error().Err(err).Msg("render chat system prompt")
		return character.FallbackChat, 0
	}

	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, schema.UserMessage(userInput))

	out, err := chatModel.Generate(ctx, messages)
	if err != nil {
		logx.Warn().Err(err).Str("character", character.Key).Msg("chat model unavailable, using canned reply")
		return character.FallbackChat, 0
	}

	cost := logUsage(out, modelName)
	if strings.TrimSpace(out.Content) == "" {
		return character.FallbackChat, cost
	}
	return out.Content, cost
}

func fallback(character *Character, content string) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s", character.FallbackOpen, content, character.FallbackClose)
}

func logUsage(out *schema.Message, modelName string) float64 {
	if !model.CostEnabled() || out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	pricing := model.ResolvePricing(modelName)
	inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
	logx.Debug().
		Str("model", modelName).
		Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
		Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
		Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
	return totalC
}
