package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/internal/agent/model"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

// RenderIntentSystem renders the intent-classification system prompt via the
// Eino prompt component. This triggers Prompt callbacks and returns the final
// system prompt string.
func RenderIntentSystem(ctx context.Context, defaults *model.PipelineConfig) (string, error) {
	if defaults == nil {
		return "", fmt.Errorf("pipeline config is nil")
	}

	// Safely render known tokens only to avoid interfering with JSON braces in template
	content := strings.NewReplacer(
		"{default_destination}", defaults.DefaultDestination,
		"{default_start_date}", defaults.DefaultStartDate,
		"{default_end_date}", defaults.DefaultEndDate,
	).Replace(intentSystemPrompt)

	// Wrap via Eino prompt component using a messages placeholder to emit callbacks
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("intent prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("intent prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
