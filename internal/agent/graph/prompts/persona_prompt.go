package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/pkg/langdetect"
)

//go:embed template/persona_prompt.txt
var personaSystemPrompt string

//go:embed template/chat_prompt.txt
var chatSystemPrompt string

// CharacterPrompt carries the character description injected into the persona
// and chat system prompts.
type CharacterPrompt struct {
	Name        string
	Traits      string // bullet lines
	SpeechStyle string // bullet lines
	Ending      string // mandatory sentence-final particle
}

// RenderPersonaSystem renders the tone-transformation system prompt and
// triggers prompt callbacks.
func RenderPersonaSystem(ctx context.Context, character CharacterPrompt, language string) (string, error) {
	return renderCharacter(ctx, personaSystemPrompt, character, language, "persona")
}

// RenderChatSystem renders the free-conversation system prompt and triggers
// prompt callbacks.
func RenderChatSystem(ctx context.Context, character CharacterPrompt, language string) (string, error) {
	return renderCharacter(ctx, chatSystemPrompt, character, language, "chat")
}

func renderCharacter(ctx context.Context, template string, character CharacterPrompt, language, kind string) (string, error) {
	if character.Name == "" {
		return "", fmt.Errorf("%s prompt: character name is empty", kind)
	}

	languageName := "한국어"
	if language == langdetect.English {
		languageName = "English"
	}

	// Safely render known tokens only to avoid interfering with braces in template
	content := strings.NewReplacer(
		"{character_name}", character.Name,
		"{traits}", character.Traits,
		"{speech_style}", character.SpeechStyle,
		"{sentence_ending}", character.Ending,
		"{language_name}", languageName,
	).Replace(template)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("%s prompt callbacks: %w", kind, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%s prompt callbacks: empty result", kind)
	}
	return msgs[0].Content, nil
}
