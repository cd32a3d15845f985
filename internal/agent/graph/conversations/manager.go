package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/internal/agent/model"
)

// MessagesManager wraps the conversation repository with the turn-window
// policy the pipeline nodes need.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// SeedHistory replays a caller-supplied transcript into the conversation so
// stateless clients can resubmit their history each request. It is a no-op
// when the conversation already has stored messages.
func (cm *MessagesManager) SeedHistory(ctx context.Context, conversationID string, messages []*schema.Message) error {
	if len(messages) == 0 {
		return nil
	}
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return err
	}
	if len(history.Messages) > 0 {
		return nil
	}
	for _, msg := range messages {
		if msg == nil || msg.Content == "" {
			continue
		}
		if err := cm.conversationRepo.AddMessage(ctx, conversationID, msg); err != nil {
			return err
		}
	}
	return nil
}

// RecordUserMessage appends the user's turn to the conversation history.
func (cm *MessagesManager) RecordUserMessage(ctx context.Context, conversationID string, query string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query))
}

// RecentContext renders the last maxTurns messages as a tagged transcript
// suitable for the classifier prompt.
func (cm *MessagesManager) RecentContext(ctx context.Context, conversationID string, query string) (string, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return "", err
	}

	recent := trimTail(history.Messages, cm.maxTurns)

	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, msg := range recent {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("UserMessage(" + msg.Content + ")\n")
		case schema.Assistant:
			b.WriteString("AssistantMessage(" + msg.Content + ")\n")
		}
	}
	b.WriteString("</conversation_context>\n")
	b.WriteString("<current_message_to_analyze>\n")
	b.WriteString("UserMessage(" + query + ")\n")
	b.WriteString("</current_message_to_analyze>")
	return b.String(), nil
}

// RecentMessages returns the last maxTurns raw messages for chat-style
// completion calls.
func (cm *MessagesManager) RecentMessages(ctx context.Context, conversationID string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return trimTail(history.Messages, cm.maxTurns), nil
}

// SaveResponse appends the assistant's turn to the conversation history.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
