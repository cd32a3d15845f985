package conversations

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

type memoryRepo struct {
	messages map[string][]*schema.Message
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{messages: map[string][]*schema.Message{}}
}

func (m *memoryRepo) AddMessage(_ context.Context, conversationID string, msg *schema.Message) error {
	m.messages[conversationID] = append(m.messages[conversationID], msg)
	return nil
}

func (m *memoryRepo) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	return &model.ConversationHistory{
		ConversationID: conversationID,
		Messages:       m.messages[conversationID],
	}, nil
}

func (m *memoryRepo) ClearHistory(_ context.Context, conversationID string) error {
	delete(m.messages, conversationID)
	return nil
}

func (m *memoryRepo) GetMessageCount(_ context.Context, conversationID string) (int, error) {
	return len(m.messages[conversationID]), nil
}

func newTestManager(repo model.ConversationRepository, maxTurns int) *MessagesManager {
	return NewMessagesManager(repo, model.ConversationConfig{MaxTurns: maxTurns})
}

func TestSeedHistoryPopulatesEmptyConversation(t *testing.T) {
	repo := newMemoryRepo()
	mm := newTestManager(repo, 5)

	turns := []*schema.Message{
		schema.UserMessage("강릉 여행 일정 짜줘"),
		schema.AssistantMessage("1일차 일정이다냥.", nil),
	}
	require.NoError(t, mm.SeedHistory(context.Background(), "sess-1", turns))

	got, err := mm.RecentMessages(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "강릉 여행 일정 짜줘", got[0].Content)
	assert.Equal(t, schema.Assistant, got[1].Role)
}

func TestSeedHistorySkipsNonEmptyConversation(t *testing.T) {
	repo := newMemoryRepo()
	mm := newTestManager(repo, 5)
	require.NoError(t, mm.RecordUserMessage(context.Background(), "sess-1", "이미 있는 메시지"))

	err := mm.SeedHistory(context.Background(), "sess-1", []*schema.Message{
		schema.UserMessage("덮어쓰면 안 되는 메시지"),
	})
	require.NoError(t, err)

	got, err := mm.RecentMessages(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "이미 있는 메시지", got[0].Content)
}

func TestRecentContextTagsTranscript(t *testing.T) {
	repo := newMemoryRepo()
	mm := newTestManager(repo, 5)
	require.NoError(t, mm.RecordUserMessage(context.Background(), "sess-1", "부산 맛집 알려줘"))
	require.NoError(t, mm.SaveResponse(context.Background(), "sess-1", "돼지국밥을 추천한다냥."))

	got, err := mm.RecentContext(context.Background(), "sess-1", "숙소도 찾아줘")
	require.NoError(t, err)
	assert.Contains(t, got, "<conversation_context>")
	assert.Contains(t, got, "UserMessage(부산 맛집 알려줘)")
	assert.Contains(t, got, "AssistantMessage(돼지국밥을 추천한다냥.)")
	assert.Contains(t, got, "<current_message_to_analyze>")
	assert.Contains(t, got, "UserMessage(숙소도 찾아줘)")
}

func TestRecentMessagesTrimsToWindow(t *testing.T) {
	repo := newMemoryRepo()
	mm := newTestManager(repo, 2)
	for _, msg := range []string{"첫 번째", "두 번째", "세 번째"} {
		require.NoError(t, mm.RecordUserMessage(context.Background(), "sess-1", msg))
	}

	got, err := mm.RecentMessages(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "두 번째", got[0].Content)
	assert.Equal(t, "세 번째", got[1].Content)
}
