package persona

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

type fakeChatModel struct {
	content string
	err     error
	gotMsgs []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	f.gotMsgs = msgs
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func sampleAggregate() *model.Aggregate {
	return &model.Aggregate{
		Destination: "강릉",
		DailyPlans: map[int]*model.DailyItinerary{
			1: {
				DayNumber: 1,
				Date:      "2025-05-01",
				Items: []model.ItineraryItem{
					{Time: "10:00", PlaceName: "경포대", Duration: "1시간 30분", Notes: "⭐ 4.5 (1200)"},
					{Time: "12:00", PlaceName: "초당순두부", Duration: "1시간"},
				},
			},
		},
		Budget: &model.BudgetData{
			TotalBudget: 500000,
			Spent:       map[string]int{"food": 120000},
			Remaining:   380000,
		},
	}
}

func TestCharacterByKey(t *testing.T) {
	assert.Equal(t, "까칠냥이", CharacterByKey("cat").Name)
	assert.Equal(t, "순둥멍멍이", CharacterByKey("dog").Name)
	assert.Equal(t, "otter", CharacterByKey("엉뚱수달").Key)
	assert.Equal(t, "cat", CharacterByKey("unknown").Key)
}

func TestRenderContentKeepsFacts(t *testing.T) {
	content := RenderContent(sampleAggregate())

	assert.Contains(t, content, "경포대")
	assert.Contains(t, content, "초당순두부")
	assert.Contains(t, content, "10:00")
	assert.Contains(t, content, "⭐ 4.5 (1200)")
	assert.Contains(t, content, "500,000원")
	assert.Contains(t, content, "380,000원")
}

func TestRenderContentCapsShopping(t *testing.T) {
	agg := &model.Aggregate{Destination: "강릉"}
	for i := 0; i < 8; i++ {
		agg.Shopping = append(agg.Shopping, model.PlaceData{Name: "상점", Category: model.CategoryShopping})
	}

	content := RenderContent(agg)
	assert.Equal(t, maxShoppingLines, strings.Count(content, "- 상점"))
}

func TestRenderUsesModelOutput(t *testing.T) {
	fake := &fakeChatModel{content: "흥, 경포대부터 가라냥."}
	r := NewRenderer(fake, "gemini-2.5-flash", nil, "")

	out, _ := r.Render(context.Background(), "cat", "ko", sampleAggregate())
	assert.Equal(t, "흥, 경포대부터 가라냥.", out)

	require.Len(t, fake.gotMsgs, 2)
	assert.Equal(t, schema.System, fake.gotMsgs[0].Role)
	assert.Contains(t, fake.gotMsgs[0].Content, "까칠냥이")
	assert.Contains(t, fake.gotMsgs[1].Content, "경포대")
}

func TestRenderRoutesByLanguage(t *testing.T) {
	ko := &fakeChatModel{content: "흥, 경포대부터 가라냥."}
	en := &fakeChatModel{content: "Hmph, start with Gyeongpodae-nyang."}
	r := NewRenderer(ko, "gemini-2.5-flash", en, "gemini-2.5-flash")

	out, _ := r.Render(context.Background(), "cat", "ko", sampleAggregate())
	assert.Equal(t, "흥, 경포대부터 가라냥.", out)
	assert.Empty(t, en.gotMsgs)

	out, _ = r.Render(context.Background(), "cat", "en", sampleAggregate())
	assert.Equal(t, "Hmph, start with Gyeongpodae-nyang.", out)
	require.NotEmpty(t, en.gotMsgs)
	assert.Contains(t, en.gotMsgs[0].Content, "English")

	// Chat turns route the same way.
	out, _ = r.Chat(context.Background(), "cat", "en", nil, "hello!")
	assert.Equal(t, "Hmph, start with Gyeongpodae-nyang.", out)
}

func TestRenderFallbackPreservesPlaces(t *testing.T) {
	r := NewRenderer(&fakeChatModel{err: errors.New("quota exceeded")}, "gemini-2.5-flash", nil, "")

	out, cost := r.Render(context.Background(), "cat", "ko", sampleAggregate())
	assert.Zero(t, cost)
	assert.True(t, strings.HasPrefix(out, "...흠, 귀찮지만 알려주겠다냥."))
	assert.True(t, strings.HasSuffix(out, "별로 기대는 하지 말라냥."))
	assert.Contains(t, out, "경포대")
	assert.Contains(t, out, "초당순두부")
}

func TestRenderWithoutModel(t *testing.T) {
	r := NewRenderer(nil, "", nil, "")

	out, _ := r.Render(context.Background(), "dog", "ko", sampleAggregate())
	assert.True(t, strings.HasPrefix(out, "찾아왔어멍!"))
	assert.Contains(t, out, "경포대")
}

func TestRenderEmptyAggregateSaysNothingFound(t *testing.T) {
	fake := &fakeChatModel{content: "should not be called"}
	r := NewRenderer(fake, "gemini-2.5-flash", nil, "")

	out, cost := r.Render(context.Background(), "cat", "ko", &model.Aggregate{Destination: "강릉"})
	assert.Zero(t, cost)
	assert.Equal(t, CharacterByKey("cat").EmptyResults, out)
	assert.Empty(t, fake.gotMsgs)
}

func TestChatFallsBackToCannedReply(t *testing.T) {
	r := NewRenderer(&fakeChatModel{err: errors.New("down")}, "gemini-2.5-flash", nil, "")

	out, _ := r.Chat(context.Background(), "otter", "ko", nil, "안녕!")
	assert.Equal(t, CharacterByKey("otter").FallbackChat, out)
}

func TestChatIncludesHistory(t *testing.T) {
	fake := &fakeChatModel{content: "반갑다냥."}
	r := NewRenderer(fake, "gemini-2.5-flash", nil, "")

	history := []*schema.Message{schema.UserMessage("이전 질문"), schema.AssistantMessage("이전 답변이다냥.", nil)}
	out, _ := r.Chat(context.Background(), "cat", "ko", history, "안녕!")

	assert.Equal(t, "반갑다냥.", out)
	require.Len(t, fake.gotMsgs, 4)
	assert.Equal(t, "이전 질문", fake.gotMsgs[1].Content)
	assert.Equal(t, "안녕!", fake.gotMsgs[3].Content)
}
