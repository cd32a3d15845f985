package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
	"github.com/gongdu300/localy/internal/cache"
	errx "github.com/gongdu300/localy/internal/core/error"
)

type fakeRunner struct {
	out     *model.PipelineOutput
	err     error
	invoked int
	lastIn  model.QueryInput
}

func (f *fakeRunner) Invoke(_ context.Context, in model.QueryInput) (*model.PipelineOutput, error) {
	f.invoked++
	f.lastIn = in
	return f.out, f.err
}

func postChat(t *testing.T, s *Server, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/langgraph/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := New(&fakeRunner{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/langgraph/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChatReturnsPipelineOutput(t *testing.T) {
	runner := &fakeRunner{out: &model.PipelineOutput{
		Response: "초당순두부를 추천한다냥.",
		Intent:   "restaurant_search",
		Language: "ko",
	}}
	s := New(runner, nil, nil)

	rec := postChat(t, s, map[string]any{
		"message":    "강릉 맛집 알려줘",
		"session_id": "sess-1",
		"character":  "cat",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "초당순두부를 추천한다냥.", resp["response"])
	assert.Equal(t, "restaurant_search", resp["intent"])
	assert.Equal(t, "sess-1", resp["session_id"])

	assert.Equal(t, "sess-1", runner.lastIn.ConversationID)
	assert.Equal(t, "cat", runner.lastIn.Character)
}

func TestChatForwardsResubmittedHistory(t *testing.T) {
	runner := &fakeRunner{out: &model.PipelineOutput{Response: "ok"}}
	s := New(runner, nil, nil)

	rec := postChat(t, s, map[string]any{
		"message":             "거기 날씨는 어때?",
		"preferred_character": "otter",
		"conversation_history": []map[string]string{
			{"role": "user", "content": "강릉 여행 일정 짜줘"},
			{"role": "assistant", "content": "1일차 일정이다달!"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "otter", runner.lastIn.Character)
	require.Len(t, runner.lastIn.History, 2)
	assert.Equal(t, "강릉 여행 일정 짜줘", runner.lastIn.History[0].Content)
	assert.Equal(t, schema.Assistant, runner.lastIn.History[1].Role)
}

func TestChatGeneratesSessionID(t *testing.T) {
	runner := &fakeRunner{out: &model.PipelineOutput{Response: "ok"}}
	s := New(runner, nil, nil)

	rec := postChat(t, s, map[string]any{"message": "안녕"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["session_id"])
}

func TestChatRequiresMessage(t *testing.T) {
	s := New(&fakeRunner{}, nil, nil)

	rec := postChat(t, s, map[string]any{"session_id": "sess-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatServesFromCache(t *testing.T) {
	runner := &fakeRunner{out: &model.PipelineOutput{Response: "첫 번째 응답"}}
	s := New(runner, cache.New(time.Minute), nil)

	rec := postChat(t, s, map[string]any{"message": "강릉 맛집", "session_id": "a"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, runner.invoked)

	// Same message from another session hits the cache.
	rec = postChat(t, s, map[string]any{"message": "강릉 맛집", "session_id": "b"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, runner.invoked)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "첫 번째 응답", resp["response"])
}

func TestChatMapsAppErrors(t *testing.T) {
	runner := &fakeRunner{err: errx.New(errors.New("missing"), http.StatusNotFound, errx.RedisNotFoundMessage)}
	s := New(runner, nil, nil)

	rec := postChat(t, s, map[string]any{"message": "강릉 맛집"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errx.RedisNotFoundMessage, resp["error"])
}

func TestChatMapsUnknownErrorsTo500(t *testing.T) {
	runner := &fakeRunner{err: errors.New("boom")}
	s := New(runner, nil, nil)

	rec := postChat(t, s, map[string]any{"message": "강릉 맛집"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type panickyRunner struct{}

func (panickyRunner) Invoke(context.Context, model.QueryInput) (*model.PipelineOutput, error) {
	panic("lookup client exploded")
}

func TestChatRecoversPanicsAsStructuredError(t *testing.T) {
	s := New(panickyRunner{}, nil, nil)

	rec := postChat(t, s, map[string]any{"message": "강릉 맛집"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errx.SystemErrorMessage, resp["error"])
}

func TestWebSocketCompleteCarriesFullText(t *testing.T) {
	runner := &fakeRunner{out: &model.PipelineOutput{
		Response: "경포대부터 가라냥. 초당순두부도 먹어보라냥!",
		Intent:   "travel_plan",
		Language: "ko",
		Data:     &model.Aggregate{Destination: "강릉"},
	}}
	s := New(runner, nil, nil)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"message": "강릉 일정 짜줘"}))

	var types []string
	var complete wsFrame
	for {
		var frame wsFrame
		require.NoError(t, conn.ReadJSON(&frame))
		types = append(types, frame.Type)
		if frame.Type == "complete" {
			complete = frame
			break
		}
	}

	assert.Equal(t, []string{"language_detected", "json_data", "text_chunk", "text_chunk", "complete"}, types)
	assert.Equal(t, runner.out.Response, complete.Content)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "korean sentences",
			input: "경포대부터 가라냥. 초당순두부도 먹어보라냥!",
			want:  []string{"경포대부터 가라냥.", "초당순두부도 먹어보라냥!"},
		},
		{
			name:  "newlines flush",
			input: "1일차 일정이다냥\n- 10:00 경포대",
			want:  []string{"1일차 일정이다냥", "- 10:00 경포대"},
		},
		{
			name:  "trailing fragment kept",
			input: "마지막 문장",
			want:  []string{"마지막 문장"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.input))
		})
	}
}
