// Package server exposes the pipeline over HTTP and WebSocket.
package server

import (
	"errors"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gongdu300/localy/internal/agent/graph"
	"github.com/gongdu300/localy/internal/agent/model"
	"github.com/gongdu300/localy/internal/cache"
	errx "github.com/gongdu300/localy/internal/core/error"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Server serves the chat API with a response cache in front of the pipeline.
type Server struct {
	runner graph.Runner
	cache  *cache.ResponseCache
	tts    SpeechSynthesizer
	engine *gin.Engine
}

// ChatRequest is one conversational turn from the client. Stateless clients
// resubmit their transcript as conversation_history instead of reusing a
// session_id; preferred_character and character are aliases, the former wins.
type ChatRequest struct {
	Message            string     `json:"message" binding:"required"`
	SessionID          string     `json:"session_id"`
	Character          string     `json:"character"`
	PreferredCharacter string     `json:"preferred_character"`
	History            []ChatTurn `json:"conversation_history"`
}

// ChatTurn is one prior message of a caller-resubmitted transcript.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (r ChatRequest) character() string {
	if r.PreferredCharacter != "" {
		return r.PreferredCharacter
	}
	return r.Character
}

func (r ChatRequest) historyMessages() []*schema.Message {
	if len(r.History) == 0 {
		return nil
	}
	msgs := make([]*schema.Message, 0, len(r.History))
	for _, t := range r.History {
		if t.Content == "" {
			continue
		}
		switch t.Role {
		case "assistant":
			msgs = append(msgs, schema.AssistantMessage(t.Content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(t.Content))
		}
	}
	return msgs
}

func New(runner graph.Runner, responseCache *cache.ResponseCache, tts SpeechSynthesizer) *Server {
	if tts == nil {
		tts = NoopSynthesizer{}
	}
	s := &Server{
		runner: runner,
		cache:  responseCache,
		tts:    tts,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logx.Error().Interface("panic", recovered).Msg("panic recovered in handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errx.SystemErrorMessage})
	}))

	api := engine.Group("/api")
	api.POST("/langgraph/chat", s.handleChat)
	api.GET("/langgraph/health", s.handleHealth)
	api.GET("/ws/chat", s.handleWebSocket)

	s.engine = engine
	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	logx.Info().Str("addr", addr).Msg("server listening")
	return s.engine.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	out, err := s.respond(c, req)
	if err != nil {
		status, message := errorStatus(err)
		logx.Error().Err(err).
			Str("session_id", req.SessionID).
			Msg("chat request failed")
		c.JSON(status, gin.H{"error": message, "session_id": req.SessionID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"response":   out.Response,
		"intent":     out.Intent,
		"language":   out.Language,
		"data":       out.Data,
	})
}

// respond consults the response cache before running the pipeline. The cache
// keys on the raw message alone so a hit needs no classification at all.
func (s *Server) respond(c *gin.Context, req ChatRequest) (*model.PipelineOutput, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(req.Message, ""); ok {
			return cached, nil
		}
	}

	out, err := s.runner.Invoke(c.Request.Context(), model.QueryInput{
		ConversationID: req.SessionID,
		Query:          req.Message,
		Character:      req.character(),
		History:        req.historyMessages(),
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(req.Message, "", out)
	}
	return out, nil
}

func errorStatus(err error) (int, string) {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, errx.SystemErrorMessage
}
