package server

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gongdu300/localy/pkg/langdetect"
	logx "github.com/gongdu300/localy/pkg/logger"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsFrame is the envelope of every frame the server sends.
type wsFrame struct {
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	UseTTS   *bool  `json:"use_tts,omitempty"`
	Content  string `json:"content,omitempty"`
	Data     any    `json:"data,omitempty"`
	Message  string `json:"message,omitempty"`
}

// handleWebSocket serves the streaming chat transport. Each client message
// runs the pipeline once and streams back: language_detected, json_data when
// structured data exists, the response text sentence by sentence, audio for
// voiced English responses, then complete.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logx.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn().Err(err).Str("session_id", sessionID).Msg("websocket closed unexpectedly")
			}
			return
		}
		if req.SessionID != "" {
			sessionID = req.SessionID
		}
		req.SessionID = sessionID

		s.streamTurn(c, conn, req)
	}
}

func (s *Server) streamTurn(c *gin.Context, conn *websocket.Conn, req ChatRequest) {
	if strings.TrimSpace(req.Message) == "" {
		writeFrame(conn, wsFrame{Type: "error", Message: "message is required"})
		return
	}

	language := langdetect.Detect(req.Message)
	useTTS := langdetect.ShouldUseTTS(req.Message)
	writeFrame(conn, wsFrame{Type: "language_detected", Language: language, UseTTS: &useTTS})

	out, err := s.respond(c, req)
	if err != nil {
		_, message := errorStatus(err)
		logx.Error().Err(err).Str("session_id", req.SessionID).Msg("websocket turn failed")
		writeFrame(conn, wsFrame{Type: "error", Message: message})
		return
	}

	if out.Data != nil {
		writeFrame(conn, wsFrame{Type: "json_data", Data: out.Data})
	}

	for _, sentence := range splitSentences(out.Response) {
		writeFrame(conn, wsFrame{Type: "text_chunk", Content: sentence})
	}

	if useTTS {
		s.streamAudio(c, conn, out.Response)
	}

	writeFrame(conn, wsFrame{Type: "complete", Content: out.Response})
}

func (s *Server) streamAudio(c *gin.Context, conn *websocket.Conn, text string) {
	audio, err := s.tts.Synthesize(c.Request.Context(), text)
	if err != nil {
		logx.Warn().Err(err).Msg("speech synthesis failed, sending text only")
		return
	}
	if len(audio) == 0 {
		return
	}
	writeFrame(conn, wsFrame{
		Type:    "audio_chunk",
		Content: base64.StdEncoding.EncodeToString(audio),
	})
}

func writeFrame(conn *websocket.Conn, frame wsFrame) {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		logx.Warn().Err(err).Str("frame", frame.Type).Msg("websocket write failed")
	}
}

// splitSentences chunks the response on sentence boundaries and newlines so
// the client can render progressively.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '\n':
			flush()
		case '.', '!', '?', '。', '…':
			b.WriteRune(r)
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return sentences
}
