// README: Web chat handlers (JSON request/response and websocket stream).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/channel/web"
)

const chatTimeout = 60 * time.Second

type ChatService interface {
	Chat(ctx context.Context, req web.ChatRequest) (web.ChatResponse, error)
}

type ChatHandler struct {
	chat           ChatService
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

// wsMessage is one frame sent to the websocket client.
type wsMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	web.ChatResponse
	Error string `json:"error,omitempty"`
}

// NewChatHandler accepts websocket connections from allowedOrigins; "*" or an empty list allows any.
func NewChatHandler(chat ChatService, allowedOrigins []string, logger *zap.Logger) *ChatHandler {
	h := &ChatHandler{chat: chat, allowedOrigins: map[string]bool{}, logger: logger}
	for _, o := range allowedOrigins {
		h.allowedOrigins[o] = true
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *ChatHandler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 || h.allowedOrigins["*"] {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.allowedOrigins[origin]
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req web.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	resp, err := h.chat.Chat(ctx, req)
	if err != nil {
		h.logger.Warn("chat request failed", zap.Error(err))
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// Stream handles GET /ws/chat. Each client frame is a ChatRequest; sender_id defaults to the session id.
func (h *ChatHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger := h.logger.With(zap.String("session_id", sessionID))
	if err := conn.WriteJSON(wsMessage{Type: "connected", SessionID: sessionID}); err != nil {
		logger.Warn("websocket write failed", zap.Error(err))
		return
	}

	for {
		var req web.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if req.SenderID == "" {
			req.SenderID = sessionID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
		resp, err := h.chat.Chat(ctx, req)
		cancel()

		msg := wsMessage{Type: "replies", SessionID: sessionID, ChatResponse: resp}
		if err != nil {
			logger.Warn("chat request failed", zap.Error(err))
			msg = wsMessage{Type: "error", SessionID: sessionID, Error: chatErrorText(err)}
		}
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}
