package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"tradechat/src/connectors"
	"tradechat/src/repository"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Internal portal; the browser client is served from the same origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatWSHandler serves GET /api/chat/ws: one chat turn per connection. The
// client sends a message-list JSON frame, receives one text frame per token,
// and the connection closes when the stream completes.
func ChatWSHandler(pipeline *ChatPipeline, maxDuration time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := chatUpgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Error("Websocket upgrade failed")
			return
		}
		defer conn.Close()

		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			logger.WithError(err).Warn("Invalid websocket chat frame")
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInvalidFramePayloadData, "invalid chat frame"),
				time.Now().Add(time.Second))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), maxDuration)
		defer cancel()

		onData := func(data []byte) error {
			token, ok := connectors.ExtractDelta(data)
			if !ok {
				return nil
			}
			return conn.WriteMessage(websocket.TextMessage, []byte(token))
		}

		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(map[string]interface{}{
					"handler": "chat_ws",
					"panic":   fmt.Sprintf("%+v", rec),
				}).Error("Recovered panic in websocket chat")
				_ = conn.WriteMessage(websocket.TextMessage, []byte(apologyMessage))
			}
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
		}()

		if err := pipeline.Run(ctx, req.Messages, onData); err != nil {
			logger.WithError(err).Error("Websocket chat pipeline failed")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(apologyMessage))
		}
	}
}

// DefaultChatWSHandler wires the websocket handler to production collaborators.
func DefaultChatWSHandler(maxDuration time.Duration) http.HandlerFunc {
	llm := connectors.NewPerplexityClient()
	pipeline := NewChatPipeline(repository.NewTradeLogRepository(), llm, llm.CreativeTemperature())
	return ChatWSHandler(pipeline, maxDuration)
}
