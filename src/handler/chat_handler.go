package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradechat/src/connectors"
	"tradechat/src/repository"
)

// ChatHandler serves POST /api/chat. The response is an SSE stream of
// completion chunks terminated by a [DONE] sentinel; every branch, including
// every failure branch, produces a well-formed stream.
func ChatHandler(pipeline *ChatPipeline, maxDuration time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), maxDuration)
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		onData := func(data []byte) error {
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		}

		// The pipeline must never let a fault reach the transport boundary:
		// anything uncaught becomes an apology in the same stream envelope.
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(map[string]interface{}{
					"handler": "chat",
					"panic":   fmt.Sprintf("%+v", rec),
				}).Error("Recovered panic in chat pipeline")
				writeApology(onData)
			}
		}()

		if err := pipeline.Run(ctx, req.Messages, onData); err != nil {
			logger.WithError(err).Error("Chat pipeline failed")
			writeApology(onData)
		}
	}
}

// writeApology injects the fixed apology as a synthetic chunk. Used when even
// the zero-temperature relay pass is unavailable.
func writeApology(onData func(data []byte) error) {
	_ = onData(connectors.SyntheticChunk(apologyMessage))
	_ = onData([]byte(connectors.DoneSentinel))
}

// DefaultChatHandler wires the handler to the production repository, the
// language-model client, and the configured request bound.
func DefaultChatHandler(maxDuration time.Duration) http.HandlerFunc {
	llm := connectors.NewPerplexityClient()
	pipeline := NewChatPipeline(repository.NewTradeLogRepository(), llm, llm.CreativeTemperature())
	return ChatHandler(pipeline, maxDuration)
}
