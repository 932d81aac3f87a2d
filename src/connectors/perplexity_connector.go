package connectors

// Chat-completions client for the hosted language model (Perplexity's
// OpenAI-compatible API). Streaming only; one attempt per call, no retry —
// a failed call is reported to the user, not queued.

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// DoneSentinel terminates an SSE completion stream.
const DoneSentinel = "[DONE]"

// PerplexityClient calls the chat-completions endpoint.
type PerplexityClient struct {
	cfg  Config
	http *resty.Client
}

// NewPerplexityClient builds a client from the environment configuration.
func NewPerplexityClient() *PerplexityClient {
	return NewPerplexityClientWithConfig(GetConfig())
}

// NewPerplexityClientWithConfig builds a client with explicit settings.
// Used by tests to point at a stub server.
func NewPerplexityClientWithConfig(cfg Config) *PerplexityClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &PerplexityClient{cfg: cfg, http: httpClient}
}

// CreativeTemperature is the configured non-zero temperature used for
// insight-bearing branches.
func (c *PerplexityClient) CreativeTemperature() float64 {
	return c.cfg.Temperature
}

// StreamChat posts a streaming completion and invokes onData once per SSE
// data payload, in arrival order, including the terminal [DONE] sentinel.
// The call runs to completion or until ctx is cancelled.
func (c *PerplexityClient) StreamChat(
	ctx context.Context,
	messages []Message,
	temperature float64,
	onData func(data []byte) error,
) error {

	logger.WithFields(map[string]interface{}{
		"connector":   "perplexity",
		"model":       c.cfg.Model,
		"messages":    len(messages),
		"temperature": temperature,
	}).Debug("Starting chat completion stream")

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetBody(chatCompletionRequest{
			Model:       c.cfg.Model,
			Messages:    messages,
			Temperature: temperature,
			Stream:      true,
		}).
		Post("/chat/completions")
	if err != nil {
		return fmt.Errorf("chat completion request failed: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return fmt.Errorf("chat completion non-200 status: %d", resp.StatusCode())
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if err := onData([]byte(data)); err != nil {
			return err
		}
		if data == DoneSentinel {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("chat completion stream read failed: %w", err)
	}

	// Stream ended without the sentinel; normalize so every consumer sees it.
	return onData([]byte(DoneSentinel))
}

// ExtractDelta pulls the token text out of one streamed chunk payload.
// Returns ok=false for the sentinel and for chunks without content.
func ExtractDelta(data []byte) (string, bool) {
	if string(data) == DoneSentinel {
		return "", false
	}
	var chunk chatCompletionChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, true
}

// SyntheticChunk wraps plain text as a completion chunk payload. Used when a
// deterministic message must enter the stream without a model round trip.
func SyntheticChunk(content string) []byte {
	chunk := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"delta": map[string]string{"content": content}},
		},
	}
	data, _ := json.Marshal(chunk)
	return data
}
