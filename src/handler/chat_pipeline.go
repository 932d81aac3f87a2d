package handler

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"tradechat/src/connectors"
	"tradechat/src/intent"
	"tradechat/src/model"
	"tradechat/src/repository"
	"tradechat/src/report"
)

type tradeLogFetcher interface {
	FindByTradeID(ctx context.Context, tradeID string) ([]model.TradeLogRecord, error)
	FindByWindow(ctx context.Context, period string) ([]model.TradeLogRecord, error)
}

type chatStreamer interface {
	StreamChat(ctx context.Context, messages []connectors.Message, temperature float64, onData func(data []byte) error) error
}

// ChatRequest is the inbound chat body: an ordered message list.
type ChatRequest struct {
	Messages []connectors.Message `json:"messages"`
}

// ChatPipeline classifies the latest user message, fetches and formats trade
// data for the data-driven branches, and dispatches the result through the
// language model. Deterministic branches are relayed verbatim at zero
// temperature; insight branches run at the creative temperature.
type ChatPipeline struct {
	repo         tradeLogFetcher
	llm          chatStreamer
	creativeTemp float64
}

// NewChatPipeline wires a pipeline from its collaborators.
func NewChatPipeline(repo tradeLogFetcher, llm chatStreamer, creativeTemp float64) *ChatPipeline {
	return &ChatPipeline{repo: repo, llm: llm, creativeTemp: creativeTemp}
}

// Run processes one chat turn. onData receives every streamed data payload
// (completion chunks and the [DONE] sentinel) in order.
func (p *ChatPipeline) Run(ctx context.Context, messages []connectors.Message, onData func(data []byte) error) error {
	userMessage := ""
	if len(messages) > 0 {
		userMessage = messages[len(messages)-1].Content
	}

	classified := intent.Classify(userMessage)

	logger.WithFields(map[string]interface{}{
		"component": "chat_pipeline",
		"intent":    string(classified.Kind),
		"trade_id":  classified.TradeID,
		"period":    classified.Period,
	}).Info("Classified chat message")

	switch classified.Kind {
	case intent.KindGreeting:
		return p.creative(ctx, personaSystemPrompt, messages, onData)

	case intent.KindOffTopic:
		return p.relay(ctx, offTopicRefusal, onData)

	case intent.KindReport:
		return p.aggregate(ctx, classified.Period, onData)

	case intent.KindTradeLookup:
		return p.tradeLookup(ctx, classified.TradeID, onData)

	case intent.KindSummary:
		return p.aggregate(ctx, "today", onData)

	default:
		return p.creative(ctx, personaSystemPrompt, messages, onData)
	}
}

func (p *ChatPipeline) tradeLookup(ctx context.Context, tradeID string, onData func([]byte) error) error {
	records, err := p.repo.FindByTradeID(ctx, tradeID)
	if err != nil {
		logger.WithError(err).Error("Trade lookup fetch failed")
		return p.relay(ctx, fetchFailureMessage, onData)
	}

	deduped := report.Deduplicate(records)
	if len(deduped) == 0 {
		return p.relay(ctx, report.TradeNotFoundMessage, onData)
	}

	narrative := report.RenderTradeNarrative(tradeID, deduped)
	return p.creative(ctx, domainSystemPrompt, []connectors.Message{
		{Role: "user", Content: narrative},
	}, onData)
}

func (p *ChatPipeline) aggregate(ctx context.Context, period string, onData func([]byte) error) error {
	normalized := repository.NormalizePeriod(period)
	records, err := p.repo.FindByWindow(ctx, normalized)
	if err != nil {
		logger.WithError(err).Error("Report window fetch failed")
		return p.relay(ctx, fetchFailureMessage, onData)
	}

	stats := report.ComputeWindowStats(normalized, repository.WindowLabel(normalized), records)
	rendered := report.RenderAggregateReport(stats)
	return p.creative(ctx, domainSystemPrompt, []connectors.Message{
		{Role: "user", Content: rendered},
	}, onData)
}

// relay sends pre-formatted content through the model at zero temperature so
// the wrapping pass is a near-identity transform.
func (p *ChatPipeline) relay(ctx context.Context, content string, onData func([]byte) error) error {
	return p.llm.StreamChat(ctx, []connectors.Message{
		{Role: "system", Content: relaySystemPrompt},
		{Role: "user", Content: content},
	}, relayTemperature, onData)
}

// creative prepends a system prompt and lets the model add interpretive
// commentary around the supplied turns.
func (p *ChatPipeline) creative(ctx context.Context, systemPrompt string, turns []connectors.Message, onData func([]byte) error) error {
	messages := make([]connectors.Message, 0, len(turns)+1)
	messages = append(messages, connectors.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, turns...)
	return p.llm.StreamChat(ctx, messages, p.creativeTemp, onData)
}
