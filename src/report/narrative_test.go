package report

import (
	"strings"
	"testing"

	"tradechat/src/model"
)

func ptrString(val string) *string {
	return &val
}

func TestRenderTradeNarrativeNotFound(t *testing.T) {
	out := RenderTradeNarrative("tid000012", nil)

	if out != TradeNotFoundMessage {
		t.Fatalf("expected the fixed not-found message, got %q", out)
	}
}

func TestRenderTradeNarrativeCurrentStatus(t *testing.T) {
	records := Deduplicate([]model.TradeLogRecord{
		{ID: 1, TradeID: "tid000012", Status: model.StatusVerified, CheckTimestamp: ts(8)},
		{ID: 2, TradeID: "tid000012", Status: model.StatusMatchError, CheckTimestamp: ts(12),
			Errors: ptrString(`["Price mismatch","Quantity mismatch"]`)},
	})

	out := RenderTradeNarrative("tid000012", records)

	if !strings.Contains(out, "## 📋 Trade Report: tid000012") {
		t.Fatalf("missing title: %q", out)
	}
	if !strings.Contains(out, "🚨 CRITICAL — ERR2") {
		t.Fatalf("current status should be the latest record's status: %q", out)
	}
	if !strings.Contains(out, "**Processing Steps:** 2") {
		t.Fatalf("missing step count: %q", out)
	}
	if !strings.Contains(out, "Issues: Price mismatch; Quantity mismatch") {
		t.Fatalf("missing parsed error strings: %q", out)
	}
}

func TestRenderTradeNarrativeTimelineOldestFirst(t *testing.T) {
	records := Deduplicate([]model.TradeLogRecord{
		{ID: 1, TradeID: "tid000012", Status: model.StatusVerified, CheckTimestamp: ts(8)},
		{ID: 2, TradeID: "tid000012", Status: model.StatusUnmatched, CheckTimestamp: ts(9)},
		{ID: 3, TradeID: "tid000012", Status: model.StatusMatched, CheckTimestamp: ts(10)},
	})

	out := RenderTradeNarrative("tid000012", records)

	first := strings.Index(out, "1. 🔄 **VERF**")
	second := strings.Index(out, "2. 🔄 **UMAT**")
	third := strings.Index(out, "3. 🔄 **MTCH**")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("missing timeline steps: %q", out)
	}
	if !(first < second && second < third) {
		t.Fatalf("timeline not oldest first: %q", out)
	}
}

func TestRenderTradeNarrativeMalformedErrorsFallBackToRawText(t *testing.T) {
	records := []model.TradeLogRecord{
		{ID: 1, TradeID: "tid000099", Status: model.StatusVerifyError, CheckTimestamp: ts(10),
			Errors: ptrString("not json at all")},
	}

	out := RenderTradeNarrative("tid000099", records)

	if !strings.Contains(out, "Issues: not json at all") {
		t.Fatalf("expected raw fallback for malformed error payload: %q", out)
	}
}

func TestRenderTradeNarrativeEmptyListMarkerSuppressed(t *testing.T) {
	records := []model.TradeLogRecord{
		{ID: 1, TradeID: "tid000099", Status: model.StatusReconciled, CheckTimestamp: ts(10),
			Errors: ptrString("[]")},
	}

	out := RenderTradeNarrative("tid000099", records)

	if strings.Contains(out, "Issues:") {
		t.Fatalf("empty-list marker must not produce an issues line: %q", out)
	}
	if !strings.Contains(out, "✅ COMPLETE — RCND") {
		t.Fatalf("missing reconciled status line: %q", out)
	}
}

func TestRenderTradeNarrativeRecommendationsFollowCurrentStatus(t *testing.T) {
	records := []model.TradeLogRecord{
		{ID: 1, TradeID: "tid000042", Status: model.StatusNoMatch, CheckTimestamp: ts(10)},
	}

	out := RenderTradeNarrative("tid000042", records)

	if !strings.Contains(out, "Confirm the counterparty has submitted their side of the trade.") {
		t.Fatalf("missing next actions for UNMT: %q", out)
	}
	if !strings.Contains(out, "**Responsible Team:** Trade Matching Operations") {
		t.Fatalf("missing owning team for UNMT: %q", out)
	}
	if !strings.Contains(out, ts(10).Format("2006-01-02 15:04:05")) {
		t.Fatalf("missing last-updated timestamp: %q", out)
	}
}
