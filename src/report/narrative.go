package report

import (
	"fmt"
	"strings"

	"tradechat/src/model"
)

// TradeNotFoundMessage is the fixed reply for a lookup that yields no rows.
// Zero rows is a normal outcome, not a fault.
const TradeNotFoundMessage = "## Trade Not Found\n\n" +
	"No records were found for this trade ID. " +
	"Please double-check the ID (format: tid followed by digits, e.g. tid00000553) and try again."

const timestampLayout = "2006-01-02 15:04:05"

// RenderTradeNarrative renders the single-trade report from deduplicated
// records ordered newest first. The timeline itself reads oldest first.
func RenderTradeNarrative(tradeID string, records []model.TradeLogRecord) string {
	if len(records) == 0 {
		return TradeNotFoundMessage
	}

	current := records[0]
	urgency := model.StatusUrgency(current.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "## 📋 Trade Report: %s\n\n", tradeID)
	fmt.Fprintf(&b, "**Current Status:** %s — %s (%s)\n",
		model.UrgencyLabel(urgency), current.Status, model.DescribeStatus(current.Status))
	fmt.Fprintf(&b, "**Last Updated:** %s\n", current.CheckTimestamp.Format(timestampLayout))
	fmt.Fprintf(&b, "**Processing Steps:** %d\n\n", len(records))

	b.WriteString("### Timeline\n\n")
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		step := len(records) - i
		fmt.Fprintf(&b, "%d. %s **%s** — %s (%s)\n",
			step, model.StatusIcon(rec.Status), rec.Status,
			model.DescribeStatus(rec.Status), rec.CheckTimestamp.Format(timestampLayout))
		if issues := rec.ErrorList(); len(issues) > 0 {
			fmt.Fprintf(&b, "   - Issues: %s\n", strings.Join(issues, "; "))
		}
	}

	b.WriteString("\n### Recommended Actions\n\n")
	for _, action := range model.StatusActions(current.Status) {
		fmt.Fprintf(&b, "- %s\n", action)
	}
	fmt.Fprintf(&b, "\n**Responsible Team:** %s\n", model.StatusTeam(current.Status))

	return b.String()
}
