package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradechat/src/model"
)

const (
	maxErrorPatterns    = 10
	errorPatternSamples = 3
	csvPreviewDataRows  = 5
)

var hundred = decimal.NewFromInt(100)

// ErrorPattern is one (status, error text) group with its occurrence count
// and a short sample of affected trades.
type ErrorPattern struct {
	Status         string
	ErrorText      string
	Count          int
	SampleTradeIDs []string
}

// StatusCount is one row of the per-status distribution.
type StatusCount struct {
	Status string
	Count  int
	Share  decimal.Decimal
}

// WindowStats is the derived aggregate over a report window. It is computed
// fresh per request and never cached.
type WindowStats struct {
	Period string
	Label  string

	TotalRecords     int
	DistinctTrades   int
	ReconciledTrades int
	ErrorTrades      int
	ErrorRecords     int
	PendingTrades    int

	SuccessRate decimal.Decimal
	ErrorRate   decimal.Decimal

	StatusDistribution []StatusCount
	ErrorPatterns      []ErrorPattern

	// Records is the full matching set, newest first, for CSV export.
	Records []model.TradeLogRecord
}

// ComputeWindowStats aggregates a window's records (newest first). Rates are
// shares of distinct trades and stay zero when the window holds no trades.
func ComputeWindowStats(period, label string, records []model.TradeLogRecord) *WindowStats {
	stats := &WindowStats{
		Period:      period,
		Label:       label,
		SuccessRate: decimal.Zero,
		ErrorRate:   decimal.Zero,
		Records:     records,
	}

	stats.TotalRecords = len(records)

	statusCounts := make(map[string]int)
	latestStatus := make(map[string]string) // records are newest first
	reconciled := make(map[string]struct{})
	errored := make(map[string]struct{})
	patterns := make(map[string]*ErrorPattern)

	for _, rec := range records {
		statusCounts[rec.Status]++
		if _, seen := latestStatus[rec.TradeID]; !seen {
			latestStatus[rec.TradeID] = rec.Status
		}

		if rec.Status == model.StatusReconciled {
			reconciled[rec.TradeID] = struct{}{}
		}
		if !rec.IsErrorStatus() {
			continue
		}
		stats.ErrorRecords++
		errored[rec.TradeID] = struct{}{}

		texts := rec.ErrorList()
		if len(texts) == 0 {
			texts = []string{model.DescribeStatus(rec.Status)}
		}
		for _, text := range texts {
			key := rec.Status + "|" + text
			pattern, ok := patterns[key]
			if !ok {
				pattern = &ErrorPattern{Status: rec.Status, ErrorText: text}
				patterns[key] = pattern
			}
			pattern.Count++
			if len(pattern.SampleTradeIDs) < errorPatternSamples &&
				!contains(pattern.SampleTradeIDs, rec.TradeID) {
				pattern.SampleTradeIDs = append(pattern.SampleTradeIDs, rec.TradeID)
			}
		}
	}

	stats.DistinctTrades = len(latestStatus)
	stats.ReconciledTrades = len(reconciled)
	stats.ErrorTrades = len(errored)

	for _, status := range latestStatus {
		if status != model.StatusReconciled && !strings.HasPrefix(status, model.ErrorStatusPrefix) {
			stats.PendingTrades++
		}
	}

	stats.SuccessRate = percentOf(stats.ReconciledTrades, stats.DistinctTrades)
	stats.ErrorRate = percentOf(stats.ErrorTrades, stats.DistinctTrades)

	for status, count := range statusCounts {
		stats.StatusDistribution = append(stats.StatusDistribution, StatusCount{
			Status: status,
			Count:  count,
			Share:  percentOf(count, stats.TotalRecords),
		})
	}
	sort.Slice(stats.StatusDistribution, func(i, j int) bool {
		if stats.StatusDistribution[i].Count != stats.StatusDistribution[j].Count {
			return stats.StatusDistribution[i].Count > stats.StatusDistribution[j].Count
		}
		return stats.StatusDistribution[i].Status < stats.StatusDistribution[j].Status
	})

	for _, pattern := range patterns {
		stats.ErrorPatterns = append(stats.ErrorPatterns, *pattern)
	}
	sort.Slice(stats.ErrorPatterns, func(i, j int) bool {
		if stats.ErrorPatterns[i].Count != stats.ErrorPatterns[j].Count {
			return stats.ErrorPatterns[i].Count > stats.ErrorPatterns[j].Count
		}
		if stats.ErrorPatterns[i].Status != stats.ErrorPatterns[j].Status {
			return stats.ErrorPatterns[i].Status < stats.ErrorPatterns[j].Status
		}
		return stats.ErrorPatterns[i].ErrorText < stats.ErrorPatterns[j].ErrorText
	})
	if len(stats.ErrorPatterns) > maxErrorPatterns {
		stats.ErrorPatterns = stats.ErrorPatterns[:maxErrorPatterns]
	}

	return stats
}

// RenderAggregateReport renders the window statistics as the markdown report
// handed to the model for commentary.
func RenderAggregateReport(stats *WindowStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 📊 %s Trade Processing Report\n\n", stats.Label)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(timestampLayout))

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Total Records:** %d\n", stats.TotalRecords)
	fmt.Fprintf(&b, "- **Distinct Trades:** %d\n", stats.DistinctTrades)
	fmt.Fprintf(&b, "- **Reconciled Trades:** %d (%s%% success rate)\n",
		stats.ReconciledTrades, stats.SuccessRate.StringFixed(1))
	fmt.Fprintf(&b, "- **Trades With Errors:** %d (%s%% error rate)\n",
		stats.ErrorTrades, stats.ErrorRate.StringFixed(1))
	fmt.Fprintf(&b, "- **Error Records:** %d\n\n", stats.ErrorRecords)

	b.WriteString("## Status Distribution\n\n")
	if len(stats.StatusDistribution) == 0 {
		b.WriteString("No records in this window.\n\n")
	} else {
		b.WriteString("| Status | Description | Records | Share |\n")
		b.WriteString("|--------|-------------|---------|-------|\n")
		for _, row := range stats.StatusDistribution {
			fmt.Fprintf(&b, "| %s | %s | %d | %s%% |\n",
				row.Status, model.DescribeStatus(row.Status), row.Count, row.Share.StringFixed(1))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Error Patterns\n\n")
	if len(stats.ErrorPatterns) == 0 {
		b.WriteString("No error patterns in this window. ✅\n\n")
	} else {
		for i, pattern := range stats.ErrorPatterns {
			fmt.Fprintf(&b, "%d. **%s** — %s (%d occurrences; e.g. %s)\n",
				i+1, pattern.Status, pattern.ErrorText, pattern.Count,
				strings.Join(pattern.SampleTradeIDs, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## CSV Preview\n\n")
	b.WriteString("```csv\n")
	preview := stats.Records
	truncated := 0
	if len(preview) > csvPreviewDataRows {
		truncated = len(preview) - csvPreviewDataRows
		preview = preview[:csvPreviewDataRows]
	}
	b.WriteString(RenderCSV(preview))
	b.WriteString("```\n")
	if truncated > 0 {
		fmt.Fprintf(&b, "_... and %d more records_\n", truncated)
	}
	b.WriteString("\n")

	b.WriteString("## Recommendations\n\n")
	switch {
	case stats.ErrorRecords > 0:
		fmt.Fprintf(&b, "- Investigate the %d error records, starting with the top error patterns above.\n", stats.ErrorRecords)
		b.WriteString("- Escalate recurring patterns to the responsible team for the failing step.\n")
		if stats.PendingTrades > 0 {
			fmt.Fprintf(&b, "- Monitor the %d trades still moving through the pipeline.\n", stats.PendingTrades)
		}
	case stats.PendingTrades > 0:
		fmt.Fprintf(&b, "- No errors in this window. Monitor the %d trades still moving through the pipeline.\n", stats.PendingTrades)
	default:
		b.WriteString("- No outstanding issues in this window.\n")
	}

	return b.String()
}

func percentOf(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(1)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
