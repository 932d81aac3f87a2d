package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"tradechat/src/model"
)

func TestRenderCSVHeaderRow(t *testing.T) {
	out := RenderCSV(nil)

	if out != `"Trade ID","Status","Status Description","Errors","Timestamp","Record ID"`+"\n" {
		t.Fatalf("unexpected header row: %q", out)
	}
}

func TestRenderCSVQuoteEscapingRoundTrips(t *testing.T) {
	records := []model.TradeLogRecord{
		{
			ID:             7,
			TradeID:        "tid000012",
			Status:         model.StatusMatchError,
			Errors:         ptrString(`["Field \"price\" mismatched"]`),
			CheckTimestamp: ts(10),
		},
	}

	out := RenderCSV(records)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("rendered CSV does not parse under standard quoting: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected header plus one data row, got %d rows", len(parsed))
	}

	row := parsed[1]
	if row[0] != "tid000012" || row[1] != model.StatusMatchError {
		t.Fatalf("unexpected identity fields: %+v", row)
	}
	if row[3] != `["Field \"price\" mismatched"]` {
		t.Fatalf("quote-containing field did not round-trip: %q", row[3])
	}
	if row[4] != "2025-06-10 10:00:00" {
		t.Fatalf("unexpected timestamp rendering: %q", row[4])
	}
	if row[5] != "7" {
		t.Fatalf("unexpected record id rendering: %q", row[5])
	}
}

func TestRenderCSVNullErrorsRenderEmpty(t *testing.T) {
	records := []model.TradeLogRecord{
		{ID: 1, TradeID: "tid000001", Status: model.StatusVerified, CheckTimestamp: ts(9)},
	}

	parsed, err := csv.NewReader(strings.NewReader(RenderCSV(records))).ReadAll()
	if err != nil {
		t.Fatalf("rendered CSV does not parse: %v", err)
	}
	if parsed[1][3] != "" {
		t.Fatalf("NULL errors column must render as empty field, got %q", parsed[1][3])
	}
}
