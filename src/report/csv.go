package report

import (
	"strconv"
	"strings"

	"tradechat/src/model"
)

// CSVHeaders is the fixed header row of the downloadable trade report.
var CSVHeaders = []string{"Trade ID", "Status", "Status Description", "Errors", "Timestamp", "Record ID"}

// RenderCSV renders records as CSV. Every field is wrapped in double quotes
// and embedded quotes are doubled, per RFC 4180 quoting.
func RenderCSV(records []model.TradeLogRecord) string {
	var b strings.Builder

	writeCSVRow(&b, CSVHeaders)
	for _, rec := range records {
		writeCSVRow(&b, []string{
			rec.TradeID,
			rec.Status,
			model.DescribeStatus(rec.Status),
			rec.RawErrors(),
			rec.CheckTimestamp.Format(timestampLayout),
			strconv.FormatUint(uint64(rec.ID), 10),
		})
	}

	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
