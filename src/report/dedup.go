package report

import (
	"sort"

	"tradechat/src/model"
)

// Deduplicate sorts a trade's records newest first and collapses consecutive
// rows that share an identical (status, check_timestamp) pair, keeping the
// first occurrence. Repeated polling by the agents writes such duplicates;
// records with the same status at different timestamps are genuine lifecycle
// events (e.g. re-verification) and are kept. The operation is stable and
// idempotent and never reorders events that differ in timestamp.
func Deduplicate(records []model.TradeLogRecord) []model.TradeLogRecord {
	sorted := make([]model.TradeLogRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckTimestamp.After(sorted[j].CheckTimestamp)
	})

	out := make([]model.TradeLogRecord, 0, len(sorted))
	for _, rec := range sorted {
		if n := len(out); n > 0 &&
			out[n-1].Status == rec.Status &&
			out[n-1].CheckTimestamp.Equal(rec.CheckTimestamp) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
