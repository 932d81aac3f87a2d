package model

import (
	"encoding/json"
	"strings"
	"time"
)

// TradeLogRecord is one row of processing history for a trade. The table is
// owned by the ingestion agents; this service only ever reads it.
type TradeLogRecord struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	TradeID        string    `gorm:"size:100;column:trade_id;index" json:"trade_id"`
	Status         string    `gorm:"size:50;column:status" json:"status"`
	Errors         *string   `gorm:"type:text;column:errors" json:"errors,omitempty"`
	CheckTimestamp time.Time `gorm:"column:check_timestamp;index" json:"check_timestamp"`
}

// TableName pins the exact table name used by the ingestion agents.
func (TradeLogRecord) TableName() string {
	return "trade_log"
}

// RawErrors returns the serialized errors column as stored, or "" when NULL.
func (r TradeLogRecord) RawErrors() string {
	if r.Errors == nil {
		return ""
	}
	return *r.Errors
}

// ErrorList parses the errors column, which the agents write as a JSON list
// of strings or NULL. Empty markers ("", "[]", "null") yield nil. A payload
// that fails to parse is surfaced as a single raw entry rather than dropped.
func (r TradeLogRecord) ErrorList() []string {
	raw := strings.TrimSpace(r.RawErrors())
	if raw == "" || raw == "[]" || raw == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{raw}
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsErrorStatus reports whether the record carries one of the ERR* codes.
func (r TradeLogRecord) IsErrorStatus() bool {
	return strings.HasPrefix(r.Status, ErrorStatusPrefix)
}
