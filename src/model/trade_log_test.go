package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(val string) *string {
	return &val
}

func TestErrorList(t *testing.T) {
	tests := []struct {
		name   string
		errors *string
		want   []string
	}{
		{name: "nil column", errors: nil, want: nil},
		{name: "empty string", errors: strPtr(""), want: nil},
		{name: "empty json list", errors: strPtr("[]"), want: nil},
		{name: "json null", errors: strPtr("null"), want: nil},
		{
			name:   "json list of strings",
			errors: strPtr(`["Price mismatch","Quantity mismatch"]`),
			want:   []string{"Price mismatch", "Quantity mismatch"},
		},
		{
			name:   "blank entries are dropped",
			errors: strPtr(`["Price mismatch","  ",""]`),
			want:   []string{"Price mismatch"},
		},
		{
			name:   "malformed payload falls back to the raw text",
			errors: strPtr("ORA-00942: table or view does not exist"),
			want:   []string{"ORA-00942: table or view does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := TradeLogRecord{Errors: tt.errors}
			assert.Equal(t, tt.want, rec.ErrorList())
		})
	}
}

func TestIsErrorStatus(t *testing.T) {
	assert.True(t, TradeLogRecord{Status: StatusVerifyError}.IsErrorStatus())
	assert.True(t, TradeLogRecord{Status: StatusMatchError}.IsErrorStatus())
	assert.True(t, TradeLogRecord{Status: StatusReconcileError}.IsErrorStatus())
	assert.False(t, TradeLogRecord{Status: StatusReconciled}.IsErrorStatus())
	assert.False(t, TradeLogRecord{Status: StatusNoMatch}.IsErrorStatus())
}

func TestStatusVocabularyCoversAllCodes(t *testing.T) {
	codes := []string{
		StatusVerified, StatusUnmatched, StatusMatched, StatusReconciled,
		StatusSkipped, StatusNoMatch, StatusVerifyError, StatusMatchError,
		StatusReconcileError,
	}
	for _, code := range codes {
		assert.True(t, KnownStatus(code), "missing vocabulary entry for %s", code)
		assert.NotEqual(t, code, DescribeStatus(code), "description missing for %s", code)
		assert.NotEmpty(t, StatusActions(code), "actions missing for %s", code)
	}
	assert.False(t, KnownStatus("ZZZZ"))
}

func TestStatusIconFollowsUrgency(t *testing.T) {
	assert.Equal(t, "❌", StatusIcon(StatusVerifyError))
	assert.Equal(t, "⚠️", StatusIcon(StatusNoMatch))
	assert.Equal(t, "✅", StatusIcon(StatusReconciled))
	assert.Equal(t, "🔄", StatusIcon(StatusVerified))
	assert.Equal(t, "🔄", StatusIcon("ZZZZ"))
}
