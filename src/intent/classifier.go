// Package intent routes an inbound chat message to one of the pipeline's
// handling branches. Rules are applied in a fixed order and the first match
// wins; several patterns can match the same message, so the order is part of
// the observable behavior and must not be rearranged.
package intent

import (
	"regexp"
	"strings"
)

// Kind names a handling branch.
type Kind string

const (
	KindGreeting    Kind = "greeting"
	KindOffTopic    Kind = "off_topic"
	KindReport      Kind = "report"
	KindTradeLookup Kind = "trade_lookup"
	KindSummary     Kind = "summary"
	KindFallthrough Kind = "fallthrough"
)

// Intent is the classification of one user message.
type Intent struct {
	Kind    Kind
	TradeID string // set for KindTradeLookup, canonical lowercase
	Period  string // set for KindReport and KindSummary
}

var (
	reGreeting = regexp.MustCompile(`(?i)^\s*(hello|hi|hey|greetings|good (morning|afternoon|evening))\b`)

	reReport = regexp.MustCompile(`(?i)\b(generate|create|export|download)\s+(daily|weekly|monthly|today|report)(\s+report)?\b`)

	reTradeID         = regexp.MustCompile(`(?i)\b(tid\s*\d{6,})\b`)
	reTradeIDExplicit = regexp.MustCompile(`(?i)\btrade\s*id\s*[:#]?\s*(\d{6,})\b`)

	reSummary = regexp.MustCompile(`(?i)\b(summary|status|dashboard|overview|today)\b`)

	// The dating service shares its name with trade matching; a mention of it
	// by name is off-topic regardless of other keywords, unless the message
	// is a greeting.
	reHomonym = regexp.MustCompile(`(?i)\b(match\.com|matchmaking|dating)\b`)

	reNonAlnum = regexp.MustCompile(`[^a-z0-9]`)
)

var offTopicIndicators = []string{
	"movie", "film", "netflix", "spotify", "song", "music", "playlist",
	"game", "gaming", "recipe", "cooking", "restaurant", "weather",
	"sports", "cricket", "football", "joke", "instagram", "tiktok",
	"youtube", "shopping", "holiday trip",
}

var domainKeywords = []string{
	"trade", "status", "report", "settlement", "reconcil", "match",
	"verif", "dtcc", "tid", "summary", "dashboard", "error", "counterpart",
	"broker", "post-trade",
}

// Classify inspects the latest user message and picks the handling branch.
// Prior turns are ignored.
func Classify(message string) Intent {
	lower := strings.ToLower(message)

	// 1. Greeting
	if reGreeting.MatchString(message) {
		return Intent{Kind: KindGreeting}
	}

	// 2. Off-topic: an off-topic indicator with no domain vocabulary, or a
	// mention of the homonym service by name.
	if reHomonym.MatchString(message) {
		return Intent{Kind: KindOffTopic}
	}
	if containsAny(lower, offTopicIndicators) && !containsAny(lower, domainKeywords) {
		return Intent{Kind: KindOffTopic}
	}

	// 3. Report generation. Checked before the summary branch so that
	// "generate today's status report" is not swallowed by the cheaper rule.
	if m := reReport.FindStringSubmatch(message); m != nil {
		return Intent{Kind: KindReport, Period: normalizePeriodToken(m[2])}
	}

	// 4. Trade lookup. A specific identifier wins over vague status words.
	if m := reTradeID.FindStringSubmatch(message); m != nil {
		return Intent{Kind: KindTradeLookup, TradeID: normalizeTradeID(m[1])}
	}
	if m := reTradeIDExplicit.FindStringSubmatch(message); m != nil {
		return Intent{Kind: KindTradeLookup, TradeID: normalizeTradeID("tid" + m[1])}
	}

	// 5. Status summary -> unfiltered "today" aggregate.
	if reSummary.MatchString(message) {
		return Intent{Kind: KindSummary, Period: "today"}
	}

	// 6. Fallthrough to the model.
	return Intent{Kind: KindFallthrough}
}

// normalizeTradeID lowercases the token and strips everything outside
// [a-z0-9], e.g. "TID 000012" -> "tid000012".
func normalizeTradeID(token string) string {
	return reNonAlnum.ReplaceAllString(strings.ToLower(token), "")
}

// normalizePeriodToken maps a bare "report" to the daily window.
func normalizePeriodToken(token string) string {
	token = strings.ToLower(token)
	if token == "report" {
		return "daily"
	}
	return token
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
