package model

// Urgency classifies how much operator attention a trade's current status
// demands. The chat handler uses it to tag the status line of a report.
type Urgency string

const (
	UrgencyCritical       Urgency = "critical"
	UrgencyNeedsAttention Urgency = "needs_attention"
	UrgencyComplete       Urgency = "complete"
	UrgencyInProgress     Urgency = "in_progress"
)

const (
	StatusVerified       = "VERF"
	StatusUnmatched      = "UMAT"
	StatusMatched        = "MTCH"
	StatusReconciled     = "RCND"
	StatusSkipped        = "SKIP"
	StatusNoMatch        = "UNMT"
	StatusVerifyError    = "ERR1"
	StatusMatchError     = "ERR2"
	StatusReconcileError = "ERR3"

	// ErrorStatusPrefix marks the three terminal error codes.
	ErrorStatusPrefix = "ERR"
)

// StatusInfo is the fixed vocabulary entry for one status code.
type StatusInfo struct {
	Code        string
	Description string
	Urgency     Urgency
	Team        string
	Actions     []string
}

var statusVocabulary = map[string]StatusInfo{
	StatusVerified: {
		Code:        StatusVerified,
		Description: "Verified - Trade passed all validation checks",
		Urgency:     UrgencyInProgress,
		Team:        "Post-Trade Operations (posttrade-support@dtcc.com)",
		Actions: []string{
			"No action required - the trade is progressing through the pipeline.",
			"Check back later for the next lifecycle update.",
		},
	},
	StatusUnmatched: {
		Code:        StatusUnmatched,
		Description: "Unmatched - Trade verified but awaiting matching",
		Urgency:     UrgencyInProgress,
		Team:        "Post-Trade Operations (posttrade-support@dtcc.com)",
		Actions: []string{
			"No action required - the trade is queued for matching.",
			"Check back later for the next lifecycle update.",
		},
	},
	StatusMatched: {
		Code:        StatusMatched,
		Description: "Matched - Trade successfully matched with counterpart",
		Urgency:     UrgencyInProgress,
		Team:        "Post-Trade Operations (posttrade-support@dtcc.com)",
		Actions: []string{
			"No action required - the trade is awaiting reconciliation.",
			"Check back later for the next lifecycle update.",
		},
	},
	StatusReconciled: {
		Code:        StatusReconciled,
		Description: "Reconciled - Trade successfully reconciled with DTCC data",
		Urgency:     UrgencyComplete,
		Team:        "Post-Trade Operations (posttrade-support@dtcc.com)",
		Actions: []string{
			"No action required - the trade is fully reconciled.",
		},
	},
	StatusSkipped: {
		Code:        StatusSkipped,
		Description: "Skipped - Trade skipped due to order type mismatch only",
		Urgency:     UrgencyNeedsAttention,
		Team:        "Trade Support Desk (tradesupport@dtcc.com)",
		Actions: []string{
			"Confirm the order type with the submitting broker.",
			"Resubmit the trade if the order type was recorded incorrectly.",
		},
	},
	StatusNoMatch: {
		Code:        StatusNoMatch,
		Description: "Unmatched - No matching counterpart trade found",
		Urgency:     UrgencyNeedsAttention,
		Team:        "Trade Matching Operations (trade-matching@dtcc.com)",
		Actions: []string{
			"Confirm the counterparty has submitted their side of the trade.",
			"Verify the broker and contra-broker identifiers on the submission.",
		},
	},
	StatusVerifyError: {
		Code:        StatusVerifyError,
		Description: "Verification Error - Failed validation checks",
		Urgency:     UrgencyCritical,
		Team:        "Trade Verification Team (trade-verification@dtcc.com)",
		Actions: []string{
			"Review the validation failures listed in the timeline.",
			"Correct the trade details and resubmit for verification.",
		},
	},
	StatusMatchError: {
		Code:        StatusMatchError,
		Description: "Matching Error - Trade ID matched but fields mismatched",
		Urgency:     UrgencyCritical,
		Team:        "Trade Matching Operations (trade-matching@dtcc.com)",
		Actions: []string{
			"Compare the mismatched fields against the counterparty submission.",
			"Amend the incorrect side and resubmit for matching.",
		},
	},
	StatusReconcileError: {
		Code:        StatusReconcileError,
		Description: "Reconciliation Error - Failed DTCC reconciliation",
		Urgency:     UrgencyCritical,
		Team:        "Reconciliation Team (reconciliation@dtcc.com)",
		Actions: []string{
			"Compare the trade against the DTCC reference data set.",
			"Escalate to the reconciliation team if the discrepancy persists.",
		},
	},
}

// KnownStatus reports whether code belongs to the fixed vocabulary.
func KnownStatus(code string) bool {
	_, ok := statusVocabulary[code]
	return ok
}

// DescribeStatus returns the human-readable description of a status code.
// Unknown codes fall back to the code itself.
func DescribeStatus(code string) string {
	if info, ok := statusVocabulary[code]; ok {
		return info.Description
	}
	return code
}

// StatusUrgency returns the urgency class for a status code.
// Unknown codes are treated as in-progress.
func StatusUrgency(code string) Urgency {
	if info, ok := statusVocabulary[code]; ok {
		return info.Urgency
	}
	return UrgencyInProgress
}

// StatusActions returns the recommended next actions for a status code.
func StatusActions(code string) []string {
	if info, ok := statusVocabulary[code]; ok {
		return info.Actions
	}
	return []string{"Contact Post-Trade Operations for guidance on this status."}
}

// StatusTeam returns the team responsible for trades in the given status.
func StatusTeam(code string) string {
	if info, ok := statusVocabulary[code]; ok {
		return info.Team
	}
	return "Post-Trade Operations (posttrade-support@dtcc.com)"
}

// StatusIcon returns the timeline icon for a status code, keyed by its
// urgency class.
func StatusIcon(code string) string {
	switch StatusUrgency(code) {
	case UrgencyCritical:
		return "❌"
	case UrgencyNeedsAttention:
		return "⚠️"
	case UrgencyComplete:
		return "✅"
	default:
		return "🔄"
	}
}

// UrgencyLabel renders an urgency class as the tag shown on the current
// status line of a trade report.
func UrgencyLabel(u Urgency) string {
	switch u {
	case UrgencyCritical:
		return "🚨 CRITICAL"
	case UrgencyNeedsAttention:
		return "⚠️ NEEDS ATTENTION"
	case UrgencyComplete:
		return "✅ COMPLETE"
	default:
		return "🔄 IN PROGRESS"
	}
}
