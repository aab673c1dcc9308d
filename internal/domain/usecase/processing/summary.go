package processing

import (
	"fmt"
	"strings"
)

const (
	// DefaultErrorSummaryLimit is how many messages a rejection summary lists
	DefaultErrorSummaryLimit = 5
	// MaxErrorMessageLength bounds the stored rejection message
	MaxErrorMessageLength = 2000

	structuralPrefix   = "structural validation failed"
	businessRulePrefix = "business rule validation failed"
)

// SummarizeErrors joins the first limit messages behind prefix and notes how many were left out
func SummarizeErrors(prefix string, messages []string, limit int) string {
	if limit <= 0 {
		limit = DefaultErrorSummaryLimit
	}

	shown := messages
	if len(shown) > limit {
		shown = shown[:limit]
	}

	var b strings.Builder
	b.WriteString(prefix)
	if len(shown) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(shown, "; "))
	}
	if hidden := len(messages) - len(shown); hidden > 0 {
		fmt.Fprintf(&b, " (and %d more)", hidden)
	}

	return truncate(b.String(), MaxErrorMessageLength)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
