package formatter

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const NotAvailable = "N/A"

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// FormatOptionalNumber formats n, or N/A when it is unknown.
func FormatOptionalNumber(n *int64) string {
	if n == nil {
		return NotAvailable
	}
	return FormatNumber(*n)
}

func OptionalString(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

func OptionalBool(b *bool) string {
	switch {
	case b == nil:
		return NotAvailable
	case *b:
		return "Yes"
	default:
		return "No"
	}
}

func OptionalTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
