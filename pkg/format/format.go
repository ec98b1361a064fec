// Package format renders upstream field values the way the dashboard
// displays them: Nigerian local phone numbers, long-form join dates, and
// naira amounts. Every helper falls back to the placeholder glyph rather
// than failing on malformed input.
package format

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder is the visible glyph substituted for missing values.
const Placeholder = "—"

var (
	ngPrefixRe   = regexp.MustCompile(`^\+234\s*`)
	phoneNoiseRe = regexp.MustCompile(`[\s()-]`)
	tzSuffixRe   = regexp.MustCompile(`\s([+-]\d{2}:\d{2})$`)
)

// Phone renders a raw phone number in Nigerian local form: the +234 prefix
// is dropped and a leading zero restored.
func Phone(raw string) string {
	if raw == "" || raw == Placeholder {
		return Placeholder
	}
	cleaned := ngPrefixRe.ReplaceAllString(raw, "")
	cleaned = phoneNoiseRe.ReplaceAllString(cleaned, "")
	if len(cleaned) == 10 && !strings.HasPrefix(cleaned, "0") {
		cleaned = "0" + cleaned
	}
	if cleaned == "" {
		return raw
	}
	return cleaned
}

var joinedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// JoinedDate renders a registration timestamp as e.g. "April 23, 2016 10:20 AM".
// Upstream timestamps sometimes carry a stray space before the zone offset;
// that is stripped before parsing. Unparseable input is returned verbatim.
func JoinedDate(raw string) string {
	if raw == "" || raw == Placeholder {
		return Placeholder
	}
	cleaned := tzSuffixRe.ReplaceAllString(raw, "$1")
	for _, layout := range joinedLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format("January 2, 2006 3:04 PM")
		}
	}
	return raw
}

// JoinedTime parses the registration timestamp for ordering purposes. The
// second return value reports whether parsing succeeded.
func JoinedTime(raw string) (time.Time, bool) {
	if raw == "" || raw == Placeholder {
		return time.Time{}, false
	}
	cleaned := tzSuffixRe.ReplaceAllString(raw, "$1")
	for _, layout := range joinedLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Naira renders a monetary string as a naira amount with thousand
// separators, e.g. "₦12,345.67".
func Naira(raw string) string {
	if raw == "" || raw == Placeholder {
		return Placeholder
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return "₦" + groupThousands(amount.StringFixed(2))
}

func groupThousands(value string) string {
	sign := ""
	if strings.HasPrefix(value, "-") {
		sign = "-"
		value = value[1:]
	}
	intPart := value
	fracPart := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		intPart = value[:idx]
		fracPart = value[idx:]
	}
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + fracPart
}

// OrPlaceholder substitutes the placeholder glyph for empty values.
func OrPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
