package meta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a timestamp cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 or a bare date/time. An offset in the input
// is kept, inputs without one are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatPublishDate parses timestamp and formats it with pattern, a
// date-fns style pattern such as "MMM dd, yy".
func FormatPublishDate(timestamp, pattern string) (string, error) {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return "", err
	}
	return FormatTime(t, pattern), nil
}

// FormatTime formats t with a date-fns style pattern. No timezone
// conversion is applied. Text inside single quotes is copied literally, ''
// is a literal quote, and characters that are not tokens are kept as is.
func FormatTime(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '\'' {
			if strings.HasPrefix(pattern[i:], "''") {
				b.WriteByte('\'')
				i += 2
				continue
			}
			i = copyQuoted(&b, pattern, i+1)
			continue
		}

		matched := false
		for _, pt := range patternTokens {
			if strings.HasPrefix(pattern[i:], pt.token) {
				b.WriteString(pt.format(t))
				i += len(pt.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func layout(l string) func(time.Time) string {
	return func(t time.Time) string { return t.Format(l) }
}

// patternTokens maps date-fns tokens to their formatters, longest first.
var patternTokens = []struct {
	token  string
	format func(time.Time) string
}{
	{"yyyy", layout("2006")},
	{"yy", layout("06")},
	{"MMMM", layout("January")},
	{"MMM", layout("Jan")},
	{"MM", layout("01")},
	{"M", layout("1")},
	{"dd", layout("02")},
	{"d", layout("2")},
	{"EEEE", layout("Monday")},
	{"EEE", layout("Mon")},
	{"HH", layout("15")},
	{"H", func(t time.Time) string { return strconv.Itoa(t.Hour()) }},
	{"hh", layout("03")},
	{"h", layout("3")},
	{"mm", layout("04")},
	{"m", layout("4")},
	{"ss", layout("05")},
	{"s", layout("5")},
	{"a", layout("PM")},
}

// copyQuoted writes the quoted literal starting at i and returns the index
// after its closing quote. An unterminated literal runs to the end.
func copyQuoted(b *strings.Builder, pattern string, i int) int {
	for i < len(pattern) {
		if pattern[i] == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return i + 1
		}
		b.WriteByte(pattern[i])
		i++
	}
	return i
}
