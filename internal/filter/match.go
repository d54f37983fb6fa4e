package filter

import "strings"

// MatchMode is how a list pattern is compared with a value.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchPrefix
	MatchSuffix
	MatchContains
)

const wildcard = "*"

// Pattern is a lower-cased list value with its wildcard markers removed.
type Pattern struct {
	Mode MatchMode
	Text string
}

// ParsePattern reads "word", "word*", "*word" or "*word*".
func ParsePattern(s string) Pattern {
	s = strings.ToLower(strings.TrimSpace(s))
	lead := strings.HasPrefix(s, wildcard)
	trail := len(s) > 1 && strings.HasSuffix(s, wildcard)
	text := strings.Trim(s, wildcard)
	switch {
	case lead && trail:
		return Pattern{Mode: MatchContains, Text: text}
	case lead:
		return Pattern{Mode: MatchSuffix, Text: text}
	case trail:
		return Pattern{Mode: MatchPrefix, Text: text}
	default:
		return Pattern{Mode: MatchExact, Text: text}
	}
}

// Match compares v case-insensitively. An empty value never matches.
func (p Pattern) Match(v string) bool {
	if v == "" {
		return false
	}
	v = strings.ToLower(v)
	switch p.Mode {
	case MatchPrefix:
		return strings.HasPrefix(v, p.Text)
	case MatchSuffix:
		return strings.HasSuffix(v, p.Text)
	case MatchContains:
		return strings.Contains(v, p.Text)
	default:
		return p.Text != "" && v == p.Text
	}
}

func (p Pattern) String() string {
	switch p.Mode {
	case MatchPrefix:
		return p.Text + wildcard
	case MatchSuffix:
		return wildcard + p.Text
	case MatchContains:
		return wildcard + p.Text + wildcard
	default:
		return p.Text
	}
}
