package filter

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

// ParsePriorityRule reads "any", "none", "B", "B+" (B or higher) or "B-"
// (B, lower or none).
func ParsePriorityRule(s string) (PriorityRule, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case valueAny, "":
		return PriorityRule{Kind: PriorityAny}, nil
	case valueNone:
		return PriorityRule{Kind: PriorityNone}, nil
	}
	kind := PriorityEqual
	switch {
	case strings.HasSuffix(v, "+"):
		kind, v = PriorityHigher, strings.TrimSuffix(v, "+")
	case strings.HasSuffix(v, "-"):
		kind, v = PriorityLower, strings.TrimSuffix(v, "-")
	}
	p, err := model.ParsePriority(strings.ToUpper(v))
	if err != nil {
		return PriorityRule{}, fmt.Errorf("filter: priority rule: %w", err)
	}
	return PriorityRule{Kind: kind, Value: p}, nil
}

// ParseQuery turns a one-line query such as "+work -@phone #urgent report"
// into list rules and a text search. A leading "-" excludes.
func ParseQuery(q string) Conf {
	var c Conf
	var words []string
	for _, w := range strings.Fields(q) {
		exclude := len(w) > 2 && w[0] == '-'
		token := w
		if exclude {
			token = w[1:]
		}
		var rule *ListRule
		switch token[0] {
		case '+':
			rule = &c.Projects
		case '@':
			rule = &c.Contexts
		case '#':
			rule = &c.Hashtags
		}
		if rule == nil || len(token) < 2 {
			words = append(words, w)
			continue
		}
		if exclude {
			rule.Exclude = append(rule.Exclude, token[1:])
		} else {
			rule.Include = append(rule.Include, token[1:])
		}
	}
	if len(words) > 0 {
		c.Text = &TextRule{Pattern: strings.Join(words, " ")}
	}
	return c
}
