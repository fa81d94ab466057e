package filters

import (
	"fmt"
	"strings"
)

// MatchMode selects how free-text queries are compared with field values
type MatchMode int

const (
	// MatchPrefix compares the query character by character against the
	// start of the value, case-insensitively.
	MatchPrefix MatchMode = iota
	// MatchContains accepts the query anywhere in the value.
	MatchContains
)

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "prefix"
}

// ParseMatchMode converts "prefix" or "contains" into a MatchMode
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return MatchPrefix, nil
	case "contains":
		return MatchContains, nil
	}
	return MatchPrefix, fmt.Errorf("unknown search mode %q (want prefix or contains)", s)
}

// MatchText reports whether value satisfies query under mode.
// An empty query matches every value.
func MatchText(mode MatchMode, query, value string) bool {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true
	}
	if mode == MatchContains {
		return strings.Contains(strings.ToLower(value), string(q))
	}
	v := []rune(strings.ToLower(value))
	if len(q) > len(v) {
		return false
	}
	for i, r := range q {
		if v[i] != r {
			return false
		}
	}
	return true
}
