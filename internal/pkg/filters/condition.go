package filters

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the shape of a filter condition
type Kind int

const (
	KindNumeric Kind = iota
	KindDate
	KindExact
	KindMembership
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "date"
	case KindExact:
		return "exact"
	case KindMembership:
		return "membership"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is the serialisable form of a condition (operator plus operands)
type Spec struct {
	Op     string   `yaml:"op" json:"op"`
	Value  string   `yaml:"value,omitempty" json:"value,omitempty"`
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// Condition is a single predicate bound to one field of a record
type Condition interface {
	Kind() Kind
	// Match evaluates the condition against the named field of rec
	Match(rec Filterable, field string) bool
	// Spec returns the operator and operands
	Spec() Spec
	String() string
}

// Numeric operators
const (
	OpGreater = ">"
	OpLess    = "<"
	OpEqual   = "="
)

// Date operators
const (
	OpBefore = "before"
	OpAfter  = "after"
)

// Membership and text operators
const (
	OpIn       = "in"
	OpContains = "~"
)

// NumericCondition compares a numeric field against a constant
type NumericCondition struct {
	Op    string
	Value float64
}

// NewNumericCondition validates the operator and returns the condition
func NewNumericCondition(op string, value float64) (*NumericCondition, error) {
	switch op {
	case OpGreater, OpLess, OpEqual:
		return &NumericCondition{Op: op, Value: value}, nil
	}
	return nil, fmt.Errorf("invalid numeric operator %q", op)
}

func (c *NumericCondition) Kind() Kind { return KindNumeric }

func (c *NumericCondition) Match(rec Filterable, field string) bool {
	if !rec.HasField(field) {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec.GetStringField(field)), 64)
	if err != nil {
		return false
	}
	switch c.Op {
	case OpGreater:
		return v > c.Value
	case OpLess:
		return v < c.Value
	case OpEqual:
		return v == c.Value
	}
	return false
}

func (c *NumericCondition) Spec() Spec {
	return Spec{Op: c.Op, Value: strconv.FormatFloat(c.Value, 'f', -1, 64)}
}

func (c *NumericCondition) String() string {
	return c.Op + strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// DateCondition compares the calendar date of a field against a reference date.
// Time-of-day is discarded on both sides.
type DateCondition struct {
	Op   string
	Date time.Time
}

// NewDateCondition parses value as a calendar date
func NewDateCondition(op, value string) (*DateCondition, error) {
	switch op {
	case OpBefore, OpAfter, OpEqual:
	default:
		return nil, fmt.Errorf("invalid date operator %q", op)
	}
	d, ok := ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &DateCondition{Op: op, Date: d}, nil
}

func (c *DateCondition) Kind() Kind { return KindDate }

func (c *DateCondition) Match(rec Filterable, field string) bool {
	if !rec.HasField(field) {
		return false
	}
	d, ok := ParseDate(rec.GetStringField(field))
	if !ok {
		return false
	}
	switch c.Op {
	case OpBefore:
		return d.Before(c.Date)
	case OpAfter:
		return d.After(c.Date)
	case OpEqual:
		return d.Equal(c.Date)
	}
	return false
}

func (c *DateCondition) Spec() Spec {
	return Spec{Op: c.Op, Value: c.Date.Format(DateLayout)}
}

func (c *DateCondition) String() string {
	return c.Op + ":" + c.Date.Format(DateLayout)
}

// DateLayout is the canonical calendar date format
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006-1-2",
}

// ParseDate parses a date or timestamp and truncates it to a UTC calendar date
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ExactCondition matches fields equal to a single value
type ExactCondition struct {
	Value string
}

func (c *ExactCondition) Kind() Kind { return KindExact }

func (c *ExactCondition) Match(rec Filterable, field string) bool {
	if !rec.HasField(field) {
		return false
	}
	return rec.GetStringField(field) == c.Value
}

func (c *ExactCondition) Spec() Spec {
	return Spec{Op: OpEqual, Value: c.Value}
}

func (c *ExactCondition) String() string {
	return "=" + c.Value
}

// MembershipCondition matches fields whose trimmed value is one of a set.
// An empty set matches nothing.
type MembershipCondition struct {
	Values []string
	set    map[string]struct{}
}

// NewMembershipCondition builds a membership condition over trimmed values
func NewMembershipCondition(values []string) *MembershipCondition {
	c := &MembershipCondition{set: make(map[string]struct{}, len(values))}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := c.set[v]; dup {
			continue
		}
		c.set[v] = struct{}{}
		c.Values = append(c.Values, v)
	}
	return c
}

func (c *MembershipCondition) Kind() Kind { return KindMembership }

func (c *MembershipCondition) Match(rec Filterable, field string) bool {
	if !rec.HasField(field) {
		return false
	}
	_, ok := c.set[strings.TrimSpace(rec.GetStringField(field))]
	return ok
}

func (c *MembershipCondition) Spec() Spec {
	return Spec{Op: OpIn, Values: append([]string(nil), c.Values...)}
}

func (c *MembershipCondition) String() string {
	return "in:" + strings.Join(c.Values, ",")
}

// TextCondition matches a text field against a free-text query
type TextCondition struct {
	Query string
	Mode  MatchMode
}

func (c *TextCondition) Kind() Kind { return KindText }

// Match treats an absent field as an empty string.
func (c *TextCondition) Match(rec Filterable, field string) bool {
	return MatchText(c.Mode, c.Query, rec.GetStringField(field))
}

func (c *TextCondition) Spec() Spec {
	return Spec{Op: OpContains, Value: c.Query}
}

func (c *TextCondition) String() string {
	return "~" + c.Query
}
