package filters

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a filter expression that could not be parsed
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Expr, e.Reason)
}

// ParseExpression parses "field:<op><value>" into a field name and a condition.
//
// Accepted forms depend on the field type:
//
//	numeric   age:>5  age:<5  age:=5
//	date      date:before:2024-01-01  date:after:2024-01-01  date:=2024-01-01
//	enum      damage_level:=كلي  neighborhood:in:أ,ب
//	text      name:~ahm  name:=Ahmad
//	bool      has_received_aid:=true
func ParseExpression(schema Schema, expr string) (string, Condition, error) {
	field, rest, ok := strings.Cut(strings.TrimSpace(expr), ":")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", nil, &ParseError{Expr: expr, Reason: "expected field:condition"}
	}
	ft, known := schema.FieldType(field)
	if !known {
		return "", nil, &ParseError{Expr: expr, Reason: fmt.Sprintf("unknown field %s (known: %s)", field, schema.Describe())}
	}
	op, value := splitOperator(ft, rest)
	cond, err := BuildCondition(ft, op, value, nil)
	if err != nil {
		return "", nil, &ParseError{Expr: expr, Reason: err.Error()}
	}
	return field, cond, nil
}

// splitOperator extracts the operator prefix from the text after the field name
func splitOperator(ft FieldType, s string) (op, value string) {
	s = strings.TrimSpace(s)

	if ft == FieldDate {
		for _, word := range []string{OpBefore, OpAfter} {
			if after, ok := strings.CutPrefix(s, word+":"); ok {
				return word, strings.TrimSpace(after)
			}
		}
	}
	if after, ok := strings.CutPrefix(s, OpIn+":"); ok {
		return OpIn, after
	}

	// Check for two-character operators first
	if strings.HasPrefix(s, "==") {
		return OpEqual, strings.TrimSpace(s[2:])
	}
	if strings.HasPrefix(s, ">=") || strings.HasPrefix(s, "<=") {
		return s[:2], strings.TrimSpace(s[2:])
	}

	switch {
	case strings.HasPrefix(s, OpGreater):
		return OpGreater, strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, OpLess):
		return OpLess, strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, OpEqual):
		// date:=:2024-01-01 and date:=2024-01-01 are both accepted
		return OpEqual, strings.TrimPrefix(strings.TrimSpace(s[1:]), ":")
	case strings.HasPrefix(s, OpContains):
		return OpContains, s[1:]
	}

	// A bare value means equality
	return OpEqual, s
}

// BuildCondition constructs a condition for a field of type ft.
// values is only consulted for the membership operator; when empty the
// comma-separated value is used instead.
func BuildCondition(ft FieldType, op, value string, values []string) (Condition, error) {
	op = strings.TrimSpace(op)
	switch ft {
	case FieldNumeric:
		if op == "==" {
			op = OpEqual
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", value)
		}
		return NewNumericCondition(op, n)

	case FieldDate:
		switch op {
		case OpGreater:
			op = OpAfter
		case OpLess:
			op = OpBefore
		case "==":
			op = OpEqual
		}
		return NewDateCondition(op, value)
	}

	switch op {
	case OpEqual, "==":
		if ft == FieldBool {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("value %q is not true or false", value)
			}
			value = strconv.FormatBool(b)
		}
		return &ExactCondition{Value: value}, nil

	case OpIn:
		if ft == FieldText || ft == FieldBool {
			return nil, fmt.Errorf("membership not supported on %s fields", ft)
		}
		if len(values) == 0 {
			values = strings.Split(value, ",")
		}
		return NewMembershipCondition(values), nil

	case OpContains:
		if ft != FieldText {
			return nil, fmt.Errorf("text search not supported on %s fields", ft)
		}
		return &TextCondition{Query: value}, nil
	}

	return nil, fmt.Errorf("operator %q not supported on %s fields", op, ft)
}

// ApplyExpressions parses each expression and installs it in reg.
// Later expressions for the same field replace earlier ones.
func ApplyExpressions(reg *Registry, exprs []string) error {
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		field, cond, err := ParseExpression(reg.Schema(), expr)
		if err != nil {
			return err
		}
		if tc, ok := cond.(*TextCondition); ok {
			tc.Mode = reg.SearchMode()
		}
		if err := reg.Set(field, cond); err != nil {
			return err
		}
	}
	return nil
}
