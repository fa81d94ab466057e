package filters

import (
	"fmt"
	"slices"
	"strings"
)

// FieldType is the declared type of a filterable field
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldDate
	FieldEnum
	FieldMulti
	FieldBool
)

func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldNumeric:
		return "numeric"
	case FieldDate:
		return "date"
	case FieldEnum:
		return "enum"
	case FieldMulti:
		return "multi"
	case FieldBool:
		return "bool"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// allowedKinds maps each field type to the condition kinds it accepts
var allowedKinds = map[FieldType][]Kind{
	FieldText:    {KindText, KindExact},
	FieldNumeric: {KindNumeric},
	FieldDate:    {KindDate},
	FieldEnum:    {KindExact, KindMembership},
	FieldMulti:   {KindMembership, KindExact},
	FieldBool:    {KindExact},
}

// Schema declares the filterable fields of one record type
type Schema struct {
	RecordType string
	Fields     map[string]FieldType
	// SearchFields are matched by the free-text query with OR semantics
	SearchFields []string
	// SortField is the primary name field the record store is ordered by
	SortField string
}

// FieldType returns the declared type of a field
func (s Schema) FieldType(name string) (FieldType, bool) {
	ft, ok := s.Fields[name]
	return ft, ok
}

// Accepts reports whether a condition kind may be applied to a field type
func Accepts(ft FieldType, kind Kind) bool {
	return slices.Contains(allowedKinds[ft], kind)
}

// FieldNames returns the declared field names in sorted order
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns "field (type)" pairs for help output
func (s Schema) Describe() string {
	parts := make([]string, 0, len(s.Fields))
	for _, name := range s.FieldNames() {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, s.Fields[name]))
	}
	return strings.Join(parts, ", ")
}
