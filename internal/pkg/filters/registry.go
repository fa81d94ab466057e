package filters

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

var (
	// ErrUnknownField is returned when a condition targets a field the schema does not declare
	ErrUnknownField = errors.New("unknown field")
	// ErrKindMismatch is returned when a condition kind is not valid for the field type
	ErrKindMismatch = errors.New("condition kind not allowed for field")
)

// Registry holds the active conditions for one record type, at most one per field.
// A Registry is owned by a single command invocation and is not safe for
// concurrent mutation.
type Registry struct {
	schema     Schema
	conditions map[string]Condition
	mode       MatchMode
}

// NewRegistry creates an empty registry for schema
func NewRegistry(schema Schema) *Registry {
	return &Registry{
		schema:     schema,
		conditions: make(map[string]Condition),
	}
}

// Schema returns the schema the registry validates against
func (r *Registry) Schema() Schema {
	return r.schema
}

// SetSearchMode changes how the free-text query and every installed
// text condition are matched
func (r *Registry) SetSearchMode(mode MatchMode) {
	r.mode = mode
	for _, cond := range r.conditions {
		if tc, ok := cond.(*TextCondition); ok {
			tc.Mode = mode
		}
	}
}

// SearchMode returns the current free-text match mode
func (r *Registry) SearchMode() MatchMode {
	return r.mode
}

// Set installs cond for field, replacing any existing condition
func (r *Registry) Set(field string, cond Condition) error {
	ft, ok := r.schema.FieldType(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if cond == nil {
		return fmt.Errorf("nil condition for %s", field)
	}
	if !Accepts(ft, cond.Kind()) {
		return fmt.Errorf("%w: %s condition on %s field %s", ErrKindMismatch, cond.Kind(), ft, field)
	}
	r.conditions[field] = cond
	return nil
}

// Get returns the condition for field, if any
func (r *Registry) Get(field string) (Condition, bool) {
	c, ok := r.conditions[field]
	return c, ok
}

// Clear removes the condition for field. Clearing an absent field is a no-op.
func (r *Registry) Clear(field string) {
	delete(r.conditions, field)
}

// ClearAll removes every condition
func (r *Registry) ClearAll() {
	clear(r.conditions)
}

// Len returns the number of active conditions
func (r *Registry) Len() int {
	return len(r.conditions)
}

// Active yields (field, condition) pairs ordered by field name
func (r *Registry) Active() iter.Seq2[string, Condition] {
	return func(yield func(string, Condition) bool) {
		for _, field := range slices.Sorted(maps.Keys(r.conditions)) {
			if !yield(field, r.conditions[field]) {
				return
			}
		}
	}
}

// Specs returns the serialisable form of every active condition
func (r *Registry) Specs() []FieldSpec {
	out := make([]FieldSpec, 0, len(r.conditions))
	for field, cond := range r.Active() {
		out = append(out, FieldSpec{Field: field, Spec: cond.Spec()})
	}
	return out
}

// FieldSpec pairs a field name with a condition spec
type FieldSpec struct {
	Field string `yaml:"field" json:"field"`
	Spec  `yaml:",inline"`
}
