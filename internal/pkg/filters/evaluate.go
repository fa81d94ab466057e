package filters

// Matches reports whether rec satisfies the free-text query and every
// active condition in reg.
func Matches(rec Filterable, reg *Registry, query string) bool {
	if query != "" && !matchesQuery(rec, reg.schema.SearchFields, reg.mode, query) {
		return false
	}
	for field, cond := range reg.conditions {
		if !cond.Match(rec, field) {
			return false
		}
	}
	return true
}

// matchesQuery applies the query to each search field with OR semantics
func matchesQuery(rec Filterable, fields []string, mode MatchMode, query string) bool {
	for _, field := range fields {
		if MatchText(mode, query, rec.GetStringField(field)) {
			return true
		}
	}
	return false
}

// Apply returns the records satisfying query and every active condition,
// preserving input order. The input slice is not modified.
func Apply[T Filterable](records []T, reg *Registry, query string) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if Matches(rec, reg, query) {
			out = append(out, rec)
		}
	}
	return out
}
