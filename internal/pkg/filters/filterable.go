package filters

// Filterable represents any record that can be filtered (residents, aids, children, etc.)
type Filterable interface {
	// GetStringField returns a string field value by name.
	// Returns empty string if field doesn't exist.
	GetStringField(name string) string

	// HasField returns true if the record carries a value for the named field.
	HasField(name string) bool

	// RecordType returns the type identifier ("resident", "aid", etc.)
	RecordType() string
}
