package filters

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// fileLock protects atomic preset writes
	fileLock sync.Mutex
)

// Preset is a saved set of filter conditions and an optional search query
type Preset struct {
	Record  string      `yaml:"record,omitempty"`
	Search  string      `yaml:"search,omitempty"`
	Mode    string      `yaml:"search_mode,omitempty"`
	Filters []FieldSpec `yaml:"filters"`
}

// LoadPreset reads a YAML preset and installs its conditions into reg.
// Invalid entries are skipped and returned as errors so the caller can
// warn about them; the remaining entries are still applied.
func LoadPreset(path string, reg *Registry) (*Preset, []error, error) {
	// #nosec G304 -- Path is from command line flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	if preset.Record != "" && preset.Record != reg.Schema().RecordType {
		return nil, nil, fmt.Errorf("preset is for %s records, not %s", preset.Record, reg.Schema().RecordType)
	}

	if preset.Mode != "" {
		mode, err := ParseMatchMode(preset.Mode)
		if err != nil {
			return nil, nil, err
		}
		reg.SetSearchMode(mode)
	}

	var parseErrors []error
	for _, entry := range preset.Filters {
		ft, ok := reg.Schema().FieldType(entry.Field)
		if !ok {
			parseErrors = append(parseErrors, fmt.Errorf("filter %q: %w", entry.Field, ErrUnknownField))
			continue
		}
		cond, err := BuildCondition(ft, entry.Op, entry.Value, entry.Values)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("filter %q: %w", entry.Field, err))
			continue
		}
		if tc, ok := cond.(*TextCondition); ok {
			tc.Mode = reg.SearchMode()
		}
		if err := reg.Set(entry.Field, cond); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("filter %q: %w", entry.Field, err))
		}
	}

	return &preset, parseErrors, nil
}

// SavePreset writes the active conditions of reg and the search query to path.
// The write is atomic: a temp file is written and renamed into place.
func SavePreset(path string, reg *Registry, search string) error {
	fileLock.Lock()
	defer fileLock.Unlock()

	preset := Preset{
		Record:  reg.Schema().RecordType,
		Search:  search,
		Filters: reg.Specs(),
	}
	if reg.SearchMode() != MatchPrefix {
		preset.Mode = reg.SearchMode().String()
	}

	data, err := yaml.Marshal(&preset)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".preset-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write preset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close preset: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename preset: %w", err)
	}
	return nil
}
