package loader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Binding applies one environment variable to a config value.
type Binding struct {
	// Name is the variable name without the loader prefix.
	Name string

	// Set parses the raw value and stores it.
	Set func(value string) error
}

// String binds a string field.
func String(name string, dst *string) Binding {
	return Binding{Name: name, Set: func(value string) error {
		*dst = value
		return nil
	}}
}

// Int binds an integer field.
func Int(name string, dst *int) Binding {
	return Binding{Name: name, Set: func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}}
}

// Bool binds a boolean field.
func Bool(name string, dst *bool) Binding {
	return Binding{Name: name, Set: func(value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}}
}

// EnvLoader overrides config values from environment variables.
type EnvLoader struct {
	prefix string // e.g. "NEOLIB_"
	lookup func(string) (string, bool)
}

// NewEnvLoader creates an environment loader. The prefix should include the
// trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading variables from lookup.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// Apply runs every binding whose variable is set. Empty values are treated
// as set. It returns the names that were applied.
func (l *EnvLoader) Apply(bindings ...Binding) ([]string, error) {
	var applied []string
	for _, b := range bindings {
		name := l.prefix + b.Name
		value, ok := l.lookup(name)
		if !ok {
			continue
		}
		if err := b.Set(value); err != nil {
			return applied, fmt.Errorf("invalid %s=%q: %w", name, value, err)
		}
		applied = append(applied, name)
	}
	sort.Strings(applied)
	return applied, nil
}
