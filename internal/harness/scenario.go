package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a query scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schemas is the directory of CUE predicate declarations.
	// Relative paths are resolved against the scenario file.
	Schemas string `yaml:"schemas"`

	// Index lists "label.field" references to index on top of the fields
	// the declarations mark as indexed.
	Index []string `yaml:"index,omitempty"`

	// Facts is ASP text; every fact must unify with a declared predicate.
	Facts string `yaml:"facts"`

	// Queries run in order against the loaded facts.
	Queries []Query `yaml:"queries"`
}

// Query is one Select with its expected outcome.
type Query struct {
	Name string `yaml:"name"`

	// Select is the label of the queried predicate.
	Select string `yaml:"select"`

	Where *Where `yaml:"where,omitempty"`

	// Args and NamedArgs are passed to Get. They cannot both be set.
	Args      []any          `yaml:"args,omitempty"`
	NamedArgs map[string]any `yaml:"named_args,omitempty"`

	// Unique runs GetUnique instead of All.
	Unique bool `yaml:"unique,omitempty"`

	// Expect is the set of matching facts in ASP text form.
	Expect []string `yaml:"expect,omitempty"`

	// Count is the expected number of matches.
	Count *int `yaml:"count,omitempty"`

	// ExpectError is the expected query error code, e.g. NOT_FOUND.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Mode is the expected plan mode: index-driven or full-scan.
	Mode string `yaml:"mode,omitempty"`
}

// Where is one node of a query condition.
type Where struct {
	And    []Where `yaml:"and,omitempty"`
	Or     []Where `yaml:"or,omitempty"`
	Not    *Where  `yaml:"not,omitempty"`
	Static *bool   `yaml:"static,omitempty"`

	Field       string `yaml:"field,omitempty"`
	Op          string `yaml:"op,omitempty"`
	Value       any    `yaml:"value,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	OtherField  string `yaml:"other_field,omitempty"`
	Default     any    `yaml:"default,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The schemas path is resolved relative to the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Schemas != "" && !filepath.IsAbs(scenario.Schemas) {
		scenario.Schemas = filepath.Join(filepath.Dir(path), scenario.Schemas)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML without resolving or checking paths.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Schemas == "" {
		return fmt.Errorf("schemas directory is required")
	}
	if _, err := os.Stat(s.Schemas); os.IsNotExist(err) {
		return fmt.Errorf("schemas directory not found: %s", s.Schemas)
	}

	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Queries))
	for i, q := range s.Queries {
		if err := validateQuery(i, &q); err != nil {
			return err
		}
		if names[q.Name] {
			return fmt.Errorf("queries[%d]: duplicate query name %q", i, q.Name)
		}
		names[q.Name] = true
	}

	return nil
}

// validateQuery validates a single query.
func validateQuery(index int, q *Query) error {
	if q.Name == "" {
		return fmt.Errorf("queries[%d]: name is required", index)
	}
	if q.Select == "" {
		return fmt.Errorf("queries[%d]: select is required", index)
	}
	if len(q.Args) > 0 && len(q.NamedArgs) > 0 {
		return fmt.Errorf("queries[%d]: args and named_args are mutually exclusive", index)
	}
	if q.ExpectError != "" && (q.Expect != nil || q.Count != nil) {
		return fmt.Errorf("queries[%d]: expect_error excludes expect and count", index)
	}
	if q.Count != nil && *q.Count < 0 {
		return fmt.Errorf("queries[%d]: count must be non-negative", index)
	}
	if q.Where != nil {
		if err := q.Where.validate(); err != nil {
			return fmt.Errorf("queries[%d].where: %w", index, err)
		}
	}
	return nil
}

// validate checks that a node has exactly one shape.
func (w *Where) validate() error {
	shapes := 0
	if w.And != nil {
		shapes++
	}
	if w.Or != nil {
		shapes++
	}
	if w.Not != nil {
		shapes++
	}
	if w.Static != nil {
		shapes++
	}
	if w.Field != "" {
		shapes++
	}
	if shapes != 1 {
		return fmt.Errorf("node must be exactly one of and, or, not, static or a comparison")
	}

	switch {
	case w.And != nil || w.Or != nil:
		children := w.And
		if w.Or != nil {
			children = w.Or
		}
		if len(children) < 2 {
			return fmt.Errorf("and/or needs at least two conditions")
		}
		for i := range children {
			if err := children[i].validate(); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case w.Not != nil:
		return w.Not.validate()
	case w.Field != "":
		if w.Op == "" {
			return fmt.Errorf("comparison on %s needs an op", w.Field)
		}
		operands := 0
		if w.Value != nil {
			operands++
		}
		if w.Placeholder != "" {
			operands++
		}
		if w.OtherField != "" {
			operands++
		}
		if operands != 1 {
			return fmt.Errorf("comparison on %s needs exactly one of value, placeholder or other_field", w.Field)
		}
		if strings.HasPrefix(w.Placeholder, "#") {
			return fmt.Errorf("placeholder %q must not start with '#'", w.Placeholder)
		}
		if w.Default != nil && w.Placeholder == "" {
			return fmt.Errorf("default is only valid with a placeholder")
		}
	}
	return nil
}
