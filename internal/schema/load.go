package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a schema override from a YAML file: a list of field definitions
// in column order. The result is fixed for the rest of the process; this only
// runs once at startup.
//
//	- name: Meditation
//	  kind: duration
//	  unit: minutes
//	- name: Vibe
//	  kind: scale
//	  min: 1
//	  max: 10
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("schema file %s defines no fields", path)
	}
	seen := map[string]bool{}
	for _, f := range s {
		if f.Name == "" {
			return nil, fmt.Errorf("schema file %s: field with empty name", path)
		}
		if f.Name == "Date" {
			return nil, fmt.Errorf("schema file %s: Date is reserved for the row key", path)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("schema file %s: duplicate field %s", path, f.Name)
		}
		seen[f.Name] = true
		if !f.Kind.IsValid() {
			return nil, fmt.Errorf("schema file %s: field %s has unknown kind %q", path, f.Name, f.Kind)
		}
		if f.Kind == KindScale && f.Min >= f.Max {
			return nil, fmt.Errorf("schema file %s: field %s needs min < max", path, f.Name)
		}
	}
	return s, nil
}
