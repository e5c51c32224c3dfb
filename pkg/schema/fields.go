package schema

import (
	"fmt"
	"sort"
)

// Type validates a single free-form value.
type Type struct {
	Name  string
	check func(any) error
}

// Validate checks v against t.
func (t Type) Validate(v any) error {
	if t.check == nil {
		return nil
	}
	return t.check(v)
}

// String accepts strings.
func String() Type {
	return Type{Name: "string", check: func(v any) error {
		if _, ok := v.(string); !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		return nil
	}}
}

// Float accepts any numeric value.
func Float() Type {
	return Type{Name: "float", check: func(v any) error {
		switch v.(type) {
		case int, int64, uint64, float32, float64:
			return nil
		}
		return fmt.Errorf("expected number, got %T", v)
	}}
}

// Bool accepts booleans.
func Bool() Type {
	return Type{Name: "bool", check: func(v any) error {
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		return nil
	}}
}

// OneOf accepts one of a fixed set of strings.
func OneOf(options ...string) Type {
	return Type{Name: "enum", check: func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		for _, o := range options {
			if s == o {
				return nil
			}
		}
		return fmt.Errorf("expected one of %v", options)
	}}
}

// Fields maps data keys to their types. Every listed key is required.
type Fields map[string]Type

// LayerData holds the data schema of each layer kind that has one.
var LayerData = map[string]Fields{
	"text":  {"text": String()},
	"shape": {"shape": OneOf("rect", "ellipse", "line")},
}

// Validate checks data against f and reports failures under prefix.
func (f Fields) Validate(prefix string, data map[string]any) error {
	var c collector
	f.validate(&c, prefix, data)
	return c.err()
}

func (f Fields) validate(c *collector, prefix string, data map[string]any) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := data[k]
		if !ok {
			c.fail(prefix+"."+k, "required", nil)
			continue
		}
		if err := f[k].Validate(v); err != nil {
			c.fail(prefix+"."+k, err.Error(), v)
		}
	}
}
