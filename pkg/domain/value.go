package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Value is an animatable property value. Scalars have one component,
// colours have four (r, g, b in 0..255 and alpha in 0..1).
type Value []float64

// Scalar builds a single-component value.
func Scalar(v float64) Value { return Value{v} }

// Float returns the first component, or 0 for an empty value.
func (v Value) Float() float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// ParseValue converts a decoded document node into a Value.
// Accepted forms are numbers, sequences of numbers, and colour strings
// (#rgb, #rrggbb, #rrggbbaa or a CSS colour name).
func ParseValue(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case Value:
		return t, nil
	case float64:
		return Value{t}, nil
	case float32:
		return Value{float64(t)}, nil
	case int:
		return Value{float64(t)}, nil
	case int64:
		return Value{float64(t)}, nil
	case uint64:
		return Value{float64(t)}, nil
	case []float64:
		return Value(t), nil
	case []any:
		out := make(Value, 0, len(t))
		for i, item := range t {
			if _, nested := item.([]any); nested {
				return nil, fmt.Errorf("component %d: nested values are not supported", i)
			}
			c, err := ParseValue(item)
			if err != nil {
				return nil, fmt.Errorf("component %d: %w", i, err)
			}
			if len(c) != 1 {
				return nil, fmt.Errorf("component %d: expected a number", i)
			}
			out = append(out, c[0])
		}
		return out, nil
	case string:
		return ParseColor(t)
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

// ParseColor parses a hex colour or a named colour into an RGBA value.
func ParseColor(s string) (Value, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("empty colour")
	}
	if !strings.HasPrefix(s, "#") {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return Value{n}, nil
		}
		c, ok := colornames.Map[s]
		if !ok {
			return nil, fmt.Errorf("unknown colour %q", s)
		}
		return Value{float64(c.R), float64(c.G), float64(c.B), float64(c.A) / 255}, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid hex colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	alpha := 1.0
	if len(hex) == 8 {
		alpha = float64(n&0xff) / 255
		n >>= 8
	}
	return Value{float64(n >> 16 & 0xff), float64(n >> 8 & 0xff), float64(n & 0xff), alpha}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
