package memvdb

import (
	"fmt"
	"math"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

type collection struct {
	fields  []provider.Field
	byName  map[string]provider.Field
	primary string
	rows    []map[string]any
	nextID  int64
}

func newCollection(fields []provider.Field) (*collection, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: at least one field is required", provider.ErrInvalid)
	}
	c := &collection{
		fields: fields,
		byName: make(map[string]provider.Field, len(fields)),
		nextID: 1,
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field name is empty", provider.ErrInvalid)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", provider.ErrInvalid, f.Name)
		}
		if f.Type == provider.FieldVector && dimension(f) <= 0 {
			return nil, fmt.Errorf("%w: vector field %q needs a positive dimension", provider.ErrInvalid, f.Name)
		}
		if f.Primary() {
			if c.primary != "" {
				return nil, fmt.Errorf("%w: more than one primary field", provider.ErrInvalid)
			}
			c.primary = f.Name
		}
		c.byName[f.Name] = f
	}
	return c, nil
}

func dimension(f provider.Field) int {
	if f.Properties == nil {
		return 0
	}
	return f.Properties.Dimension
}

// normalize validates a record against the schema, fills defaults and converts vectors.
func (c *collection) normalize(record map[string]any, seen map[any]struct{}) (map[string]any, error) {
	row := make(map[string]any, len(c.fields))
	for name, value := range record {
		f, ok := c.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", provider.ErrInvalid, name)
		}
		v, err := convert(f, value)
		if err != nil {
			return nil, err
		}
		row[name] = v
	}

	for _, f := range c.fields {
		if _, ok := row[f.Name]; ok {
			continue
		}
		switch {
		case f.Properties != nil && f.Properties.AutoIncrement:
			row[f.Name] = c.nextID
			c.nextID++
		case f.Properties != nil && f.Properties.Default != nil:
			v, err := convert(f, f.Properties.Default)
			if err != nil {
				return nil, err
			}
			row[f.Name] = v
		case f.Primary() || f.Type == provider.FieldVector:
			return nil, fmt.Errorf("%w: field %q is required", provider.ErrInvalid, f.Name)
		}
	}

	if c.primary != "" {
		key := row[c.primary]
		if n, ok := number(key); ok {
			key = n
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate primary key %v", provider.ErrInvalid, row[c.primary])
		}
		seen[key] = struct{}{}
	}
	return row, nil
}

func (c *collection) primaryKeys() map[any]struct{} {
	keys := make(map[any]struct{}, len(c.rows))
	if c.primary == "" {
		return keys
	}
	for _, row := range c.rows {
		key := row[c.primary]
		if n, ok := number(key); ok {
			key = n
		}
		keys[key] = struct{}{}
	}
	return keys
}

func convert(f provider.Field, value any) (any, error) {
	bad := func() error {
		return fmt.Errorf("%w: field %q expects %s, got %T", provider.ErrInvalid, f.Name, f.Type, value)
	}

	switch f.Type {
	case provider.FieldString, provider.FieldImage:
		if _, ok := value.(string); !ok {
			return nil, bad()
		}
		return value, nil
	case provider.FieldBoolean:
		if _, ok := value.(bool); !ok {
			return nil, bad()
		}
		return value, nil
	case provider.FieldFloat:
		n, ok := number(value)
		if !ok {
			return nil, bad()
		}
		return n, nil
	case provider.FieldInteger32, provider.FieldInteger64:
		n, ok := number(value)
		if !ok || n != math.Trunc(n) {
			return nil, bad()
		}
		if f.Type == provider.FieldInteger32 && (n < math.MinInt32 || n > math.MaxInt32) {
			return nil, fmt.Errorf("%w: field %q overflows Integer32", provider.ErrInvalid, f.Name)
		}
		return int64(n), nil
	case provider.FieldVector:
		items, ok := value.([]any)
		if !ok {
			return nil, bad()
		}
		if len(items) != dimension(f) {
			return nil, fmt.Errorf("%w: field %q expects %d dimensions, got %d", provider.ErrInvalid, f.Name, dimension(f), len(items))
		}
		vec := make([]float64, len(items))
		for i, item := range items {
			n, ok := number(item)
			if !ok {
				return nil, bad()
			}
			vec[i] = n
		}
		return vec, nil
	default:
		return nil, fmt.Errorf("%w: field %q has unknown type %q", provider.ErrInvalid, f.Name, f.Type)
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
