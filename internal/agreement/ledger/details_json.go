package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonMap stores resource details as a JSON object column.
type jsonMap map[string]any

func (m jsonMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}
	return string(raw), nil
}

func (m *jsonMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = jsonMap{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported details type %T", src)
	}

	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("unmarshal details: %w", err)
		}
	}
	*m = out
	return nil
}
