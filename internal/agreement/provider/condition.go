package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Operator is a comparison used by delete conditions.
type Operator string

const (
	OpEq        Operator = "="
	OpGt        Operator = ">"
	OpLt        Operator = "<"
	OpGte       Operator = ">="
	OpLte       Operator = "<="
	OpNeq       Operator = "!="
	OpLike      Operator = "LIKE"
	OpLikeLower Operator = "like"
	OpIn        Operator = "IN"
	OpInLower   Operator = "in"
)

func (o Operator) valid() bool {
	switch o {
	case OpEq, OpGt, OpLt, OpGte, OpLte, OpNeq, OpLike, OpLikeLower, OpIn, OpInLower:
		return true
	}
	return false
}

// ConditionKind tells which variant a ConditionValue holds.
type ConditionKind uint8

const (
	ConditionScalar ConditionKind = iota + 1
	ConditionOperator
)

// ConditionValue is either a scalar (string, number, bool) compared for equality or an
// explicit {operator, value} comparison.
type ConditionValue struct {
	Kind     ConditionKind
	Operator Operator
	Value    any
}

// Equals builds a scalar condition.
func Equals(v any) ConditionValue {
	return ConditionValue{Kind: ConditionScalar, Operator: OpEq, Value: v}
}

// Compare builds an operator condition.
func Compare(op Operator, v any) ConditionValue {
	return ConditionValue{Kind: ConditionOperator, Operator: op, Value: v}
}

func (c *ConditionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty condition")
	}

	if data[0] == '{' {
		var raw struct {
			Operator *Operator `json:"operator"`
			Value    any       `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw.Operator == nil || !raw.Operator.valid() {
			return fmt.Errorf("condition operator must be one of = > < >= <= != LIKE like in IN")
		}
		*c = Compare(*raw.Operator, raw.Value)
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case string, float64, bool:
		*c = Equals(v)
		return nil
	default:
		return fmt.Errorf("condition must be a string, number, boolean or {operator, value}")
	}
}

func (c ConditionValue) MarshalJSON() ([]byte, error) {
	if c.Kind == ConditionOperator {
		return json.Marshal(struct {
			Operator Operator `json:"operator"`
			Value    any      `json:"value"`
		}{c.Operator, c.Value})
	}
	return json.Marshal(c.Value)
}
