package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

type ValueKind string

const (
	ValueKindNumber ValueKind = "number"
	ValueKindBool   ValueKind = "boolean"
	ValueKindString ValueKind = "string"
)

// Value is the tagged variant used for condition literals and resolved
// variable values. The dynamic "number or bool or string" field from the
// admin UI is decoded into exactly one of the three kinds; validation
// against the variable's declared data type happens at rule-save time.
type Value struct {
	Kind   ValueKind
	Number float64
	Bool   bool
	Text   string
}

func NumberValue(n float64) Value { return Value{Kind: ValueKindNumber, Number: n} }
func BoolValue(b bool) Value      { return Value{Kind: ValueKindBool, Bool: b} }
func StringValue(s string) Value  { return Value{Kind: ValueKindString, Text: s} }

// AsNumber reports the numeric view of the value. Booleans coerce to
// 0/1; strings only if they parse as a number.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case ValueKindNumber:
		return v.Number, true
	case ValueKindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case ValueKindString:
		n, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueKindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueKindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindNumber:
		return json.Marshal(v.Number)
	case ValueKindBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch typed := raw.(type) {
	case float64:
		*v = NumberValue(typed)
	case bool:
		*v = BoolValue(typed)
	case string:
		*v = StringValue(typed)
	case nil:
		*v = Value{}
	default:
		return fmt.Errorf("unsupported condition value type %T", raw)
	}
	return nil
}

// Value/Scan store the variant as its JSON encoding in a text column.

func (v Value) Value() (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Value) Scan(src interface{}) error {
	switch typed := src.(type) {
	case nil:
		*v = Value{}
		return nil
	case []byte:
		return v.UnmarshalJSON(typed)
	case string:
		return v.UnmarshalJSON([]byte(typed))
	default:
		return fmt.Errorf("cannot scan %T into Value", src)
	}
}
