package tool

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies which variant a [Value] holds.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

// String returns the kind's name for error messages and logs.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is a single tool-call argument value. It is a closed variant over the
// three scalar JSON types a model may supply: string, number, or boolean.
// Values are comparable, so two Args maps holding the same payload are equal.
//
// Non-scalar JSON (objects, arrays, null) is preserved as its raw JSON text in
// a string Value rather than rejected at parse time; whether that text is
// usable is decided by the tool adapter that reads it.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// StringValue wraps s as a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps f as a number Value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps b as a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns which variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Text renders the value as text regardless of its kind. Numbers are formatted
// with the shortest representation that round-trips ("4", not "4.000000").
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return v.str
}

// Float returns the value as a float64. String values holding numeric text are
// coerced; anything else is an error.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", v.str)
		}
		return f, nil
	}
	return 0, fmt.Errorf("value of kind %s is not a number", v.kind)
}

// Bool returns the value as a bool, coercing boolean-looking strings.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.str))
		if err != nil {
			return false, fmt.Errorf("value %q is not a boolean", v.str)
		}
		return b, nil
	}
	return false, fmt.Errorf("value of kind %s is not a boolean", v.kind)
}

// UnmarshalJSON decodes a scalar JSON value into the matching variant.
// Objects and arrays are kept verbatim as string Values; JSON null becomes an
// empty string Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return fmt.Errorf("empty JSON value")
	}
	if trimmed == "null" {
		*v = StringValue("")
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '{', '[':
		*v = StringValue(trimmed)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = NumberValue(f)
	}
	return nil
}

// MarshalJSON encodes the variant back to its scalar JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	}
	return json.Marshal(v.str)
}

// Args is the normalized argument mapping every tool adapter receives.
type Args map[string]Value

// Text returns the named argument rendered as text. A missing key is an
// error; the dispatcher turns it into an observation for the model.
func (a Args) Text(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v.Text(), nil
}

// OptionalText returns the named argument as text, or "" when absent.
func (a Args) OptionalText(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	return v.Text()
}

// Float returns the named argument coerced to a float64.
func (a Args) Float(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	f, err := v.Float()
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", key, err)
	}
	return f, nil
}

// Int returns the named argument coerced to an int.
func (a Args) Int(key string) (int, error) {
	f, err := a.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
