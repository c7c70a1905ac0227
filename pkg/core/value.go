package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the variant carried by a Variable. It is exactly one of Number,
// Integer, Text, Bool, Enum or StateRef. A nil Value means "no value".
type Value interface {
	isValue()
	// String renders the value as it appears in a document.
	String() string
}

// Number is a float value. Layout math runs in float32.
type Number float32

// Integer is an int value such as a color component or a font size. It is
// written without a float suffix.
type Integer int32

// Text is a string value.
type Text string

// Bool is a boolean value.
type Bool bool

// Enum is a member of a named enum type, e.g. {DimensionUnitType, Percentage}.
type Enum struct {
	Type   string
	Member string
}

// StateRef selects a state in a category. Category is empty when the
// reference targets an uncategorized state.
type StateRef struct {
	Category string
	Member   string
}

func (Number) isValue()   {}
func (Integer) isValue()  {}
func (Text) isValue()     {}
func (Bool) isValue()     {}
func (Enum) isValue()     {}
func (StateRef) isValue() {}

func (n Number) String() string  { return FormatFloat(float32(n)) }
func (i Integer) String() string { return strconv.Itoa(int(i)) }
func (t Text) String() string    { return string(t) }
func (b Bool) String() string    { return strconv.FormatBool(bool(b)) }
func (e Enum) String() string    { return e.Type + "." + e.Member }

func (s StateRef) String() string {
	if s.Category == "" {
		return s.Member
	}
	return s.Category + "." + s.Member
}

// Magnitudes outside [1e-4, 1e9) switch to exponent form, matching the
// invariant-culture formatting of a C# float.
const (
	maxFixedDigits   = 9
	minFixedExponent = -4
)

// FormatFloat formats f with the shortest culture-invariant representation
// that round-trips through float32 ("5", "0.5", "-12.25", "1E+20").
func FormatFloat(f float32) string {
	sci := strconv.FormatFloat(float64(f), 'e', -1, 32)
	mantissa, exp, _ := strings.Cut(sci, "e")
	e, err := strconv.Atoi(exp)
	if err != nil || (e < maxFixedDigits && e >= minFixedExponent) {
		return strconv.FormatFloat(float64(f), 'f', -1, 32)
	}

	sign := "+"
	if e < 0 {
		sign, e = "-", -e
	}
	return fmt.Sprintf("%sE%s%02d", mantissa, sign, e)
}

// ParseValue builds a Value from a raw document scalar and the variable's
// declared type. Unknown types fall back to the scalar's own kind.
func ParseValue(typeName string, raw any) (Value, error) {
	if raw == nil {
		return nil, nil
	}

	switch typeName {
	case "int":
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return Integer(int32(f)), nil
	case "float", "double":
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case "bool":
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return Bool(b), nil
	case "string":
		return Text(fmt.Sprint(raw)), nil
	}

	if category, ok := CategoryForType(typeName); ok {
		return StateRef{Category: category, Member: fmt.Sprint(raw)}, nil
	}

	switch v := raw.(type) {
	case bool:
		return Bool(v), nil
	case int, int64, float32, float64:
		f, _ := toFloat(v)
		return Number(f), nil
	case string:
		if typeName != "" {
			return Enum{Type: typeName, Member: v}, nil
		}
		return Text(v), nil
	}
	return nil, fmt.Errorf("unsupported value %v of type %T", raw, raw)
}

func toFloat(raw any) (float32, error) {
	switch v := raw.(type) {
	case int:
		return float32(v), nil
	case int64:
		return float32(v), nil
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return float32(f), nil
	}
	return 0, fmt.Errorf("expected number, got %T", raw)
}
