package recschema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Type is the conversion primitive behind every declared field type. Convert
// coerces a dynamic value into the type's canonical representation or reports
// why it cannot. Convert must be idempotent: feeding a canonical value back in
// returns it unchanged.
type Type interface {
	Name() string
	Convert(v any) (any, error)
}

// String declares a string field. Only string input is accepted; there is no
// implicit stringification.
func String() Type { return stringType{} }

// Bool declares a bool field.
func Bool() Type { return boolType{} }

// Int declares an int field. Accepts any Go integer kind, integral floats,
// and json.Number; out-of-range narrowing and fractional input fail.
func Int() Type { return intType{} }

// Int64 declares an int64 field with the same acceptance rules as Int.
func Int64() Type { return int64Type{} }

// Float64 declares a float64 field. Accepts floats, integers, and json.Number.
func Float64() Type { return float64Type{} }

// Number declares a json.Number field, canonicalizing numeric input the way
// a JSON decoder in number mode would.
func Number() Type { return numberType{} }

// Time declares a time.Time field. Accepts time.Time and RFC3339 strings.
func Time() Type { return timeType{} }

// Named wraps a custom conversion function as a Type.
func Named(name string, convert func(v any) (any, error)) Type {
	return namedType{name: name, fn: convert}
}

// Of declares a field of an arbitrary Go type T. Conversion is assignability
// based and never lossy; values that are not assignable to T are rejected.
func Of[T any]() Type {
	return ofType[T]{name: reflect.TypeOf((*T)(nil)).Elem().String()}
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Convert(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errIncompatible
	}
	return s, nil
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Convert(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, errIncompatible
	}
	return b, nil
}

type intType struct{}

func (intType) Name() string { return "int" }

func (intType) Convert(v any) (any, error) {
	i64, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if i64 < math.MinInt || i64 > math.MaxInt {
		return nil, errOutOfRange
	}
	return int(i64), nil
}

type int64Type struct{}

func (int64Type) Name() string { return "int64" }

func (int64Type) Convert(v any) (any, error) {
	i64, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	return i64, nil
}

type float64Type struct{}

func (float64Type) Name() string { return "float64" }

func (float64Type) Convert(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), nil
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, errIncompatible
	}
}

type numberType struct{}

func (numberType) Name() string { return "number" }

func (numberType) Convert(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		return t, nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case int, int8, int16, int32, int64:
		return json.Number(strconv.FormatInt(reflect.ValueOf(t).Int(), 10)), nil
	case uint, uint8, uint16, uint32, uint64:
		return json.Number(strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)), nil
	default:
		return nil, errIncompatible
	}
}

type timeType struct{}

func (timeType) Name() string { return "time" }

func (timeType) Convert(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		ts, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return nil, err
		}
		return ts, nil
	default:
		return nil, errIncompatible
	}
}

type namedType struct {
	name string
	fn   func(v any) (any, error)
}

func (t namedType) Name() string { return t.name }

func (t namedType) Convert(v any) (any, error) { return t.fn(v) }

type ofType[T any] struct{ name string }

func (t ofType[T]) Name() string { return t.name }

func (t ofType[T]) Convert(v any) (any, error) {
	if tv, ok := v.(T); ok {
		return tv, nil
	}
	return nil, errIncompatible
}

var (
	errIncompatible = fmt.Errorf("incompatible kind")
	errOutOfRange   = fmt.Errorf("out of range")
	errFractional   = fmt.Errorf("fractional part not allowed")
)

// toInt64 funnels every accepted integer-like input into int64 with explicit
// range and integrality checks; narrowing is never silently lossy.
func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(t).Int(), nil
	case uint, uint8, uint16, uint32, uint64:
		u64 := reflect.ValueOf(t).Uint()
		if u64 > math.MaxInt64 {
			return 0, errOutOfRange
		}
		return int64(u64), nil
	case float32:
		return floatToInt64(float64(t))
	case float64:
		return floatToInt64(t)
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			f, ferr := strconv.ParseFloat(t.String(), 64)
			if ferr != nil {
				return 0, err
			}
			return floatToInt64(f)
		}
		return i64, nil
	default:
		return 0, errIncompatible
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errOutOfRange
	}
	if math.Trunc(f) != f {
		return 0, errFractional
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errOutOfRange
	}
	return int64(f), nil
}
