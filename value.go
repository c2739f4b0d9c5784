package xcresult

import (
	"strconv"
	"time"

	"github.com/creachadair/mds/value"
)

// Value is a scalar leaf of an xcresult document, before
// coercion. Type.Name selects how Raw is interpreted.
type Value struct {
	Type TypeDescriptor `json:"_type"`
	Raw  string         `json:"_value"`
}

// Coerce converts v to its Go value. See [Coerce] for details.
func (v Value) Coerce() value.Maybe[any] {
	return Coerce(v.Type.Name, v.Raw)
}

// AsBool returns v as a bool. The result is absent if v is not a
// well-formed Bool.
func (v Value) AsBool() value.Maybe[bool] { return as[bool](v) }

// AsInt returns v as an int64. The result is absent if v is not a
// well-formed Int.
func (v Value) AsInt() value.Maybe[int64] { return as[int64](v) }

// AsDouble returns v as a float64. The result is absent if v is not
// a well-formed Double.
func (v Value) AsDouble() value.Maybe[float64] { return as[float64](v) }

// AsDate returns v as a time.Time. The result is absent if v is not a
// well-formed Date.
func (v Value) AsDate() value.Maybe[time.Time] { return as[time.Time](v) }

// AsString returns v as a string. The result is absent if v is of a
// type that coerces to something other than a string.
func (v Value) AsString() value.Maybe[string] { return as[string](v) }

func as[T any](v Value) value.Maybe[T] {
	c, ok := v.Coerce().GetOK()
	if !ok {
		return value.Absent[T]()
	}
	ret, ok := c.(T)
	if !ok {
		return value.Absent[T]()
	}
	return value.Just(ret)
}

// Coerce converts the raw string of a scalar of type name into a Go
// value:
//
//   - Bool: "true" or "false", as a bool.
//   - Int: a base 10 integer, as an int64.
//   - Double: a decimal floating point number, as a float64.
//   - Date: an ISO 8601 timestamp with fractional seconds and a time
//     zone, as a time.Time.
//   - String, and any other type name: raw itself, as a string.
//
// Coerce never fails. Malformed input produces an absent value.
func Coerce(name TypeName, raw string) value.Maybe[any] {
	switch name {
	case "Bool":
		switch raw {
		case "true":
			return value.Just[any](true)
		case "false":
			return value.Just[any](false)
		}
	case "Int":
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return value.Just[any](i)
		}
	case "Double":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return value.Just[any](f)
		}
	case "Date":
		if t, ok := parseDate(raw); ok {
			return value.Just[any](t)
		}
	default:
		return value.Just[any](raw)
	}
	return value.Absent[any]()
}

// dateLayouts are the timestamp layouts accepted for Date values.
// xcresulttool writes numeric zones without a colon.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
}

// parseDate parses an ISO 8601 timestamp. The fractional seconds are
// mandatory.
func parseDate(raw string) (time.Time, bool) {
	const secondsEnd = len("2006-01-02T15:04:05")
	if len(raw) <= secondsEnd || raw[secondsEnd] != '.' {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
