package xcresult

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/creachadair/mds/value"
	"go.uber.org/zap"
)

// Outcome is what happened to one element of a heterogeneous list.
type Outcome int

const (
	// Decoded means the element resolved to a shape that fits the
	// requested element type, and was decoded.
	Decoded Outcome = iota
	// SkippedUnresolved means no name in the element's supertype
	// chain is registered, and the generic [Object] shape does not
	// fit the requested element type.
	SkippedUnresolved
	// SkippedMismatch means the element resolved to a registered
	// shape that does not fit the requested element type.
	SkippedMismatch
)

func (o Outcome) String() string {
	switch o {
	case Decoded:
		return "decoded"
	case SkippedUnresolved:
		return "skipped: unresolved"
	case SkippedMismatch:
		return "skipped: mismatched"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the decoding result of one element of a heterogeneous
// list.
type Result[T any] struct {
	// Index is the element's position in the input list.
	Index int
	// Type is the element's declared type.
	Type *TypeDescriptor
	// Outcome reports whether the element was decoded or skipped.
	Outcome Outcome
	// Value is the decoded element. It is the zero value unless
	// Outcome is Decoded.
	Value T
}

// Decode decodes data, a JSON array of objects that each declare
// their own type, and returns the elements whose shape fits T, in
// input order. Elements of other shapes are silently dropped.
//
// Every element must carry a "_type" field. Malformed JSON, a
// missing discriminator, or a failure to decode a kept element is
// reported as a [*DecodeError]. A null document is an error, not an
// empty list.
func Decode[T any](f *Family, data []byte) ([]T, error) {
	if isNull(data) {
		return nil, decodeErrf("$", "expected a list, got null")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, decodeErr("$", err)
	}
	d := decodeState{f}
	rs, err := decodeResults[T](&d, items, "$")
	if err != nil {
		return nil, err
	}
	return decoded(rs), nil
}

// DecodeObject decodes raw, a single object, into a T.
//
// The object's declared type is resolved using f. If the resulting
// shape fits T, the object is decoded as that shape. Otherwise, the
// object is decoded as T directly, ignoring its declared type. If
// that also fails, or T is an interface the shape does not
// implement, DecodeObject returns an error that wraps a
// [*MismatchError].
//
// If T is a scalar type (bool, a number, string or time.Time), raw
// must be a scalar [Value] that coerces to T.
func DecodeObject[T any](f *Family, raw json.RawMessage) (T, error) {
	var ret T
	d := decodeState{f}
	if err := d.decodeOne(raw, reflect.ValueOf(&ret).Elem(), "$"); err != nil {
		var zero T
		return zero, err
	}
	return ret, nil
}

// DecodeOptional is like [DecodeObject], but returns an absent value
// if raw is empty or null, or if raw's declared type resolves to a
// shape that does not fit T. Scalars that fail to coerce to T are
// also absent.
func DecodeOptional[T any](f *Family, raw json.RawMessage) (value.Maybe[T], error) {
	if isNull(raw) {
		return value.Absent[T](), nil
	}
	var ret T
	d := decodeState{f}
	ok, err := d.decodeOptional(raw, reflect.ValueOf(&ret).Elem(), "$")
	if err != nil {
		return value.Absent[T](), err
	}
	if !ok {
		return value.Absent[T](), nil
	}
	return value.Just(ret), nil
}

// DecodeList decodes raw, a list of objects, and returns the elements
// whose shape fits T, in input order. raw may be a bare JSON array,
// or an Array object holding its elements in "_values". Any other
// input, including null, is an error.
func DecodeList[T any](f *Family, raw json.RawMessage) ([]T, error) {
	rs, err := DecodeListResults[T](f, raw)
	if err != nil {
		return nil, err
	}
	return decoded(rs), nil
}

// DecodeListResults is like [DecodeList], but reports the outcome of
// every element, including skipped ones.
func DecodeListResults[T any](f *Family, raw json.RawMessage) ([]Result[T], error) {
	d := decodeState{f}
	items, err := d.listItems(raw, "$")
	if err != nil {
		return nil, err
	}
	return decodeResults[T](&d, items, "$")
}

func decodeResults[T any](d *decodeState, items []json.RawMessage, path string) ([]Result[T], error) {
	t := reflect.TypeFor[T]()
	ret := make([]Result[T], 0, len(items))
	for i, item := range items {
		out, td, outcome, err := d.decodeElement(item, t, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		r := Result[T]{
			Index:   i,
			Type:    td,
			Outcome: outcome,
		}
		if outcome == Decoded {
			r.Value = out.Interface().(T)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func decoded[T any](rs []Result[T]) []T {
	ret := make([]T, 0, len(rs))
	for _, r := range rs {
		if r.Outcome == Decoded {
			ret = append(ret, r.Value)
		}
	}
	return ret
}

// decodeState is the state of one decode call. It holds nothing but
// the family, so that calls are independent of each other.
type decodeState struct {
	fam *Family
}

func (d *decodeState) log() *zap.Logger { return d.fam.log }

// resolve parses the envelope of raw and resolves the object's
// declared type to a shape.
func (d *decodeState) resolve(raw json.RawMessage, path string) (*TypeDescriptor, reflect.Type, error) {
	var env ObjectEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, decodeErr(path, err)
	}
	shape, err := d.fam.Resolve(env.Type)
	if err != nil {
		return nil, nil, decodeErr(path, err)
	}
	return env.Type, shape, nil
}

// decodeShape decodes raw, whose declared type td resolved to shape,
// and returns a pointer to the decoded shape.
func (d *decodeState) decodeShape(raw json.RawMessage, td *TypeDescriptor, shape reflect.Type, path string) (reflect.Value, error) {
	ptr := reflect.New(shape)
	switch shape {
	case objectType:
		d.log().Debug("unresolved type, keeping generic object",
			zap.String("path", path), zap.Stringer("type", td))
		ptr.Elem().Set(reflect.ValueOf(Object{Type: *td}))
	case opaqueType:
		ptr.Elem().Set(reflect.ValueOf(Opaque{Type: *td, Raw: slices.Clone(raw)}))
	case valueType, envelopeType:
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			return reflect.Value{}, decodeErr(path, err)
		}
	default:
		if err := d.decodeStruct(raw, ptr.Elem(), path); err != nil {
			return reflect.Value{}, err
		}
	}
	return ptr, nil
}

// decodeStruct decodes the fields of the JSON object raw into the
// struct v.
func (d *decodeState) decodeStruct(raw json.RawMessage, v reflect.Value, path string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return decodeErr(path, err)
	}
	info, err := d.fam.structInfo(v.Type())
	if err != nil {
		return decodeErr(path, typeErr(v.Type(), "getting struct info: %w", err))
	}
	for _, f := range info.StructFields {
		fpath := path + "." + f.Key
		fraw, ok := obj[f.Key]
		if !ok || isNull(fraw) {
			if isRequired(f.Type) {
				return decodeErrf(fpath, "missing required field %s.%s", info.Name, f.Name)
			}
			continue
		}
		if err := d.decodeField(fraw, f.Get(v), fpath); err != nil {
			return err
		}
	}
	return nil
}

// isRequired reports whether a struct field of type t must be
// present in the input.
func isRequired(t reflect.Type) bool {
	return isScalar(t) || t.Kind() == reflect.Struct
}

// decodeField decodes raw into the struct field v, according to the
// field's type.
func (d *decodeState) decodeField(raw json.RawMessage, v reflect.Value, path string) error {
	t := v.Type()
	switch {
	case t == rawType:
		v.SetBytes(slices.Clone(raw))
		return nil
	case t == valueType, t == envelopeType, t == descType:
		if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
			return decodeErr(path, err)
		}
		return nil
	case isScalar(t):
		_, err := d.decodeScalar(raw, v, path, true)
		return err
	case t.Kind() == reflect.Pointer && isScalar(t.Elem()):
		elem := reflect.New(t.Elem())
		ok, err := d.decodeScalar(raw, elem.Elem(), path, false)
		if ok {
			v.Set(elem)
		}
		return err
	case t.Kind() == reflect.Slice:
		return d.decodeSlice(raw, v, path)
	case t.Kind() == reflect.Struct:
		return d.decodeOne(raw, v, path)
	case t.Kind() == reflect.Pointer, t.Kind() == reflect.Interface:
		_, err := d.decodeOptional(raw, v, path)
		return err
	}
	return decodeErr(path, typeErr(t, "no xcresult mapping for %s values", t.Kind()))
}

// decodeOne decodes the object raw into v, falling back to v's own
// type if the object's declared type does not fit v.
func (d *decodeState) decodeOne(raw json.RawMessage, v reflect.Value, path string) error {
	t := v.Type()
	if isScalar(t) {
		_, err := d.decodeScalar(raw, v, path, true)
		return err
	}
	td, shape, err := d.resolve(raw, path)
	if err != nil {
		return err
	}
	if fits(shape, t) {
		ptr, err := d.decodeShape(raw, td, shape, path)
		if err != nil {
			return err
		}
		store(v, ptr)
		return nil
	}

	// TODO: this fallback can hide a real schema mismatch behind a
	// confusing missing-field error. Count occurrences against real
	// documents and decide whether to make it an error.
	target := derefType(t)
	if target.Kind() != reflect.Struct {
		return decodeErr(path, &MismatchError{td, shape, t, nil})
	}
	d.log().Debug("declared type does not fit, decoding as requested type",
		zap.String("path", path),
		zap.Stringer("type", td),
		zap.Stringer("shape", shape),
		zap.Stringer("want", t))
	ptr, err := d.decodeShape(raw, td, target, path)
	if err != nil {
		return decodeErr(path, &MismatchError{td, shape, t, err})
	}
	store(v, ptr)
	return nil
}

// decodeOptional decodes the object raw into v if its declared type
// fits v, and reports whether it did.
func (d *decodeState) decodeOptional(raw json.RawMessage, v reflect.Value, path string) (bool, error) {
	t := v.Type()
	if isScalar(t) {
		return d.decodeScalar(raw, v, path, false)
	}
	td, shape, err := d.resolve(raw, path)
	if err != nil {
		return false, err
	}
	if !fits(shape, t) {
		d.log().Debug("dropping optional value of non-matching type",
			zap.String("path", path),
			zap.Stringer("type", td),
			zap.Stringer("shape", shape),
			zap.Stringer("want", t))
		return false, nil
	}
	ptr, err := d.decodeShape(raw, td, shape, path)
	if err != nil {
		return false, err
	}
	store(v, ptr)
	return true, nil
}

// listItems splits raw, either a JSON array or an Array object, into
// its elements.
func (d *decodeState) listItems(raw json.RawMessage, path string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if isNull(trimmed) {
		return nil, decodeErrf(path, "expected a list, got null")
	}
	if trimmed[0] == '{' {
		td, shape, err := d.resolve(trimmed, path)
		if err != nil {
			return nil, err
		}
		if shape != arrayType {
			return nil, decodeErrf(path, "expected a list, got %s", td)
		}
		var wrapper struct {
			Values json.RawMessage `json:"_values"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, decodeErr(path, err)
		}
		path += "._values"
		if isNull(wrapper.Values) {
			return nil, decodeErrf(path, "missing required field Array._values")
		}
		trimmed = wrapper.Values
	}
	var ret []json.RawMessage
	if err := json.Unmarshal(trimmed, &ret); err != nil {
		return nil, decodeErr(path, err)
	}
	return ret, nil
}

// decodeSlice decodes the list raw into the slice v, skipping
// elements that don't fit v's element type.
func (d *decodeState) decodeSlice(raw json.RawMessage, v reflect.Value, path string) error {
	items, err := d.listItems(raw, path)
	if err != nil {
		return err
	}
	et := v.Type().Elem()
	ret := reflect.MakeSlice(v.Type(), 0, len(items))
	for i, item := range items {
		out, _, outcome, err := d.decodeElement(item, et, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return err
		}
		if outcome == Decoded {
			ret = reflect.Append(ret, out)
		}
	}
	v.Set(ret)
	return nil
}

// decodeElement decodes one list element into a new value of type
// t. If the element doesn't fit t, the returned Outcome says why and
// the returned value is invalid.
func (d *decodeState) decodeElement(raw json.RawMessage, t reflect.Type, path string) (reflect.Value, *TypeDescriptor, Outcome, error) {
	if isNull(raw) {
		return reflect.Value{}, nil, 0, decodeErr(path, ErrMissingType)
	}
	td, shape, err := d.resolve(raw, path)
	if err != nil {
		return reflect.Value{}, nil, 0, err
	}
	out := reflect.New(t).Elem()
	if isScalar(t) {
		if shape != valueType {
			return reflect.Value{}, td, d.skipElement(td, shape, t, path), nil
		}
		ok, err := d.decodeScalar(raw, out, path, false)
		if err != nil {
			return reflect.Value{}, nil, 0, err
		}
		if !ok {
			return reflect.Value{}, td, SkippedMismatch, nil
		}
		return out, td, Decoded, nil
	}

	if !fits(shape, t) {
		return reflect.Value{}, td, d.skipElement(td, shape, t, path), nil
	}
	ptr, err := d.decodeShape(raw, td, shape, path)
	if err != nil {
		return reflect.Value{}, nil, 0, err
	}
	store(out, ptr)
	return out, td, Decoded, nil
}

// skipElement logs and returns the Outcome of a list element of
// declared type td, resolved to shape, that does not fit t.
func (d *decodeState) skipElement(td *TypeDescriptor, shape, t reflect.Type, path string) Outcome {
	outcome := SkippedMismatch
	if shape == objectType {
		outcome = SkippedUnresolved
	}
	d.log().Debug("skipping list element",
		zap.String("path", path),
		zap.Stringer("type", td),
		zap.Stringer("shape", shape),
		zap.Stringer("want", t),
		zap.Stringer("outcome", outcome))
	return outcome
}

// decodeScalar decodes the scalar envelope raw into v, and reports
// whether it did. If required is false, values that are not scalars,
// that fail to coerce, or that coerce to a type v can't hold, leave v
// untouched.
func (d *decodeState) decodeScalar(raw json.RawMessage, v reflect.Value, path string, required bool) (bool, error) {
	var val Value
	if err := json.Unmarshal(raw, &val); err != nil {
		return false, decodeErr(path, err)
	}
	name, shape, err := d.fam.resolveName(&val.Type)
	if err != nil {
		return false, decodeErr(path, err)
	}
	if shape != valueType {
		if required {
			return false, decodeErrf(path, "%s is not a scalar type", &val.Type)
		}
		d.log().Debug("dropping non-scalar value",
			zap.String("path", path),
			zap.Stringer("type", &val.Type),
			zap.Stringer("shape", shape))
		return false, nil
	}

	c, ok := Coerce(name, val.Raw).GetOK()
	if !ok {
		if required {
			return false, decodeErrf(path, "invalid %s value %q", name, val.Raw)
		}
		d.log().Debug("dropping malformed scalar",
			zap.String("path", path),
			zap.String("type", string(name)),
			zap.String("value", val.Raw))
		return false, nil
	}
	if err := setScalar(v, c); err != nil {
		if required {
			return false, decodeErr(path, err)
		}
		d.log().Debug("dropping scalar of non-matching type",
			zap.String("path", path),
			zap.Error(err))
		return false, nil
	}
	return true, nil
}

// setScalar stores the coerced scalar c in v.
func setScalar(v reflect.Value, c any) error {
	switch x := c.(type) {
	case bool:
		if v.Kind() == reflect.Bool {
			v.SetBool(x)
			return nil
		}
	case int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.OverflowInt(x) {
				return fmt.Errorf("value %d overflows %s", x, v.Type())
			}
			v.SetInt(x)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if x < 0 || v.OverflowUint(uint64(x)) {
				return fmt.Errorf("value %d overflows %s", x, v.Type())
			}
			v.SetUint(uint64(x))
			return nil
		}
	case float64:
		if v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64 {
			if v.OverflowFloat(x) {
				return fmt.Errorf("value %g overflows %s", x, v.Type())
			}
			v.SetFloat(x)
			return nil
		}
	case string:
		if v.Kind() == reflect.String {
			v.SetString(x)
			return nil
		}
	case time.Time:
		if v.Type() == timeType {
			v.Set(reflect.ValueOf(x))
			return nil
		}
	}
	return fmt.Errorf("cannot store %T value in %s", c, v.Type())
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
