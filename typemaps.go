package xcresult

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/creachadair/mds/mapset"
)

var (
	valueType    = reflect.TypeFor[Value]()
	objectType   = reflect.TypeFor[Object]()
	opaqueType   = reflect.TypeFor[Opaque]()
	arrayType    = reflect.TypeFor[Array]()
	timeType     = reflect.TypeFor[time.Time]()
	rawType      = reflect.TypeFor[json.RawMessage]()
	envelopeType = reflect.TypeFor[ObjectEnvelope]()
	descType     = reflect.TypeFor[TypeDescriptor]()

	// builtinShapes are the family entries every Family carries.
	builtinShapes = map[TypeName]reflect.Type{
		"Bool":                    valueType,
		"Int":                     valueType,
		"Double":                  valueType,
		"Date":                    valueType,
		"String":                  valueType,
		"Array":                   arrayType,
		"SortedKeyValueArray":     opaqueType,
		"SortedKeyValueArrayPair": opaqueType,
	}

	// leafTypes are types the decoder stores without looking inside
	// them for fields.
	leafTypes = mapset.New(
		valueType,
		objectType,
		opaqueType,
		timeType,
		rawType,
		envelopeType,
		descType,
	)

	// scalarKinds maps the reflect.Kinds that decode from scalar
	// values to the scalar type name they must be declared as.
	scalarKinds = map[reflect.Kind]TypeName{
		reflect.Bool:    "Bool",
		reflect.Int:     "Int",
		reflect.Int8:    "Int",
		reflect.Int16:   "Int",
		reflect.Int32:   "Int",
		reflect.Int64:   "Int",
		reflect.Uint:    "Int",
		reflect.Uint8:   "Int",
		reflect.Uint16:  "Int",
		reflect.Uint32:  "Int",
		reflect.Uint64:  "Int",
		reflect.Float32: "Double",
		reflect.Float64: "Double",
		reflect.String:  "String",
	}
)

// isScalar reports whether t decodes from a scalar [Value].
func isScalar(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	_, ok := scalarKinds[t.Kind()]
	return ok
}

// checkDecodable returns a [TypeError] if t, or any type reachable
// through its fields, cannot be decoded. seen guards against
// recursive types, which are fine to decode.
func checkDecodable(t reflect.Type, seen mapset.Set[reflect.Type]) error {
	if seen.Has(t) || leafTypes.Has(t) || isScalar(t) {
		return nil
	}
	seen.Add(t)

	switch t.Kind() {
	case reflect.Pointer:
		switch t.Elem().Kind() {
		case reflect.Pointer:
			return typeErr(t, "pointers to pointers are not supported")
		case reflect.Slice:
			return typeErr(t, "pointers to slices are not supported, use the slice type")
		case reflect.Interface:
			return typeErr(t, "pointers to interfaces are not supported, use the interface type")
		}
		return checkDecodable(t.Elem(), seen)
	case reflect.Slice:
		if t == rawType {
			return nil
		}
		et := t.Elem()
		switch {
		case et.Kind() == reflect.Slice:
			return typeErr(t, "nested slices are not supported, use []Array")
		case et.Kind() == reflect.Pointer && isScalar(et.Elem()):
			return typeErr(t, "slices of scalar pointers are not supported, use []%s", et.Elem())
		}
		return checkDecodable(et, seen)
	case reflect.Interface:
		return nil
	case reflect.Struct:
		info, err := getStructInfo(t)
		if err != nil {
			return typeErr(t, "getting struct info: %w", err)
		}
		for _, f := range info.StructFields {
			if err := checkDecodable(f.Type, seen); err != nil {
				return err
			}
		}
		return nil
	}
	return typeErr(t, "no xcresult mapping for %s values", t.Kind())
}
