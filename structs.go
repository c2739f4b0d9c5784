package xcresult

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// structField is the information about a struct field that needs to
// be decoded.
type structField struct {
	// Name is the Go field name, for diagnostics.
	Name string
	// Key is the JSON object key the field decodes from.
	Key   string
	Index []int
	Type  reflect.Type
}

// Get loads the field from structVal. structVal must be addressable.
func (f *structField) Get(structVal reflect.Value) reflect.Value {
	return structVal.FieldByIndex(f.Index)
}

func (f *structField) String() string {
	return fmt.Sprintf("%s: %s from %q at %v", f.Name, f.Type, f.Key, f.Index)
}

// structInfo is the information about a struct relevant to decoding.
type structInfo struct {
	// Name is the struct's name, for use in diagnostics.
	Name string
	// Type is the struct's type, for use in diagnostics.
	Type reflect.Type

	// StructFields is the information about each struct field
	// eligible for decoding, in declaration order.
	StructFields []*structField
}

func (s *structInfo) String() string {
	var ret strings.Builder
	fmt.Fprintf(&ret, "%s, fields:\n", s.Name)
	for _, f := range s.StructFields {
		ret.WriteString(f.String())
		ret.WriteByte('\n')
	}
	return ret.String()
}

// getStructInfo returns the structInfo for t.
//
// getStructInfo returns an error if t is not a struct, or if two
// fields at the same embedding depth decode from the same key and no
// shallower field shadows them.
func getStructInfo(t reflect.Type) (*structInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", t)
	}

	ret := &structInfo{
		Name: t.String(),
		Type: t,
	}

	var keys []string
	byKey := map[string][]*structField{}
	for field := range structFields(t, nil) {
		if !field.IsExported() {
			continue
		}
		key, skip := parseStructTag(field)
		if skip {
			continue
		}
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], &structField{
			Name:  field.Name,
			Key:   key,
			Index: field.Index,
			Type:  field.Type,
		})
	}

	for _, key := range keys {
		fs := byKey[key]
		// Shallowest field wins, as in Go.
		best := slices.MinFunc(fs, func(a, b *structField) int {
			return cmp.Compare(len(a.Index), len(b.Index))
		})
		for _, f := range fs {
			if f != best && len(f.Index) == len(best.Index) {
				return nil, fmt.Errorf("fields %s and %s of %s both decode key %q", best.Name, f.Name, ret.Name, key)
			}
		}
		ret.StructFields = append(ret.StructFields, best)
	}

	return ret, nil
}

// parseStructTag returns the JSON key for field, from its "xcresult"
// struct tag if present, or else the field name with a lowercase
// first letter. skip is true for fields tagged "-".
func parseStructTag(field reflect.StructField) (key string, skip bool) {
	tag := field.Tag.Get("xcresult")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		return tag, false
	}
	return lowerFirst(field.Name), false
}

// lowerFirst lowercases the leading run of capitals in s, keeping
// initialisms intact: "URL" -> "url", "UUID" -> "uuid", "TestName"
// -> "testName", "SDKRecord" -> "sdkRecord".
func lowerFirst(s string) string {
	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsUpper(r) {
			break
		}
		if i > 0 && i+1 < len(rs) && !unicode.IsUpper(rs[i+1]) {
			break
		}
		rs[i] = unicode.ToLower(r)
	}
	return string(rs)
}
