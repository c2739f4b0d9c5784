package xcresult

import (
	"iter"
	"reflect"
)

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// fits reports whether a decoded value of the given shape can be
// stored in a value of type target. Shapes are always struct types,
// and are handed out as pointers unless target is the shape itself.
func fits(shape, target reflect.Type) bool {
	if shape == target {
		return true
	}
	return reflect.PointerTo(shape).AssignableTo(target)
}

// store sets dst to ptr, a pointer to a decoded shape, dereferencing
// ptr if dst holds the shape by value. The caller must have checked
// that the shape fits dst.
func store(dst, ptr reflect.Value) {
	if dst.Type() == ptr.Type().Elem() {
		dst.Set(ptr.Elem())
	} else {
		dst.Set(ptr)
	}
}

// structFields iterates over the fields of t, flattening structs
// embedded by value. The Index of each yielded field is relative to
// t. Structs embedded by pointer are yielded as ordinary fields.
func structFields(t reflect.Type, idx []int) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			at := append(idx[:len(idx):len(idx)], i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				for af := range structFields(f.Type, at) {
					if !yield(af) {
						return
					}
				}
				continue
			}
			f.Index = at
			if !yield(f) {
				return
			}
		}
	}
}
