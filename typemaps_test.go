package xcresult

import (
	"reflect"
	"testing"
	"time"

	"github.com/creachadair/mds/mapset"
)

func TestTypeMaps(t *testing.T) {
	for kind, name := range scalarKinds {
		if got := builtinShapes[name]; got != valueType {
			t.Errorf("scalarKinds[%v] = %q, which is not a builtin scalar (shape %v)", kind, name, got)
		}
	}

	for name, shape := range builtinShapes {
		if shape == valueType {
			if _, ok := Coerce(name, "").GetOK(); ok && name != "String" {
				t.Errorf("Coerce(%q, \"\") is present, want absent", name)
			}
			continue
		}
		if shape.Kind() != reflect.Struct {
			t.Errorf("builtinShapes[%q] = %v, not a struct", name, shape)
		}
	}
}

func TestCheckDecodable(t *testing.T) {
	type PtrPtr struct {
		A **int
	}
	type Mapped struct {
		A map[string]int
	}
	type Chans struct {
		A []chan int
	}
	type Funcs struct {
		F func()
	}
	type Unexported struct {
		f map[string]int
		A int
	}
	type Skipped struct {
		A map[string]int `xcresult:"-"`
	}
	type Dup struct {
		A int `xcresult:"k"`
		B int `xcresult:"k"`
	}
	type PtrSlice struct {
		A *[]string
	}
	type PtrIface struct {
		A *Animal
	}
	type Grid struct {
		A [][]string
	}
	type ScalarPtrs struct {
		A []*string
	}
	type Rows struct {
		A []Array
	}
	type Left struct{ Name string }
	type Right struct{ Name string }
	type Tie struct {
		Left
		Right
	}
	type Shadowed struct {
		Left
		Right
		Name string
	}

	tests := []struct {
		in      any
		wantErr bool
	}{
		{Base{}, false},
		{Kennel{}, false},
		{Tree{}, false},
		{Shadow{}, false},
		{Array{}, false},
		{time.Time{}, false},
		{PtrPtr{}, true},
		{Mapped{}, true},
		{Chans{}, true},
		{Funcs{}, true},
		{Unexported{}, false},
		{Skipped{}, false},
		{Dup{}, true},
		{PtrSlice{}, true},
		{PtrIface{}, true},
		{Grid{}, true},
		{ScalarPtrs{}, true},
		{Rows{}, false},
		{Tie{}, true},
		{Shadowed{}, false},
	}
	for _, tc := range tests {
		err := checkDecodable(reflect.TypeOf(tc.in), mapset.New[reflect.Type]())
		if gotErr := err != nil; gotErr != tc.wantErr {
			t.Errorf("checkDecodable(%T) = %v, want error: %v", tc.in, err, tc.wantErr)
		} else if testing.Verbose() {
			t.Logf("checkDecodable(%T) = %v", tc.in, err)
		}
	}
}
