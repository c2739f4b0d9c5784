package xcresult

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/creachadair/mds/mapset"
	xt "github.com/danderson/xcresult/xcresulttest"
	"github.com/google/go-cmp/cmp"
)

func desc(chain ...TypeName) *TypeDescriptor {
	var ret *TypeDescriptor
	for _, n := range slices.Backward(chain) {
		ret = &TypeDescriptor{Name: n, Supertype: ret}
	}
	return ret
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in      *TypeDescriptor
		want    reflect.Type
		wantErr error
	}{
		{desc("Dog", "Base"), reflect.TypeFor[Dog](), nil},
		{desc("Dog"), reflect.TypeFor[Dog](), nil},
		{desc("Puppy", "Dog", "Base"), reflect.TypeFor[Dog](), nil},
		{desc("Kitten", "Housecat", "Cat", "Base"), reflect.TypeFor[Cat](), nil},
		{desc("Bird", "Base"), reflect.TypeFor[Base](), nil},
		{desc("Wolf"), objectType, nil},
		{desc("Wolf", "Canid", "Mammal"), objectType, nil},
		{desc("Tree"), reflect.TypeFor[Tree](), nil},

		{desc("Int"), valueType, nil},
		{desc("Date"), valueType, nil},
		{desc("Array"), arrayType, nil},
		{desc("SortedKeyValueArray"), opaqueType, nil},
		{desc("SortedKeyValueArrayPair"), opaqueType, nil},

		{nil, nil, ErrMissingType},
		{desc(""), nil, ErrMissingType},
	}
	for _, tc := range tests {
		got, err := testFamily.Resolve(tc.in)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("Resolve(%s) got err %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Resolve(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestResolveDepth(t *testing.T) {
	var chain []TypeName
	for _, n := range xt.DeepChain(DefaultMaxSupertypeDepth) {
		chain = append(chain, TypeName(n))
	}
	got, err := testFamily.Resolve(desc(chain...))
	if err != nil {
		t.Fatalf("Resolve of %d-deep chain failed: %v", len(chain), err)
	}
	if got != objectType {
		t.Errorf("Resolve of %d-deep chain = %v, want Object", len(chain), got)
	}

	chain = append(chain, "TooDeep")
	_, err = testFamily.Resolve(desc(chain...))
	var de *DepthError
	if !errors.As(err, &de) {
		t.Fatalf("Resolve of %d-deep chain got err %v, want DepthError", len(chain), err)
	}
	if de.Limit != DefaultMaxSupertypeDepth {
		t.Errorf("DepthError.Limit = %d, want %d", de.Limit, DefaultMaxSupertypeDepth)
	}
}

func TestNewFamilyErrors(t *testing.T) {
	tests := []struct {
		name   string
		shapes map[TypeName]any
	}{
		{"empty name", map[TypeName]any{"": Base{}}},
		{"builtin", map[TypeName]any{"Int": Base{}}},
		{"builtin array", map[TypeName]any{"Array": Array{}}},
		{"nil shape", map[TypeName]any{"Nil": nil}},
		{"not a struct", map[TypeName]any{"Number": 42}},
		{"undecodable", map[TypeName]any{"Mapped": struct{ M map[string]int }{}}},
		{"one bad apple", map[TypeName]any{"Base": Base{}, "Int": Base{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFamily("bad", tc.shapes, nil)
			if err == nil {
				t.Fatalf("NewFamily succeeded with %d names, want error", f.Len())
			}
			if testing.Verbose() {
				t.Logf("NewFamily = err: %v", err)
			}
		})
	}

	var te TypeError
	_, err := NewFamily("bad", map[TypeName]any{"Number": 42}, nil)
	if !errors.As(err, &te) {
		t.Errorf("NewFamily with non-struct shape got err %v, want TypeError", err)
	}
}

func TestMustFamilyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFamily did not panic")
		}
	}()
	MustFamily("bad", map[TypeName]any{"String": Base{}}, nil)
}

func TestFamilyNames(t *testing.T) {
	f := MustFamily("small", map[TypeName]any{
		"Zebra": Base{},
		"Apple": (*Dog)(nil),
	}, nil)
	if got, want := f.Name(), "small"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if got, want := f.Len(), len(builtinShapes)+2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	names := slices.Collect(f.Names())
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if !slices.Contains(names, "Apple") || !slices.Contains(names, "Int") {
		t.Errorf("Names() = %v, missing registered or builtin names", names)
	}
	if got, ok := f.Lookup("Apple"); !ok || got != reflect.TypeFor[Dog]() {
		t.Errorf("Lookup(Apple) = %v, %v, want Dog", got, ok)
	}
	if got, ok := f.Lookup("Puppy"); ok {
		t.Errorf("Lookup(Puppy) = %v, want not found", got)
	}
}

func TestDrift(t *testing.T) {
	f := MustFamily("small", map[TypeName]any{
		"Base": Base{},
		"Dog":  Dog{},
	}, nil)
	observed := mapset.New[TypeName]("Dog", "Base", "Puppy", "String", "Int")
	unseen, unknown := f.Drift(observed)

	wantUnseen := []TypeName{
		"Array",
		"Bool",
		"Date",
		"Double",
		"SortedKeyValueArray",
		"SortedKeyValueArrayPair",
	}
	if diff := cmp.Diff(unseen, wantUnseen); diff != "" {
		t.Errorf("Drift() unseen wrong (-got+want):\n%s", diff)
	}
	if diff := cmp.Diff(unknown, []TypeName{"Puppy"}); diff != "" {
		t.Errorf("Drift() unknown wrong (-got+want):\n%s", diff)
	}
}

func TestTypeDescriptor(t *testing.T) {
	d := desc("Puppy", "Dog", "Base")
	if got, want := d.String(), "Puppy < Dog < Base"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := d.Depth(), 3; got != want {
		t.Errorf("Depth() = %d, want %d", got, want)
	}
	if diff := cmp.Diff(slices.Collect(d.Chain()), []TypeName{"Puppy", "Dog", "Base"}); diff != "" {
		t.Errorf("Chain() wrong (-got+want):\n%s", diff)
	}

	var nilDesc *TypeDescriptor
	if got := nilDesc.String(); got != "<nil>" {
		t.Errorf("nil String() = %q, want <nil>", got)
	}
	if got := nilDesc.Depth(); got != 0 {
		t.Errorf("nil Depth() = %d, want 0", got)
	}
}
