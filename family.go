package xcresult

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/creachadair/mds/mapset"
	"go.uber.org/zap"
)

// DefaultMaxSupertypeDepth is the supertype chain length limit used
// when [FamilyOptions.MaxSupertypeDepth] is zero.
const DefaultMaxSupertypeDepth = 32

// FamilyOptions configures a [Family].
type FamilyOptions struct {
	// Logger receives debug logs about skipped elements, opaque
	// objects and fallback decodes. If nil, nothing is logged.
	Logger *zap.Logger
	// MaxSupertypeDepth bounds the length of the supertype chains
	// the family resolves. If zero, DefaultMaxSupertypeDepth is
	// used.
	MaxSupertypeDepth int
}

// A Family is the closed set of type names a document may declare,
// and the concrete shape each one decodes into.
//
// A Family is immutable once constructed, and safe for concurrent
// use.
type Family struct {
	name     string
	shapes   map[TypeName]reflect.Type
	log      *zap.Logger
	maxDepth int

	structs cache[reflect.Type, *structInfo]
}

// NewFamily returns a Family containing shapes as well as the
// builtin scalar, Array, SortedKeyValueArray and
// SortedKeyValueArrayPair entries.
//
// Each shape is given as an example value of a struct type, or a
// pointer to one; only the value's type matters. NewFamily returns a
// [TypeError] if a shape's type cannot be decoded, and an error if a
// name shadows a builtin entry.
func NewFamily(name string, shapes map[TypeName]any, opts *FamilyOptions) (*Family, error) {
	if opts == nil {
		opts = &FamilyOptions{}
	}
	ret := &Family{
		name:     name,
		shapes:   maps.Clone(builtinShapes),
		log:      opts.Logger,
		maxDepth: opts.MaxSupertypeDepth,
	}
	if ret.log == nil {
		ret.log = zap.NewNop()
	}
	ret.log = ret.log.Named("xcresult").With(zap.String("family", name))
	if ret.maxDepth <= 0 {
		ret.maxDepth = DefaultMaxSupertypeDepth
	}

	var errs []error
	seen := mapset.New[reflect.Type]()
	for _, n := range slices.Sorted(maps.Keys(shapes)) {
		if n == "" {
			errs = append(errs, errors.New("empty type name"))
			continue
		}
		if _, ok := builtinShapes[n]; ok {
			errs = append(errs, fmt.Errorf("type name %q is a builtin and cannot be redefined", n))
			continue
		}
		t := reflect.TypeOf(shapes[n])
		if t == nil {
			errs = append(errs, fmt.Errorf("type name %q has a nil shape", n))
			continue
		}
		t = derefType(t)
		if t.Kind() != reflect.Struct {
			errs = append(errs, typeErr(t, "shape for %q is not a struct", n))
			continue
		}
		if err := checkDecodable(t, seen); err != nil {
			errs = append(errs, err)
			continue
		}
		ret.shapes[n] = t
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("building family %q: %w", name, errors.Join(errs...))
	}
	return ret, nil
}

// MustFamily is like [NewFamily], but panics on error.
func MustFamily(name string, shapes map[TypeName]any, opts *FamilyOptions) *Family {
	ret, err := NewFamily(name, shapes, opts)
	if err != nil {
		panic(err)
	}
	return ret
}

// Name returns the family's name.
func (f *Family) Name() string { return f.name }

// Len returns the number of type names in the family.
func (f *Family) Len() int { return len(f.shapes) }

// Names returns an iterator over the family's type names, in sorted
// order.
func (f *Family) Names() iter.Seq[TypeName] {
	return slices.Values(slices.Sorted(maps.Keys(f.shapes)))
}

// Lookup returns the shape registered for name, if any. Lookup does
// not consider supertypes.
func (f *Family) Lookup(name TypeName) (reflect.Type, bool) {
	ret, ok := f.shapes[name]
	return ret, ok
}

// Resolve returns the shape for an object of declared type td.
//
// Resolve looks up td's name, then each of its supertypes in turn,
// and returns the first registered shape. If no name in the chain is
// registered, Resolve returns the type of [Object].
//
// Resolve returns an error only if td is nil or nameless, or if its
// chain is longer than the family's supertype depth limit.
func (f *Family) Resolve(td *TypeDescriptor) (reflect.Type, error) {
	_, ret, err := f.resolveName(td)
	return ret, err
}

// resolveName is like Resolve, but also returns the name in td's
// chain that matched. The name is empty if the result is [Object].
func (f *Family) resolveName(td *TypeDescriptor) (TypeName, reflect.Type, error) {
	if td == nil || td.Name == "" {
		return "", nil, ErrMissingType
	}
	depth := 0
	for name := range td.Chain() {
		depth++
		if depth > f.maxDepth {
			return "", nil, &DepthError{td, f.maxDepth}
		}
		if ret, ok := f.shapes[name]; ok {
			return name, ret, nil
		}
	}
	return "", objectType, nil
}

// Drift compares the family against the type names observed in real
// documents, for example with [Survey]. unseen lists registered
// names that were not observed, and unknown lists observed names that
// are not registered. Both are sorted.
func (f *Family) Drift(observed mapset.Set[TypeName]) (unseen, unknown []TypeName) {
	for n := range f.Names() {
		if !observed.Has(n) {
			unseen = append(unseen, n)
		}
	}
	for n := range observed {
		if _, ok := f.shapes[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	slices.Sort(unknown)
	return unseen, unknown
}

// structInfo returns the cached structInfo for t.
func (f *Family) structInfo(t reflect.Type) (*structInfo, error) {
	return f.structs.Get(t, getStructInfo)
}
