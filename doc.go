// Package xcresult decodes self-describing JSON documents, such as the
// output of "xcrun xcresulttool get --format json", in which every
// object declares its own type.
//
// Objects carry a "_type" field naming their type and, optionally, a
// chain of supertypes:
//
//	{
//	  "_type": {
//	    "_name": "ActionTestMetadata",
//	    "_supertype": {
//	      "_name": "ActionTestSummaryIdentifiableObject",
//	      "_supertype": {"_name": "ActionAbstractTestSummary"}
//	    }
//	  },
//	  "name": {"_type": {"_name": "String"}, "_value": "testExample()"},
//	  ...
//	}
//
// A [Family] maps type names to the Go struct types ("shapes") they
// decode into. To decode an object, its declared type is resolved
// against the family: first the object's own type name, then each
// supertype in turn. Objects whose entire chain is unknown resolve to
// the generic [Object] shape, which keeps only the declared type. Unknown
// types are never an error.
//
// # Decoding shapes
//
// Shapes are structs. Each exported field decodes from the JSON key
// given by its "xcresult" struct tag, or else from the field name
// with its leading capitals lowercased ("TestStatus" decodes
// "testStatus", "URL" decodes "url"). A tag of "-" skips the field.
// Structs embedded by value are flattened, which is how subtypes
// extend their supertype's fields. Unknown keys are ignored.
//
// Fields decode according to their Go type:
//
// bool, integer, float, string and time.Time fields decode scalar
// values, and are required: a missing field, or a value that does
// not coerce to the field's type, is an error. Pointers to those
// types are optional, and are left nil if the field is missing or
// malformed. See [Coerce] for the scalar formats.
//
// Struct fields decode objects, and are required. The object's
// declared type is resolved, and if the resulting shape is the
// field's type, the object is decoded as that shape. Otherwise the
// object is decoded as the field's type regardless of its declared
// type, as [DecodeObject] does.
//
// Pointer-to-struct and interface fields decode objects, and are
// optional. If the object's resolved shape, as a pointer, is not
// assignable to the field, the field is left nil. Interface fields
// are how a field holds any of several subtypes.
//
// Slice fields decode lists, either an Array object or a bare JSON
// array. Each element is resolved separately, and elements whose
// shape does not fit the slice's element type are skipped.
//
// [Value], [ObjectEnvelope], [TypeDescriptor] and [json.RawMessage]
// fields store the raw input without further interpretation.
//
// # Concurrency
//
// Decoding is synchronous and keeps no state between calls. A Family
// is immutable, and may be shared by any number of concurrent
// decodes.
package xcresult
