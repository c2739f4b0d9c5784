// Package xcode is the object model of Xcode result bundles, as
// printed by "xcrun xcresulttool get --format json".
//
// Decode documents with the generic functions of package xcresult,
// using [Family]:
//
//	rec, err := xcresult.DecodeObject[xcode.ActionsInvocationRecord](xcode.Family(), data)
//
// The model's class hierarchy is expressed with struct embedding: a
// subtype embeds its supertype by value. Fields that may hold any of
// several subtypes are interfaces, such as [IdentifiableTestSummary]
// or [LogSection], and hold pointers to the concrete types. Use a type
// switch to tell them apart.
//
// Optional fields are pointers, and are nil when the document omits
// them. Fields that refer to other objects in the bundle are
// [Reference]s; fetching them is up to the caller.
package xcode
