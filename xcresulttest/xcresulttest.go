// Package xcresulttest builds xcresult JSON documents for tests.
//
// Builders return JSON text, so that they compose by nesting:
//
//	doc := xcresulttest.Object(xcresulttest.Chain("ActionTestMetadata", "ActionTestSummaryIdentifiableObject"),
//		"name", xcresulttest.String("testExample()"),
//		"duration", xcresulttest.Double(0.5))
package xcresulttest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

// DateLayout is the timestamp format xcresulttool uses for Date
// values.
const DateLayout = "2006-01-02T15:04:05.000-0700"

// Chain returns its arguments, for use as a type chain. Chains are
// given leaf first.
func Chain(names ...string) []string {
	return names
}

// DeepChain returns a type chain of n distinct names.
func DeepChain(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("Level%d", i)
	}
	return ret
}

// Type returns a "_type" descriptor for chain.
func Type(chain []string) string {
	ret := ""
	for i := len(chain) - 1; i >= 0; i-- {
		if ret == "" {
			ret = fmt.Sprintf(`{"_name":%s}`, quote(chain[i]))
		} else {
			ret = fmt.Sprintf(`{"_name":%s,"_supertype":%s}`, quote(chain[i]), ret)
		}
	}
	return ret
}

// Object returns an object of type chain. fields alternate between
// keys and JSON values.
func Object(chain []string, fields ...string) string {
	if len(fields)%2 != 0 {
		panic("xcresulttest.Object: odd number of field arguments")
	}
	var ret strings.Builder
	ret.WriteString(`{"_type":`)
	ret.WriteString(Type(chain))
	for i := 0; i < len(fields); i += 2 {
		fmt.Fprintf(&ret, ",%s:%s", quote(fields[i]), fields[i+1])
	}
	ret.WriteByte('}')
	return ret.String()
}

// Untyped returns an object with no "_type" field. fields are as for
// [Object].
func Untyped(fields ...string) string {
	var ret strings.Builder
	ret.WriteByte('{')
	for i := 0; i+1 < len(fields); i += 2 {
		if i > 0 {
			ret.WriteByte(',')
		}
		fmt.Fprintf(&ret, "%s:%s", quote(fields[i]), fields[i+1])
	}
	ret.WriteByte('}')
	return ret.String()
}

// Scalar returns a scalar value of type name, with raw as its
// unparsed value.
func Scalar(name, raw string) string {
	return fmt.Sprintf(`{"_type":{"_name":%s},"_value":%s}`, quote(name), quote(raw))
}

func String(s string) string      { return Scalar("String", s) }
func Bool(b bool) string          { return Scalar("Bool", strconv.FormatBool(b)) }
func Int(i int64) string          { return Scalar("Int", strconv.FormatInt(i, 10)) }
func Double(f float64) string     { return Scalar("Double", strconv.FormatFloat(f, 'g', -1, 64)) }
func Date(t time.Time) string     { return Scalar("Date", t.Format(DateLayout)) }
func List(elems ...string) string { return "[" + strings.Join(elems, ",") + "]" }

// Array returns an Array object holding elems.
func Array(elems ...string) string {
	return Object(Chain("Array"), "_values", List(elems...))
}

// Doc returns doc as bytes, failing the test if doc is not valid
// JSON.
func Doc(t testing.TB, doc string) []byte {
	t.Helper()
	var ret bytes.Buffer
	if err := json.Compact(&ret, []byte(doc)); err != nil {
		t.Fatalf("invalid test document: %v\n%s", err, doc)
	}
	return ret.Bytes()
}

func quote(s string) string {
	bs, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("quoting %q: %v", s, err))
	}
	return string(bs)
}
