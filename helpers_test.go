package xcresult

import (
	"encoding/json"
	"time"

	xt "github.com/danderson/xcresult/xcresulttest"
)

// Animal is implemented by Base and everything that embeds it.
type Animal interface {
	base() *Base
}

// Base is the root of a small class hierarchy.
type Base struct {
	Name string
}

func (b *Base) base() *Base { return b }

// Dog is a subtype of Base.
type Dog struct {
	Base
	Good bool
}

// Cat is a subtype of Base with an optional field.
type Cat struct {
	Base
	Lives *int
}

// Rock is unrelated to Base.
type Rock struct {
	Weight float64
}

// Kennel exercises every kind of field.
type Kennel struct {
	Owner   string
	Count   int
	Dogs    []*Dog
	Animals []Animal
	Best    *Dog
	Any     any
	Since   *time.Time
	Tags    []string
	Extra   json.RawMessage `xcresult:"extra"`
	Ignored string          `xcresult:"-"`
}

// Shadow has an outer field that shadows an embedded one.
type Shadow struct {
	Dog
	Good string
}

// Tree is a recursive type.
type Tree struct {
	Label    string
	Children []*Tree
}

var testFamily = MustFamily("test", map[TypeName]any{
	"Base":   Base{},
	"Dog":    Dog{},
	"Cat":    Cat{},
	"Rock":   Rock{},
	"Kennel": Kennel{},
	"Shadow": Shadow{},
	"Tree":   (*Tree)(nil),
}, nil)

func ptr[T any](v T) *T {
	return &v
}

var (
	dogChain   = xt.Chain("Dog", "Base")
	catChain   = xt.Chain("Cat", "Base")
	puppyChain = xt.Chain("Puppy", "Dog", "Base")
)

func dogJSON(name string, good bool) string {
	return xt.Object(dogChain, "name", xt.String(name), "good", xt.Bool(good))
}

func catJSON(name string) string {
	return xt.Object(catChain, "name", xt.String(name))
}

func rockJSON(weight float64) string {
	return xt.Object(xt.Chain("Rock"), "weight", xt.Double(weight))
}

func wolfJSON(name string) string {
	return xt.Object(xt.Chain("Wolf"), "name", xt.String(name), "good", xt.Bool(false))
}

func dog(name string, good bool) *Dog {
	return &Dog{Base{name}, good}
}
