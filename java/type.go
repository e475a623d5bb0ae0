package java

import "strings"

// Type is a decoded field type. ClassReference and ArrayReference values are
// interned per parse, so two types of one Class are equal exactly when they
// are the same pointer.
type Type interface {
	String() string
	Descriptor() string
	isType()
}

type PrimitiveKind uint8

const (
	Byte PrimitiveKind = iota
	Short
	Int
	Long
	Float
	Double
	Bool
	Char
)

var primitiveNames = [...]struct {
	name       string
	descriptor byte
}{
	Byte:   {"byte", 'B'},
	Short:  {"short", 'S'},
	Int:    {"int", 'I'},
	Long:   {"long", 'J'},
	Float:  {"float", 'F'},
	Double: {"double", 'D'},
	Bool:   {"boolean", 'Z'},
	Char:   {"char", 'C'},
}

func (k PrimitiveKind) String() string {
	return primitiveNames[k].name
}

type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string     { return p.Kind.String() }
func (p *Primitive) Descriptor() string { return string(primitiveNames[p.Kind].descriptor) }
func (p *Primitive) isType()            {}

// ClassReference names a class in source form, e.g. java.lang.String.
type ClassReference struct {
	Name string
}

func (c *ClassReference) String() string { return c.Name }

func (c *ClassReference) Descriptor() string {
	return "L" + strings.ReplaceAll(c.Name, ".", "/") + ";"
}

func (c *ClassReference) isType() {}

type ArrayReference struct {
	Element Type
}

func (a *ArrayReference) String() string     { return a.Element.String() + "[]" }
func (a *ArrayReference) Descriptor() string { return "[" + a.Element.Descriptor() }
func (a *ArrayReference) isType()            {}

// Dimensions counts the nesting depth, 1 for int[].
func (a *ArrayReference) Dimensions() int {
	n := 1
	for e := a.Element; ; n++ {
		inner, ok := e.(*ArrayReference)
		if !ok {
			return n
		}
		e = inner.Element
	}
}

// Innermost returns the non-array element type.
func (a *ArrayReference) Innermost() Type {
	var e Type = a
	for {
		inner, ok := e.(*ArrayReference)
		if !ok {
			return e
		}
		e = inner.Element
	}
}
