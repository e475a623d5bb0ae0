package java

import "github.com/dhamidi/jclass/classfile"

type Field struct {
	Name        string
	Type        Type
	AccessFlags FieldAccessFlags
	// UnknownAttributes counts attributes attached to the field. None are
	// interpreted.
	UnknownAttributes int
	Span              classfile.Span
}

func (f *Field) String() string {
	var result string
	for _, m := range f.AccessFlags.Modifiers() {
		result += m + " "
	}
	return result + f.Type.String() + " " + f.Name
}
