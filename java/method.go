package java

import "github.com/dhamidi/jclass/classfile"

type Method struct {
	Name string
	// Descriptor is kept as written, e.g. "(Ljava/lang/String;)V".
	Descriptor        string
	AccessFlags       MethodAccessFlags
	UnknownAttributes int
	// Code is nil for methods without a Code attribute (abstract, native).
	Code *Code
	Span classfile.Span
}

// Code is the undecoded payload of a Code attribute.
type Code struct {
	Bytes []byte
	Span  classfile.Span
}

func (m *Method) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *Method) IsStaticInitializer() bool {
	return m.Name == "<clinit>"
}

func (m *Method) String() string {
	var result string
	for _, mod := range m.AccessFlags.Modifiers() {
		result += mod + " "
	}
	return result + m.Name + m.Descriptor
}
