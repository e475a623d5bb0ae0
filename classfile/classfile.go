package classfile

import "encoding/binary"

// Span is a byte range of the parsed buffer.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// Slice returns the bytes of buf covered by s.
func (s Span) Slice(buf []byte) []byte {
	return buf[s.Offset:s.End():s.End()]
}

// ClassFile holds the raw records of a class file. Indices are not resolved;
// byte slices alias the buffer handed to Parse.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo

	HeaderSpan       Span
	ConstantPoolSpan Span
	Size             int
}

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Span      Span // payload only, not the six byte name/length prefix
}

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
	Span            Span
}

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
	Span            Span
}

// Sniff reports whether buf starts with the class file magic number. Parse
// does not check it; hosts call Sniff to decide whether to decode at all.
func Sniff(buf []byte) bool {
	return len(buf) >= 4 && binary.BigEndian.Uint32(buf) == Magic
}
