// Package classfiletest assembles class files in memory for tests.
package classfiletest

import (
	"encoding/binary"
	"math"
)

type Attribute struct {
	Name string
	Data []byte
}

type member struct {
	flags      uint16
	name       uint16
	descriptor uint16
	attrs      []Attribute
}

// Builder produces a class file byte by byte. Pool indices are handed out as
// entries are added, so tests can reference them directly.
type Builder struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16

	pool       [][]byte
	slots      uint16
	utf8       map[string]uint16
	classes    map[string]uint16
	this       uint16
	super      uint16
	interfaces []uint16
	fields     []member
	methods    []member
	attrs      []Attribute
}

func New() *Builder {
	return &Builder{
		MajorVersion: 52,
		AccessFlags:  0x0021,
		slots:        1,
		utf8:         map[string]uint16{},
		classes:      map[string]uint16{},
	}
}

// Raw appends a pool entry with an arbitrary tag and payload.
func (b *Builder) Raw(tag byte, payload ...byte) uint16 {
	idx := b.slots
	b.pool = append(b.pool, append([]byte{tag}, payload...))
	b.slots++
	return idx
}

func (b *Builder) Utf8(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	payload := binary.BigEndian.AppendUint16(nil, uint16(len(s)))
	idx := b.Raw(1, append(payload, s...)...)
	b.utf8[s] = idx
	return idx
}

func (b *Builder) Class(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	nameIdx := b.Utf8(name)
	idx := b.Raw(7, u2(nameIdx)...)
	b.classes[name] = idx
	return idx
}

func (b *Builder) StringConst(s string) uint16 {
	return b.Raw(8, u2(b.Utf8(s))...)
}

func (b *Builder) Integer(v int32) uint16 {
	return b.Raw(3, binary.BigEndian.AppendUint32(nil, uint32(v))...)
}

func (b *Builder) Float(v float32) uint16 {
	return b.Raw(4, binary.BigEndian.AppendUint32(nil, math.Float32bits(v))...)
}

// Long and Double take two pool slots; the returned index is the first.
func (b *Builder) Long(v int64) uint16 {
	idx := b.Raw(5, binary.BigEndian.AppendUint64(nil, uint64(v))...)
	b.slots++
	return idx
}

func (b *Builder) Double(v float64) uint16 {
	idx := b.Raw(6, binary.BigEndian.AppendUint64(nil, math.Float64bits(v))...)
	b.slots++
	return idx
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	n, d := b.Utf8(name), b.Utf8(descriptor)
	return b.Raw(12, append(u2(n), u2(d)...)...)
}

func (b *Builder) Methodref(class, name, descriptor string) uint16 {
	c, nt := b.Class(class), b.NameAndType(name, descriptor)
	return b.Raw(10, append(u2(c), u2(nt)...)...)
}

func (b *Builder) MethodHandle(kind byte, ref uint16) uint16 {
	return b.Raw(15, append([]byte{kind}, u2(ref)...)...)
}

func (b *Builder) MethodType(descriptor string) uint16 {
	return b.Raw(16, u2(b.Utf8(descriptor))...)
}

func (b *Builder) InvokeDynamic(bootstrap uint16, name, descriptor string) uint16 {
	nt := b.NameAndType(name, descriptor)
	return b.Raw(18, append(u2(bootstrap), u2(nt)...)...)
}

func (b *Builder) This(name string) *Builder {
	b.this = b.Class(name)
	return b
}

func (b *Builder) Super(name string) *Builder {
	b.super = b.Class(name)
	return b
}

// SetThisIndex stores a raw this_class index, resolvable or not.
func (b *Builder) SetThisIndex(idx uint16) *Builder {
	b.this = idx
	return b
}

func (b *Builder) SetSuperIndex(idx uint16) *Builder {
	b.super = idx
	return b
}

// Interface adds an entry to the interface table.
func (b *Builder) Interface(name string) *Builder {
	b.interfaces = append(b.interfaces, b.Class(name))
	return b
}

func (b *Builder) Field(flags uint16, name, descriptor string, attrs ...Attribute) *Builder {
	b.fields = append(b.fields, member{flags, b.Utf8(name), b.Utf8(descriptor), attrs})
	return b
}

// FieldIndices adds a field whose name and descriptor indices are given
// verbatim, for exercising bad references.
func (b *Builder) FieldIndices(flags, name, descriptor uint16, attrs ...Attribute) *Builder {
	b.fields = append(b.fields, member{flags, name, descriptor, attrs})
	return b
}

func (b *Builder) Method(flags uint16, name, descriptor string, attrs ...Attribute) *Builder {
	b.methods = append(b.methods, member{flags, b.Utf8(name), b.Utf8(descriptor), attrs})
	return b
}

func (b *Builder) Attribute(name string, data []byte) *Builder {
	b.attrs = append(b.attrs, Attribute{name, data})
	return b
}

// Code returns a minimal Code attribute payload wrapping bytecode.
func Code(bytecode ...byte) Attribute {
	var data []byte
	data = append(data, u2(1)...) // max_stack
	data = append(data, u2(1)...) // max_locals
	data = binary.BigEndian.AppendUint32(data, uint32(len(bytecode)))
	data = append(data, bytecode...)
	data = append(data, u2(0)...) // exception_table_length
	data = append(data, u2(0)...) // attributes_count
	return Attribute{Name: "Code", Data: data}
}

// Bytes assembles the class file. Attribute names are interned into the pool
// first, so call it once all members are added.
func (b *Builder) Bytes() []byte {
	attrName := func(a []Attribute) {
		for _, at := range a {
			b.Utf8(at.Name)
		}
	}
	for _, m := range b.fields {
		attrName(m.attrs)
	}
	for _, m := range b.methods {
		attrName(m.attrs)
	}
	attrName(b.attrs)

	var out []byte
	out = binary.BigEndian.AppendUint32(out, 0xCAFEBABE)
	out = append(out, u2(b.MinorVersion)...)
	out = append(out, u2(b.MajorVersion)...)
	out = append(out, u2(b.slots)...)
	for _, e := range b.pool {
		out = append(out, e...)
	}
	out = append(out, u2(b.AccessFlags)...)
	out = append(out, u2(b.this)...)
	out = append(out, u2(b.super)...)
	out = append(out, u2(uint16(len(b.interfaces)))...)
	for _, i := range b.interfaces {
		out = append(out, u2(i)...)
	}
	out = b.appendMembers(out, b.fields)
	out = b.appendMembers(out, b.methods)
	out = b.appendAttributes(out, b.attrs)
	return out
}

func (b *Builder) appendMembers(out []byte, members []member) []byte {
	out = append(out, u2(uint16(len(members)))...)
	for _, m := range members {
		out = append(out, u2(m.flags)...)
		out = append(out, u2(m.name)...)
		out = append(out, u2(m.descriptor)...)
		out = b.appendAttributes(out, m.attrs)
	}
	return out
}

func (b *Builder) appendAttributes(out []byte, attrs []Attribute) []byte {
	out = append(out, u2(uint16(len(attrs)))...)
	for _, a := range attrs {
		out = append(out, u2(b.Utf8(a.Name))...)
		out = binary.BigEndian.AppendUint32(out, uint32(len(a.Data)))
		out = append(out, a.Data...)
	}
	return out
}

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}
