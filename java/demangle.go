package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// maxArrayDimensions is the JVM's limit on array nesting.
const maxArrayDimensions = 255

// Demangler decodes descriptors into types allocated from, and interned by,
// its arena.
type Demangler struct {
	arena *Arena
	in    string
	pos   int
	depth int
}

func NewDemangler(arena *Arena) *Demangler {
	return &Demangler{arena: arena}
}

// DemangleField decodes a field descriptor. The descriptor must hold exactly
// one type.
func (d *Demangler) DemangleField(desc string) (Type, error) {
	d.in, d.pos, d.depth = desc, 0, 0
	t, err := d.demangle()
	if err != nil {
		return nil, fmt.Errorf("descriptor %q: %w", desc, err)
	}
	if d.pos != len(d.in) {
		return nil, fmt.Errorf("descriptor %q: %w: trailing %q", desc, classfile.ErrMalformedDescriptor, d.in[d.pos:])
	}
	return t, nil
}

func (d *Demangler) demangle() (Type, error) {
	if d.pos >= len(d.in) {
		return nil, fmt.Errorf("%w: unexpected end at offset %d", classfile.ErrMalformedDescriptor, d.pos)
	}
	ch := d.in[d.pos]
	d.pos++
	switch ch {
	case 'B':
		return d.arena.Primitive(Byte), nil
	case 'S':
		return d.arena.Primitive(Short), nil
	case 'I':
		return d.arena.Primitive(Int), nil
	case 'J':
		return d.arena.Primitive(Long), nil
	case 'F':
		return d.arena.Primitive(Float), nil
	case 'D':
		return d.arena.Primitive(Double), nil
	case 'Z':
		return d.arena.Primitive(Bool), nil
	case 'C':
		return d.arena.Primitive(Char), nil
	case 'L':
		return d.demangleClassRef()
	case '[':
		return d.demangleArrayRef()
	default:
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", classfile.ErrMalformedDescriptor, ch, d.pos-1)
	}
}

func (d *Demangler) demangleClassRef() (Type, error) {
	end := strings.IndexByte(d.in[d.pos:], ';')
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated class name at offset %d", classfile.ErrMalformedDescriptor, d.pos)
	}
	if end == 0 {
		return nil, fmt.Errorf("%w: empty class name at offset %d", classfile.ErrMalformedDescriptor, d.pos)
	}
	name := strings.ReplaceAll(d.in[d.pos:d.pos+end], "/", ".")
	d.pos += end + 1
	return d.arena.ClassReference(name), nil
}

func (d *Demangler) demangleArrayRef() (Type, error) {
	d.depth++
	if d.depth > maxArrayDimensions {
		return nil, fmt.Errorf("%w: more than %d array dimensions", classfile.ErrMalformedDescriptor, maxArrayDimensions)
	}
	elem, err := d.demangle()
	if err != nil {
		return nil, err
	}
	return d.arena.ArrayReference(elem), nil
}
