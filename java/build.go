package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jclass/classfile"
	"github.com/tliron/commonlog"
)

// ParseFile reads and decodes the class file at path.
func ParseFile(path string) (*Class, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return FromClassFile(cf)
}

// Parse decodes a complete class file held in buf. The magic number is not
// checked. On failure no partial Class is returned.
func Parse(buf []byte) (*Class, error) {
	cf, err := classfile.Parse(buf)
	if err != nil {
		return nil, err
	}
	return FromClassFile(cf)
}

// FromClassFile resolves raw records against the constant pool, allocating
// every node from a fresh arena.
func FromClassFile(cf *classfile.ClassFile) (*Class, error) {
	b := &builder{
		cp:    cf.ConstantPool,
		arena: NewArena(),
	}
	b.demangler = NewDemangler(b.arena)

	class, err := b.build(cf)
	if err != nil {
		return nil, err
	}

	stats := b.arena.Stats()
	commonlog.GetLogger("jclass.java").Debugf("decoded %s: %d fields, %d methods, %d class types, %d array types",
		class.Name, stats.Fields, stats.Methods, stats.ClassReferences, stats.ArrayReferences)
	return class, nil
}

type builder struct {
	cp        classfile.ConstantPool
	arena     *Arena
	demangler *Demangler
}

func (b *builder) build(cf *classfile.ClassFile) (*Class, error) {
	class := &Class{
		MinorVersion: cf.MinorVersion,
		MajorVersion: cf.MajorVersion,
		AccessFlags:  classFlags(cf.AccessFlags),
		arena:        b.arena,
	}

	// Header names are informational; members decode without them.
	if name, err := b.cp.ClassName(cf.ThisClass); err == nil {
		class.Name = internalToSourceName(name)
	} else {
		commonlog.GetLogger("jclass.java").Debugf("this class unresolved: %s", err)
	}
	if cf.SuperClass != 0 {
		if super, err := b.cp.ClassName(cf.SuperClass); err == nil {
			class.SuperName = internalToSourceName(super)
		} else {
			commonlog.GetLogger("jclass.java").Debugf("super class unresolved: %s", err)
		}
	}

	class.Fields = make([]*Field, len(cf.Fields))
	for i := range cf.Fields {
		field, err := b.field(&cf.Fields[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build field %d: %w", i, err)
		}
		class.Fields[i] = field
	}

	class.Methods = make([]*Method, len(cf.Methods))
	for i := range cf.Methods {
		method, err := b.method(&cf.Methods[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build method %d: %w", i, err)
		}
		class.Methods[i] = method
	}

	for i := range cf.Attributes {
		if _, err := b.cp.Utf8(cf.Attributes[i].NameIndex); err != nil {
			return nil, fmt.Errorf("failed to resolve class attribute %d: %w", i, err)
		}
		class.UnknownAttributes++
	}

	class.regions = buildRegions(cf, class)
	return class, nil
}

func (b *builder) field(raw *classfile.FieldInfo) (*Field, error) {
	name, err := b.cp.Utf8(raw.NameIndex)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	descriptor, err := b.cp.Utf8(raw.DescriptorIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: descriptor: %w", name, err)
	}
	typ, err := b.demangler.DemangleField(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	field := b.arena.newField()
	field.Name = name
	field.Type = typ
	field.AccessFlags = fieldFlags(raw.AccessFlags)
	field.Span = raw.Span

	for i := range raw.Attributes {
		if _, err := b.cp.Utf8(raw.Attributes[i].NameIndex); err != nil {
			return nil, fmt.Errorf("%s: attribute %d: %w", name, i, err)
		}
		field.UnknownAttributes++
	}
	return field, nil
}

func (b *builder) method(raw *classfile.MethodInfo) (*Method, error) {
	name, err := b.cp.Utf8(raw.NameIndex)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	descriptor, err := b.cp.Utf8(raw.DescriptorIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: descriptor: %w", name, err)
	}

	method := b.arena.newMethod()
	method.Name = name
	method.Descriptor = descriptor
	method.AccessFlags = methodFlags(raw.AccessFlags)
	method.Span = raw.Span

	for i := range raw.Attributes {
		attr := &raw.Attributes[i]
		attrName, err := b.cp.Utf8(attr.NameIndex)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %d: %w", name, i, err)
		}
		if attrName != "Code" {
			method.UnknownAttributes++
			continue
		}
		// A repeated Code attribute replaces the earlier one.
		code := b.arena.newCode()
		code.Bytes = attr.Info
		code.Span = attr.Span
		method.Code = code
	}
	return method, nil
}

func internalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
