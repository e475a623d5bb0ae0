package classfile

import (
	"fmt"
	"math"
	"os"
)

// Smallest encodings of a pool entry (tag + u2), a field or method record
// (three u2 + attribute count) and an attribute (u2 name + u4 length).
const (
	minConstantSize  = 3
	minMemberSize    = 8
	minAttributeSize = 6
)

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

// Parse decodes the raw structure of a class file. The magic number is
// expected to have been checked by the caller and is skipped, not validated.
// Interface tables are not decoded: a class that declares any interface is
// rejected with ErrUnsupported. The class attribute table is optional.
func Parse(buf []byte) (*ClassFile, error) {
	r := newReader(buf)

	r.skip(4)
	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
		Size:         len(buf),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read header: %w", r.err)
	}
	cf.HeaderSpan = Span{Offset: 0, Length: r.position()}

	poolStart := r.position()
	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = pool
	cf.ConstantPoolSpan = Span{Offset: poolStart, Length: r.position() - poolStart}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}
	if interfacesCount != 0 {
		return nil, fmt.Errorf("%w: class declares %d interfaces", ErrUnsupported, interfacesCount)
	}

	fieldsCount := r.readU2()
	if !r.reserve(int(fieldsCount), minMemberSize) {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}

	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo(m)
	}

	methodsCount := r.readU2()
	if !r.reserve(int(methodsCount), minMemberSize) {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}

	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo(m)
	}

	// A file may end right after the methods; that is an empty class
	// attribute table.
	if len(r.remaining()) > 0 {
		cf.Attributes, err = readAttributes(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read class attributes: %w", err)
		}
	}

	return cf, nil
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if !r.reserve(int(count)-1, minConstantSize) {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}

	cp := newConstantPool(count)
	for i := 1; i < int(count); i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cp = append(cp, entry)
		if wide && i+1 < int(count) {
			cp = append(cp, nothing)
			i++
		}
	}
	return cp, nil
}

// readConstantPoolEntry reads one tagged entry. wide is set for Long and
// Double, which occupy two pool slots.
func readConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}
	if !tag.Valid() {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidTag, uint8(tag))
	}

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		entry = &ConstantUtf8Info{Bytes: r.readBytes(int(length))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		entry, wide = &ConstantLongInfo{Value: int64(r.readU8())}, true
	case ConstantDouble:
		entry, wide = &ConstantDoubleInfo{Value: math.Float64frombits(r.readU8())}, true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
		entry = &ConstantRefInfo{
			Kind:             tag,
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(r.readU1()),
			ReferenceIndex: r.readU2(),
		}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
	}

	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

type memberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
	Span            Span
}

func readMember(r *reader) (memberInfo, error) {
	start := r.position()
	m := memberInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return memberInfo{}, r.err
	}

	attrs, err := readAttributes(r)
	if err != nil {
		return memberInfo{}, err
	}
	m.Attributes = attrs
	m.Span = Span{Offset: start, Length: r.position() - start}
	return m, nil
}

func readAttributes(r *reader) ([]AttributeInfo, error) {
	count := r.readU2()
	if !r.reserve(int(count), minAttributeSize) {
		return nil, r.err
	}

	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i].NameIndex = r.readU2()
		length := r.readU4()
		offset := r.position()
		attrs[i].Info = r.readBytes(int(length))
		if r.err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, r.err)
		}
		attrs[i].Span = Span{Offset: offset, Length: int(length)}
	}
	return attrs, nil
}
