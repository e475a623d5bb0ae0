package classfile

import (
	"fmt"
	"unicode/utf8"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantNothingInfo struct{}

func (c *ConstantNothingInfo) Tag() ConstantTag { return ConstantNothing }

// ConstantUtf8Info borrows its bytes from the parsed buffer.
type ConstantUtf8Info struct {
	Bytes []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

func (c *ConstantUtf8Info) String() string {
	return decodeModifiedUtf8(c.Bytes)
}

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

// ConstantRefInfo is the shared layout of Fieldref, Methodref and
// InterfaceMethodref entries.
type ConstantRefInfo struct {
	Kind             ConstantTag
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantRefInfo) Tag() ConstantTag { return c.Kind }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

var nothing = &ConstantNothingInfo{}

// ConstantPool is indexed exactly like the class file: slot 0 always holds
// the Nothing sentinel, so len(cp) equals constant_pool_count.
type ConstantPool []ConstantPoolEntry

func newConstantPool(count uint16) ConstantPool {
	cp := make(ConstantPool, 1, max(int(count), 1))
	cp[0] = nothing
	return cp
}

// Lookup returns the entry at index if it exists and carries tag want.
// Index 0 is never valid, whatever tag is asked for.
func (cp ConstantPool) Lookup(index uint16, want ConstantTag) (ConstantPoolEntry, error) {
	if index == 0 {
		return nil, fmt.Errorf("%w: index 0 is reserved", ErrBadIndex)
	}
	if int(index) >= len(cp) {
		return nil, fmt.Errorf("%w: index %d out of range (pool has %d slots)", ErrBadIndex, index, len(cp))
	}
	entry := cp[index]
	if entry.Tag() != want {
		return nil, fmt.Errorf("%w: index %d is %s, expected %s", ErrBadIndex, index, entry.Tag(), want)
	}
	return entry, nil
}

func (cp ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := cp.Lookup(index, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return entry.(*ConstantUtf8Info).String(), nil
}

// ClassName resolves a Class entry to its internal (slash separated) name.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := cp.Lookup(index, ConstantClass)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.(*ConstantClassInfo).NameIndex)
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := cp.Lookup(index, ConstantNameAndType)
	if err != nil {
		return "", "", err
	}
	nt := entry.(*ConstantNameAndTypeInfo)
	if name, err = cp.Utf8(nt.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(nt.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

func (cp ConstantPool) StringValue(index uint16) (string, error) {
	entry, err := cp.Lookup(index, ConstantString)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.(*ConstantStringInfo).StringIndex)
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as a pair of three-byte surrogates.
// A byte that does not start a well-formed sequence becomes utf8.RuneError.
func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && continuation(bytes, i+1, 1):
			runes = append(runes, rune(b&0x1F)<<6|rune(bytes[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && continuation(bytes, i+1, 2):
			r := decodeThree(bytes[i:])
			if r >= 0xD800 && r <= 0xDBFF && i+3 < len(bytes) && bytes[i+3]&0xF0 == 0xE0 && continuation(bytes, i+4, 2) {
				if low := decodeThree(bytes[i+3:]); low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, utf8.RuneError)
			i++
		}
	}
	return string(runes)
}

// continuation reports whether n bytes starting at from are all 10xxxxxx.
func continuation(bytes []byte, from, n int) bool {
	if from+n > len(bytes) {
		return false
	}
	for _, c := range bytes[from : from+n] {
		if c&0xC0 != 0x80 {
			return false
		}
	}
	return true
}

func decodeThree(b []byte) rune {
	return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
}
