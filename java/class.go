package java

import "strings"

// Class is the decoded form of one class file. All nodes reachable from it
// live in its arena; byte slices alias the buffer it was parsed from.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16
	Name         string
	// SuperName is empty for java.lang.Object and module-info.
	SuperName         string
	AccessFlags       ClassAccessFlags
	Fields            []*Field
	Methods           []*Method
	UnknownAttributes int

	regions []Region
	arena   *Arena
}

func (c *Class) SimpleName() string {
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

func (c *Class) Package() string {
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[:i]
	}
	return ""
}

func (c *Class) Visibility() string {
	if c.AccessFlags.Public {
		return "public"
	}
	return "package"
}

func (c *Class) Kind() string {
	switch f := c.AccessFlags; {
	case f.Module:
		return "module"
	case f.Annotation:
		return "annotation"
	case f.Interface:
		return "interface"
	case f.Enum:
		return "enum"
	default:
		return "class"
	}
}

func (c *Class) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Method finds a method by name and, unless descriptor is empty, descriptor.
func (c *Class) Method(name, descriptor string) *Method {
	for _, m := range c.Methods {
		if m.Name == name && (descriptor == "" || m.Descriptor == descriptor) {
			return m
		}
	}
	return nil
}

func (c *Class) MethodsByName(name string) []*Method {
	var methods []*Method
	for _, m := range c.Methods {
		if m.Name == name {
			methods = append(methods, m)
		}
	}
	return methods
}

// Regions lists the named byte ranges of the file in offset order.
func (c *Class) Regions() []Region {
	return c.regions
}

func (c *Class) Arena() *Arena {
	return c.arena
}
