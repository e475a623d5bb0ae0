package java

const slabChunk = 64

// slab hands out pointers into fixed-capacity chunks, so earlier pointers stay
// valid as it grows.
type slab[T any] struct {
	chunks [][]T
	n      int
}

func (s *slab[T]) alloc() *T {
	last := len(s.chunks) - 1
	if last < 0 || len(s.chunks[last]) == cap(s.chunks[last]) {
		s.chunks = append(s.chunks, make([]T, 0, slabChunk))
		last++
	}
	var zero T
	s.chunks[last] = append(s.chunks[last], zero)
	s.n++
	return &s.chunks[last][len(s.chunks[last])-1]
}

func (s *slab[T]) len() int {
	return s.n
}

// Arena owns every node of one decoded class. It also interns class and array
// types: a given class name, or a given element type, maps to one node for
// the arena's lifetime. Arenas are not safe for concurrent use and are never
// shared between parses.
type Arena struct {
	primitives [len(primitiveNames)]Primitive
	classRefs  slab[ClassReference]
	arrayRefs  slab[ArrayReference]
	fields     slab[Field]
	methods    slab[Method]
	codes      slab[Code]

	classIndex map[string]*ClassReference
	arrayIndex map[Type]*ArrayReference
}

func NewArena() *Arena {
	a := &Arena{
		classIndex: make(map[string]*ClassReference),
		arrayIndex: make(map[Type]*ArrayReference),
	}
	for k := range a.primitives {
		a.primitives[k].Kind = PrimitiveKind(k)
	}
	return a
}

func (a *Arena) Primitive(kind PrimitiveKind) *Primitive {
	return &a.primitives[kind]
}

// ClassReference interns name, which must already be in dotted form.
func (a *Arena) ClassReference(name string) *ClassReference {
	if ref, ok := a.classIndex[name]; ok {
		return ref
	}
	ref := a.classRefs.alloc()
	ref.Name = name
	a.classIndex[name] = ref
	return ref
}

// ArrayReference interns the array type whose element is elem. elem must
// itself come from this arena.
func (a *Arena) ArrayReference(elem Type) *ArrayReference {
	if ref, ok := a.arrayIndex[elem]; ok {
		return ref
	}
	ref := a.arrayRefs.alloc()
	ref.Element = elem
	a.arrayIndex[elem] = ref
	return ref
}

func (a *Arena) newField() *Field {
	return a.fields.alloc()
}

func (a *Arena) newMethod() *Method {
	return a.methods.alloc()
}

func (a *Arena) newCode() *Code {
	return a.codes.alloc()
}

type ArenaStats struct {
	ClassReferences int
	ArrayReferences int
	Fields          int
	Methods         int
}

func (a *Arena) Stats() ArenaStats {
	return ArenaStats{
		ClassReferences: a.classRefs.len(),
		ArrayReferences: a.arrayRefs.len(),
		Fields:          a.fields.len(),
		Methods:         a.methods.len(),
	}
}
