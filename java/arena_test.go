package java

import "testing"

func TestArenaPointersStable(t *testing.T) {
	a := NewArena()
	first := a.ClassReference("pkg.C0")
	for i := 1; i < 3*slabChunk; i++ {
		a.ClassReference("pkg.C" + string(rune('A'+i%26)) + string(rune('a'+i/26)))
	}
	if first.Name != "pkg.C0" {
		t.Errorf("first reference changed to %q after growth", first.Name)
	}
	if a.ClassReference("pkg.C0") != first {
		t.Error("interned reference changed identity after growth")
	}
}

func TestArenaStats(t *testing.T) {
	a := NewArena()
	a.ClassReference("a.B")
	a.ClassReference("a.B")
	a.ArrayReference(a.Primitive(Int))
	a.ArrayReference(a.Primitive(Int))
	a.ArrayReference(a.ClassReference("a.B"))
	a.newField()

	got := a.Stats()
	want := ArenaStats{ClassReferences: 1, ArrayReferences: 2, Fields: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestPrimitiveSingletons(t *testing.T) {
	a := NewArena()
	for k := Byte; k <= Char; k++ {
		if a.Primitive(k) != a.Primitive(k) {
			t.Errorf("Primitive(%s) not a singleton", k)
		}
		if a.Primitive(k).Kind != k {
			t.Errorf("Primitive(%s).Kind = %s", k, a.Primitive(k).Kind)
		}
	}
}
