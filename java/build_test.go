package java

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/classfile/classfiletest"
)

func minimalClass() []byte {
	return classfiletest.New().
		This("com/example/Minimal").
		Super("java/lang/Object").
		Field(0x0019, "VALUE", "I").
		Method(0x0001, "run", "()V", classfiletest.Code(0xB1)).
		Bytes()
}

func TestParseMinimalClass(t *testing.T) {
	class, err := Parse(minimalClass())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if class.Name != "com.example.Minimal" {
		t.Errorf("Name = %q, want com.example.Minimal", class.Name)
	}
	if class.SuperName != "java.lang.Object" {
		t.Errorf("SuperName = %q, want java.lang.Object", class.SuperName)
	}
	if class.SimpleName() != "Minimal" || class.Package() != "com.example" {
		t.Errorf("SimpleName/Package = %q/%q", class.SimpleName(), class.Package())
	}

	if len(class.Fields) != 1 {
		t.Fatalf("Expected 1 field, got %d", len(class.Fields))
	}
	f := class.Fields[0]
	if p, ok := f.Type.(*Primitive); !ok || p.Kind != Int {
		t.Errorf("field type = %v, want int", f.Type)
	}
	if !f.AccessFlags.Public || !f.AccessFlags.Static || !f.AccessFlags.Final {
		t.Errorf("field flags = %+v, want public static final", f.AccessFlags)
	}
	if f.AccessFlags.Private || f.AccessFlags.Volatile {
		t.Errorf("unexpected field flags %+v", f.AccessFlags)
	}

	if len(class.Methods) != 1 {
		t.Fatalf("Expected 1 method, got %d", len(class.Methods))
	}
	m := class.Methods[0]
	if m.Name != "run" || m.Descriptor != "()V" {
		t.Errorf("method = %s%s, want run()V", m.Name, m.Descriptor)
	}
	if !m.AccessFlags.Public {
		t.Error("run should be public")
	}
	if m.Code == nil || len(m.Code.Bytes) == 0 {
		t.Fatal("run should carry a non-empty Code region")
	}
	if m.Code.Span.Length != len(m.Code.Bytes) {
		t.Errorf("Code span length %d, bytes %d", m.Code.Span.Length, len(m.Code.Bytes))
	}
	if m.UnknownAttributes != 0 {
		t.Errorf("UnknownAttributes = %d, want 0", m.UnknownAttributes)
	}
}

func TestParseAttributesCounting(t *testing.T) {
	data := classfiletest.New().
		This("A").
		Super("java/lang/Object").
		Field(0x0002, "x", "J",
			classfiletest.Attribute{Name: "Synthetic"},
			classfiletest.Attribute{Name: "Code", Data: []byte{1}}).
		Method(0x0401, "abs", "()V",
			classfiletest.Attribute{Name: "Exceptions", Data: []byte{0, 0}}).
		Method(0x0101, "nat", "(I)I").
		Attribute("SourceFile", []byte{0, 1}).
		Bytes()

	class, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := class.Fields[0].UnknownAttributes; got != 2 {
		t.Errorf("field UnknownAttributes = %d, want 2 (fields never claim Code)", got)
	}
	abs := class.Method("abs", "()V")
	if abs == nil {
		t.Fatal("abs not found")
	}
	if abs.Code != nil {
		t.Error("abstract method should have no Code")
	}
	if abs.UnknownAttributes != 1 {
		t.Errorf("abs UnknownAttributes = %d, want 1", abs.UnknownAttributes)
	}
	if !abs.AccessFlags.Abstract {
		t.Error("abs should be abstract")
	}
	nat := class.Method("nat", "")
	if nat == nil || !nat.AccessFlags.Native || nat.Code != nil {
		t.Errorf("nat = %+v, want native without Code", nat)
	}
	if class.UnknownAttributes != 1 {
		t.Errorf("class UnknownAttributes = %d, want 1", class.UnknownAttributes)
	}
}

func TestParseSharesFieldTypes(t *testing.T) {
	data := classfiletest.New().
		This("A").
		Super("java/lang/Object").
		Field(0, "a", "Ljava/lang/String;").
		Field(0, "b", "Ljava/lang/String;").
		Field(0, "c", "[Ljava/lang/String;").
		Field(0, "d", "[Ljava/lang/String;").
		Bytes()

	class, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a, b, c, d := class.Fields[0].Type, class.Fields[1].Type, class.Fields[2].Type, class.Fields[3].Type
	if a != b {
		t.Error("fields a and b should share one String type")
	}
	if c != d {
		t.Error("fields c and d should share one String[] type")
	}
	if c.(*ArrayReference).Element != a {
		t.Error("String[] element should be the shared String type")
	}

	other, err := Parse(data)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}
	if other.Fields[0].Type == a {
		t.Error("separate parses must not share type identity")
	}
}

func TestParseFlagsIgnoreUnknownBits(t *testing.T) {
	data := classfiletest.New().
		This("A").
		Super("java/lang/Object").
		Field(0xFFFF, "all", "Z").
		Method(0xFFFF, "all", "()V").
		Bytes()

	class, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := FieldAccessFlags{true, true, true, true, true, true, true, true, true}
	if class.Fields[0].AccessFlags != want {
		t.Errorf("field flags = %+v, want all set", class.Fields[0].AccessFlags)
	}
	wantM := MethodAccessFlags{true, true, true, true, true, true, true, true, true, true, true, true}
	if class.Methods[0].AccessFlags != wantM {
		t.Errorf("method flags = %+v, want all set", class.Methods[0].AccessFlags)
	}
}

func TestParseFailures(t *testing.T) {
	t.Run("bad field descriptor", func(t *testing.T) {
		data := classfiletest.New().This("A").Super("java/lang/Object").
			Field(0, "ok", "I").
			Field(0, "bad", "Q").
			Bytes()
		class, err := Parse(data)
		if !errors.Is(err, classfile.ErrMalformedDescriptor) {
			t.Errorf("err = %v, want ErrMalformedDescriptor", err)
		}
		if class != nil {
			t.Error("no partial Class on failure")
		}
	})

	t.Run("name index points at non-Utf8", func(t *testing.T) {
		b := classfiletest.New().This("A").Super("java/lang/Object")
		cls := b.Class("B")
		b.FieldIndices(0, cls, b.Utf8("I"))
		if _, err := Parse(b.Bytes()); !errors.Is(err, classfile.ErrBadIndex) {
			t.Errorf("err = %v, want ErrBadIndex", err)
		}
	})

	t.Run("name index 0", func(t *testing.T) {
		b := classfiletest.New().This("A").Super("java/lang/Object")
		b.FieldIndices(0, 0, b.Utf8("I"))
		if _, err := Parse(b.Bytes()); !errors.Is(err, classfile.ErrBadIndex) {
			t.Errorf("err = %v, want ErrBadIndex", err)
		}
	})

	t.Run("descriptor index out of range", func(t *testing.T) {
		b := classfiletest.New().This("A").Super("java/lang/Object")
		b.FieldIndices(0, b.Utf8("f"), 999)
		if _, err := Parse(b.Bytes()); !errors.Is(err, classfile.ErrBadIndex) {
			t.Errorf("err = %v, want ErrBadIndex", err)
		}
	})

	t.Run("interfaces", func(t *testing.T) {
		data := classfiletest.New().This("A").Super("java/lang/Object").Interface("java/io/Serializable").Bytes()
		if _, err := Parse(data); !errors.Is(err, classfile.ErrUnsupported) {
			t.Errorf("err = %v, want ErrUnsupported", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		data := minimalClass()
		// data[:len(data)-2] ends right after the methods and decodes.
		for n := 0; n < len(data)-2; n++ {
			class, err := Parse(data[:n])
			if !errors.Is(err, classfile.ErrTruncated) || class != nil {
				t.Fatalf("Parse(data[:%d]) = %v, %v; want nil, ErrTruncated", n, class, err)
			}
		}
	})
}

func TestParseWithoutSuperClass(t *testing.T) {
	data := classfiletest.New().This("java/lang/Object").Bytes()
	class, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if class.SuperName != "" {
		t.Errorf("SuperName = %q, want empty", class.SuperName)
	}
}

func TestParseUnresolvedHeaderNames(t *testing.T) {
	t.Run("this class 0", func(t *testing.T) {
		data := classfiletest.New().
			Field(0x0002, "x", "I").
			Method(0x0001, "m", "()V", classfiletest.Code(0xB1)).
			Bytes()
		class, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if class.Name != "" || class.SuperName != "" {
			t.Errorf("Name = %q, SuperName = %q, want both empty", class.Name, class.SuperName)
		}
		if class.Field("x") == nil || class.Method("m", "()V") == nil {
			t.Error("members should still be decoded")
		}
	})

	t.Run("this and super not Class entries", func(t *testing.T) {
		b := classfiletest.New()
		b.Field(0x0002, "x", "I")
		// Point both header indices at the field's Utf8 name.
		b.SetThisIndex(b.Utf8("x"))
		b.SetSuperIndex(b.Utf8("I"))
		class, err := Parse(b.Bytes())
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if class.Name != "" || class.SuperName != "" {
			t.Errorf("Name = %q, SuperName = %q, want both empty", class.Name, class.SuperName)
		}
		if len(class.Fields) != 1 {
			t.Errorf("fields = %d, want 1", len(class.Fields))
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		b := classfiletest.New().This("A")
		b.SetSuperIndex(999)
		class, err := Parse(b.Bytes())
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if class.Name != "A" || class.SuperName != "" {
			t.Errorf("Name = %q, SuperName = %q, want A and empty", class.Name, class.SuperName)
		}
	})
}

func TestRegions(t *testing.T) {
	data := minimalClass()
	class, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var names []string
	for _, r := range class.Regions() {
		names = append(names, r.Name)
		if r.Span.Offset < 0 || r.Span.End() > len(data) {
			t.Errorf("region %q %+v outside buffer of %d bytes", r.Name, r.Span, len(data))
		}
	}
	want := []string{"header", "constant pool", "field VALUE", "method run", "code run"}
	if len(names) != len(want) {
		t.Fatalf("regions = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("region %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Minimal.class")
	if err := os.WriteFile(path, minimalClass(), 0o644); err != nil {
		t.Fatal(err)
	}
	class, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if class.Field("VALUE") == nil {
		t.Error("expected VALUE field")
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.class")); err == nil {
		t.Error("expected error for missing file")
	}
}
