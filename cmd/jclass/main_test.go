package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jclass/classfile/classfiletest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	data := classfiletest.New().
		This("demo/Counter").
		Super("java/lang/Object").
		Field(0x0002, "n", "J").
		Method(0x0001, "inc", "()V", classfiletest.Code(0xB1)).
		Bytes()
	path := filepath.Join(t.TempDir(), "Counter.class")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeSample(t)

	t.Run("line", func(t *testing.T) {
		out, err := run(t, "parse", path)
		if err != nil {
			t.Fatalf("parse error = %v\n%s", err, out)
		}
		if !strings.Contains(out, "field\tn\tlong\tprivate\n") {
			t.Errorf("missing field line in:\n%s", out)
		}
		if !strings.Contains(out, "method\tinc\t()V\tpublic\t") {
			t.Errorf("missing method line in:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "parse", "-f", "json", path)
		if err != nil {
			t.Fatalf("parse error = %v\n%s", err, out)
		}
		if !strings.Contains(out, `"name": "demo.Counter"`) {
			t.Errorf("unexpected json:\n%s", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := run(t, "parse", "-f", "java", path); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestZonesCommand(t *testing.T) {
	out, err := run(t, "zones", writeSample(t))
	if err != nil {
		t.Fatalf("zones error = %v\n%s", err, out)
	}
	for _, name := range []string{"\theader\n", "\tconstant pool\n", "\tfield n\n", "\tmethod inc\n", "\tcode inc\n"} {
		if !strings.Contains(out, name) {
			t.Errorf("zones output missing %q:\n%s", name, out)
		}
	}
}

func TestRejectsNonClassFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.class")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "parse", path)
	if err == nil || !strings.Contains(err.Error(), "not a class file") {
		t.Errorf("err = %v, want bad magic error", err)
	}
}
