package java

import "github.com/dhamidi/jclass/classfile"

// Bits outside each struct's set are dropped without complaint.

type ClassAccessFlags struct {
	Public     bool
	Final      bool
	Super      bool
	Interface  bool
	Abstract   bool
	Synthetic  bool
	Annotation bool
	Enum       bool
	Module     bool
}

type FieldAccessFlags struct {
	Public    bool
	Private   bool
	Protected bool
	Static    bool
	Final     bool
	Volatile  bool
	Transient bool
	Synthetic bool
	Enum      bool
}

type MethodAccessFlags struct {
	Public       bool
	Private      bool
	Protected    bool
	Static       bool
	Final        bool
	Synchronized bool
	Bridge       bool
	Varargs      bool
	Native       bool
	Abstract     bool
	Strict       bool
	Synthetic    bool
}

func classFlags(f classfile.AccessFlags) ClassAccessFlags {
	return ClassAccessFlags{
		Public:     f.IsPublic(),
		Final:      f.IsFinal(),
		Super:      f.IsSuper(),
		Interface:  f.IsInterface(),
		Abstract:   f.IsAbstract(),
		Synthetic:  f.IsSynthetic(),
		Annotation: f.IsAnnotation(),
		Enum:       f.IsEnum(),
		Module:     f.IsModule(),
	}
}

func fieldFlags(f classfile.AccessFlags) FieldAccessFlags {
	return FieldAccessFlags{
		Public:    f.IsPublic(),
		Private:   f.IsPrivate(),
		Protected: f.IsProtected(),
		Static:    f.IsStatic(),
		Final:     f.IsFinal(),
		Volatile:  f.IsVolatile(),
		Transient: f.IsTransient(),
		Synthetic: f.IsSynthetic(),
		Enum:      f.IsEnum(),
	}
}

func methodFlags(f classfile.AccessFlags) MethodAccessFlags {
	return MethodAccessFlags{
		Public:       f.IsPublic(),
		Private:      f.IsPrivate(),
		Protected:    f.IsProtected(),
		Static:       f.IsStatic(),
		Final:        f.IsFinal(),
		Synchronized: f.IsSynchronized(),
		Bridge:       f.IsBridge(),
		Varargs:      f.IsVarargs(),
		Native:       f.IsNative(),
		Abstract:     f.IsAbstract(),
		Strict:       f.IsStrict(),
		Synthetic:    f.IsSynthetic(),
	}
}

func visibility(public, private, protected bool) string {
	switch {
	case public:
		return "public"
	case private:
		return "private"
	case protected:
		return "protected"
	default:
		return "package"
	}
}

func (f ClassAccessFlags) Modifiers() []string {
	var mods []string
	if f.Public {
		mods = append(mods, "public")
	}
	if f.Abstract && !f.Interface {
		mods = append(mods, "abstract")
	}
	if f.Final {
		mods = append(mods, "final")
	}
	if f.Synthetic {
		mods = append(mods, "synthetic")
	}
	return mods
}

func (f FieldAccessFlags) Visibility() string {
	return visibility(f.Public, f.Private, f.Protected)
}

func (f FieldAccessFlags) Modifiers() []string {
	var mods []string
	if v := f.Visibility(); v != "package" {
		mods = append(mods, v)
	}
	if f.Static {
		mods = append(mods, "static")
	}
	if f.Final {
		mods = append(mods, "final")
	}
	if f.Volatile {
		mods = append(mods, "volatile")
	}
	if f.Transient {
		mods = append(mods, "transient")
	}
	if f.Synthetic {
		mods = append(mods, "synthetic")
	}
	if f.Enum {
		mods = append(mods, "enum")
	}
	return mods
}

func (f MethodAccessFlags) Visibility() string {
	return visibility(f.Public, f.Private, f.Protected)
}

func (f MethodAccessFlags) Modifiers() []string {
	var mods []string
	if v := f.Visibility(); v != "package" {
		mods = append(mods, v)
	}
	if f.Static {
		mods = append(mods, "static")
	}
	if f.Final {
		mods = append(mods, "final")
	}
	if f.Synchronized {
		mods = append(mods, "synchronized")
	}
	if f.Bridge {
		mods = append(mods, "bridge")
	}
	if f.Varargs {
		mods = append(mods, "varargs")
	}
	if f.Native {
		mods = append(mods, "native")
	}
	if f.Abstract {
		mods = append(mods, "abstract")
	}
	if f.Strict {
		mods = append(mods, "strictfp")
	}
	if f.Synthetic {
		mods = append(mods, "synthetic")
	}
	return mods
}
