package java

import (
	"strings"

	"github.com/dhamidi/jreflect/classfile"
)

// Type identifies a class, interface, primitive or array type. It is
// comparable, so two Types are the same type iff they are ==. Nested
// classes use their binary name (java.util.Map$Entry).
type Type struct {
	Name       string
	ArrayDepth int
}

var (
	Boolean = Type{Name: "boolean"}
	Byte    = Type{Name: "byte"}
	Char    = Type{Name: "char"}
	Short   = Type{Name: "short"}
	Int     = Type{Name: "int"}
	Long    = Type{Name: "long"}
	Float   = Type{Name: "float"}
	Double  = Type{Name: "double"}
	Void    = Type{Name: "void"}

	Object = TypeOf("java.lang.Object")
	String = TypeOf("java.lang.String")
)

func TypeOf(name string) Type {
	return Type{Name: name}
}

// ArrayOf returns the type of a one-dimensional array of t.
func ArrayOf(t Type) Type {
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth + 1}
}

// TypeFromDescriptor converts a field descriptor such as "[Ljava/lang/String;".
func TypeFromDescriptor(desc string) (Type, bool) {
	ft := classfile.ParseFieldDescriptor(desc)
	if ft == nil {
		return Type{}, false
	}
	return typeFromFieldType(ft), true
}

func typeFromFieldType(ft *classfile.FieldType) Type {
	name := ft.BaseType
	if name == "" {
		name = classfile.InternalToSourceName(ft.ClassName)
	}
	return Type{Name: name, ArrayDepth: ft.ArrayDepth}
}

func (t Type) String() string {
	return t.Name + strings.Repeat("[]", t.ArrayDepth)
}

func (t Type) IsZero() bool {
	return t.Name == ""
}

func (t Type) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// ComponentType strips one array dimension; it returns t unchanged for
// non-array types.
func (t Type) ComponentType() Type {
	if t.ArrayDepth == 0 {
		return t
	}
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth - 1}
}

// Package returns the package part of a class name, or "" for primitives,
// arrays and classes in the unnamed package.
func (t Type) Package() string {
	if t.ArrayDepth > 0 || t.IsPrimitive() {
		return ""
	}
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[:i]
	}
	return ""
}

func (t Type) SimpleName() string {
	name := t.Name[strings.LastIndexByte(t.Name, '.')+1:]
	return name + strings.Repeat("[]", t.ArrayDepth)
}

func (Type) genericType() {}
