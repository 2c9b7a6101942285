package java

import (
	"strings"

	"github.com/dhamidi/jreflect/classfile"
)

// GenericType is the closed set of shapes a declared type can take:
// Type, *ParameterizedType, *GenericArrayType, *TypeVariable and
// *WildcardType.
type GenericType interface {
	String() string
	genericType()
}

// ParameterizedType is a class type with type arguments, such as
// java.util.List<java.lang.String>. Owner is set for inner classes of a
// parameterized outer class.
type ParameterizedType struct {
	Raw   Type
	Args  []GenericType
	Owner GenericType
}

// GenericArrayType is an array whose component is a parameterized type or
// a type variable. Arrays of concrete types are plain Types.
type GenericArrayType struct {
	Component GenericType
}

type TypeVariable struct {
	Name string
}

// WildcardType has Upper set to [java.lang.Object] when no extends bound
// is given.
type WildcardType struct {
	Upper []GenericType
	Lower []GenericType
}

func (*ParameterizedType) genericType() {}
func (*GenericArrayType) genericType()  {}
func (*TypeVariable) genericType()      {}
func (*WildcardType) genericType()      {}

func (p *ParameterizedType) String() string {
	var sb strings.Builder
	if p.Owner != nil {
		if _, ok := p.Owner.(*ParameterizedType); ok {
			sb.WriteString(p.Owner.String())
			sb.WriteByte('.')
			sb.WriteString(p.Raw.Name[strings.LastIndexByte(p.Raw.Name, '$')+1:])
		} else {
			sb.WriteString(p.Raw.Name)
		}
	} else {
		sb.WriteString(p.Raw.Name)
	}
	if len(p.Args) > 0 {
		sb.WriteByte('<')
		sb.WriteString(joinTypes(p.Args, ", "))
		sb.WriteByte('>')
	}
	return sb.String()
}

func (a *GenericArrayType) String() string {
	return a.Component.String() + "[]"
}

func (v *TypeVariable) String() string {
	return v.Name
}

func (w *WildcardType) String() string {
	if len(w.Lower) > 0 {
		return "? super " + joinTypes(w.Lower, " & ")
	}
	if len(w.Upper) == 0 || (len(w.Upper) == 1 && w.Upper[0] == GenericType(Object)) {
		return "?"
	}
	return "? extends " + joinTypes(w.Upper, " & ")
}

func joinTypes(types []GenericType, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// GenericArrayOf returns the array type with the given component. A
// concrete component yields a plain array Type.
func GenericArrayOf(component GenericType) GenericType {
	if t, ok := component.(Type); ok {
		return ArrayOf(t)
	}
	return &GenericArrayType{Component: component}
}

// Erasure returns the raw Type a generic type erases to. Type variables
// erase to java.lang.Object because bounds are not tracked.
func Erasure(g GenericType) Type {
	switch g := g.(type) {
	case Type:
		return g
	case *ParameterizedType:
		return g.Raw
	case *GenericArrayType:
		return ArrayOf(Erasure(g.Component))
	case *WildcardType:
		if len(g.Upper) > 0 {
			return Erasure(g.Upper[0])
		}
	}
	return Object
}

// GenericTypeFromSignature converts a parsed Signature attribute.
func GenericTypeFromSignature(ts *classfile.TypeSignature) GenericType {
	switch ts.Kind {
	case classfile.SignatureBase:
		return Type{Name: ts.BaseType}
	case classfile.SignatureTypeVariable:
		return &TypeVariable{Name: ts.Variable}
	case classfile.SignatureArray:
		return GenericArrayOf(GenericTypeFromSignature(ts.Component))
	}

	raw := TypeOf(classfile.InternalToSourceName(ts.ClassName))
	var owner GenericType
	if ts.Outer != nil {
		owner = GenericTypeFromSignature(ts.Outer)
	}
	_, ownerParameterized := owner.(*ParameterizedType)
	if len(ts.TypeArguments) == 0 && !ownerParameterized {
		return raw
	}

	p := &ParameterizedType{Raw: raw, Owner: owner}
	for _, arg := range ts.TypeArguments {
		switch arg.Wildcard {
		case '*':
			p.Args = append(p.Args, &WildcardType{Upper: []GenericType{Object}})
		case '+':
			p.Args = append(p.Args, &WildcardType{Upper: []GenericType{GenericTypeFromSignature(arg.Type)}})
		case '-':
			p.Args = append(p.Args, &WildcardType{
				Upper: []GenericType{Object},
				Lower: []GenericType{GenericTypeFromSignature(arg.Type)},
			})
		default:
			p.Args = append(p.Args, GenericTypeFromSignature(arg.Type))
		}
	}
	return p
}
