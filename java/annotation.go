package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jreflect/classfile"
)

type Annotation struct {
	Type     Type
	Elements []ElementValuePair
}

// ElementValuePair.Value is bool, int8, uint16 (char), int16, int32,
// int64, float32, float64, string, Type (class literal), EnumValue,
// Annotation or []any.
type ElementValuePair struct {
	Name  string
	Value any
}

type EnumValue struct {
	Type Type
	Name string
}

func (e EnumValue) String() string {
	return e.Type.Name + "." + e.Name
}

// Value returns the explicitly given value of the named element. Defaults
// declared on the annotation interface are not known here.
func (a Annotation) Value(name string) (any, bool) {
	for _, p := range a.Elements {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (a Annotation) String() string {
	var sb strings.Builder
	sb.WriteString("@" + a.Type.Name)
	if len(a.Elements) == 0 {
		return sb.String()
	}
	sb.WriteByte('(')
	for i, p := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name + "=" + formatElementValue(p.Value))
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatElementValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case uint16:
		return fmt.Sprintf("'%c'", rune(v))
	case Type:
		return v.String() + ".class"
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatElementValue(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}

func AnnotationsFromClassfile(anns []classfile.Annotation, cp classfile.ConstantPool) []Annotation {
	result := make([]Annotation, len(anns))
	for i, a := range anns {
		result[i] = annotationFromClassfile(a, cp)
	}
	return result
}

func annotationFromClassfile(a classfile.Annotation, cp classfile.ConstantPool) Annotation {
	ann := Annotation{
		Type:     descriptorType(cp.GetUtf8(a.TypeIndex)),
		Elements: make([]ElementValuePair, len(a.ElementValuePairs)),
	}
	for i, p := range a.ElementValuePairs {
		ann.Elements[i] = ElementValuePair{
			Name:  cp.GetUtf8(p.ElementNameIndex),
			Value: elementValueToGo(p.Value, cp),
		}
	}
	return ann
}

func elementValueToGo(ev classfile.ElementValue, cp classfile.ConstantPool) any {
	switch v := ev.Value.(type) {
	case uint16:
		return constElementValue(ev.Tag, v, cp)
	case classfile.EnumConstValue:
		return EnumValue{
			Type: descriptorType(cp.GetUtf8(v.TypeNameIndex)),
			Name: cp.GetUtf8(v.ConstNameIndex),
		}
	case classfile.Annotation:
		return annotationFromClassfile(v, cp)
	case classfile.ArrayValue:
		result := make([]any, len(v.Values))
		for i, e := range v.Values {
			result[i] = elementValueToGo(e, cp)
		}
		return result
	}
	return nil
}

func constElementValue(tag byte, idx uint16, cp classfile.ConstantPool) any {
	switch tag {
	case 's':
		return cp.GetUtf8(idx)
	case 'c':
		return descriptorType(cp.GetUtf8(idx))
	case 'J':
		v, _ := cp.GetLong(idx)
		return v
	case 'F':
		v, _ := cp.GetFloat(idx)
		return v
	case 'D':
		v, _ := cp.GetDouble(idx)
		return v
	}
	n, _ := cp.GetInteger(idx)
	switch tag {
	case 'Z':
		return n != 0
	case 'B':
		return int8(n)
	case 'C':
		return uint16(n)
	case 'S':
		return int16(n)
	}
	return n
}

// descriptorType converts a field descriptor, or "V" for void.class.
func descriptorType(desc string) Type {
	if desc == "V" {
		return Void
	}
	if t, ok := TypeFromDescriptor(desc); ok {
		return t
	}
	return TypeOf(desc)
}
