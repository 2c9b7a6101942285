package classfile

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	// Parsed holds one of the *Attribute types below, or nil for
	// attributes this package does not decode.
	Parsed any
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type SyntheticAttribute struct{}

type DeprecatedAttribute struct{}

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue.Value is a uint16 constant pool index for primitive, string
// and class tags, an EnumConstValue for 'e', an Annotation for '@' and an
// ArrayValue for '['.
type ElementValue struct {
	Tag   byte
	Value any
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ArrayValue struct {
	Values []ElementValue
}

type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

func (a *AttributeInfo) AsConstantValue() *ConstantValueAttribute {
	v, _ := a.Parsed.(*ConstantValueAttribute)
	return v
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	v, _ := a.Parsed.(*SignatureAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeVisibleAnnotations() *RuntimeVisibleAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeVisibleAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeInvisibleAnnotations() *RuntimeInvisibleAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeInvisibleAnnotationsAttribute)
	return v
}

func findAttribute(attrs []AttributeInfo, cp ConstantPool, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}
