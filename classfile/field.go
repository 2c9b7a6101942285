package classfile

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(f.DescriptorIndex)
}

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) *FieldType {
	return ParseFieldDescriptor(f.Descriptor(cp))
}

func (f *FieldInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(f.Attributes, cp, name)
}

// Signature returns the generic signature string, or "" when the field's
// type is not generic.
func (f *FieldInfo) Signature(cp ConstantPool) string {
	if attr := f.GetAttribute(cp, "Signature"); attr != nil {
		if sig := attr.AsSignature(); sig != nil {
			return cp.GetUtf8(sig.SignatureIndex)
		}
	}
	return ""
}

// ConstantValue returns the initial value of a static field compiled from
// a constant expression.
func (f *FieldInfo) ConstantValue(cp ConstantPool) (any, bool) {
	if attr := f.GetAttribute(cp, "ConstantValue"); attr != nil {
		if cv := attr.AsConstantValue(); cv != nil {
			return cp.Loadable(cv.ConstantValueIndex)
		}
	}
	return nil, false
}

// VisibleAnnotations returns the RuntimeVisibleAnnotations of the field in
// class file order.
func (f *FieldInfo) VisibleAnnotations(cp ConstantPool) []Annotation {
	if attr := f.GetAttribute(cp, "RuntimeVisibleAnnotations"); attr != nil {
		if rva := attr.AsRuntimeVisibleAnnotations(); rva != nil {
			return rva.Annotations
		}
	}
	return nil
}

func (f *FieldInfo) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfo) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfo) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfo) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfo) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfo) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *FieldInfo) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *FieldInfo) IsEnum() bool      { return f.AccessFlags.IsEnum() }

// IsSynthetic honours both the ACC_SYNTHETIC flag and the pre-Java 5
// Synthetic attribute.
func (f *FieldInfo) IsSynthetic(cp ConstantPool) bool {
	return f.AccessFlags.IsSynthetic() || f.GetAttribute(cp, "Synthetic") != nil
}

func (f *FieldInfo) IsDeprecated(cp ConstantPool) bool {
	return f.GetAttribute(cp, "Deprecated") != nil
}
