package reflect

import (
	"fmt"
	"io"

	"github.com/dhamidi/jreflect/classfile"
	"github.com/dhamidi/jreflect/java"
)

const (
	classModifiers = java.Public | java.Final | java.Interface | java.Abstract | java.Synthetic | java.Enum
	fieldModifiers = java.Public | java.Private | java.Protected | java.Static | java.Final |
		java.Volatile | java.Transient | java.Synthetic | java.Enum
)

func (r *Registry) Load(rd io.Reader) (*Class, error) {
	cf, err := classfile.Parse(rd)
	if err != nil {
		return nil, err
	}
	return r.LoadClassFile(cf)
}

func (r *Registry) LoadFile(path string) (*Class, error) {
	r.log.Debugf("loading class file %s", path)
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return r.LoadClassFile(cf)
}

// LoadClassFile registers the class described by cf. Static fields start
// with their ConstantValue, or the zero value of their type.
func (r *Registry) LoadClassFile(cf *classfile.ClassFile) (*Class, error) {
	cp := cf.ConstantPool
	c := &Class{
		name:      classfile.InternalToSourceName(cf.ClassName()),
		super:     classfile.InternalToSourceName(cf.SuperClassName()),
		modifiers: java.ModifiersFromAccessFlags(cf.AccessFlags) & classModifiers,
	}
	for _, iface := range cf.InterfaceNames() {
		c.interfaces = append(c.interfaces, classfile.InternalToSourceName(iface))
	}
	if sig := cf.Signature(); sig != "" {
		cs, err := classfile.ParseClassSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.name, err)
		}
		for _, tp := range cs.TypeParameters {
			c.typeParams = append(c.typeParams, tp.Name)
		}
	}

	fields := make([]*fieldHandle, 0, len(cf.Fields))
	for i := range cf.Fields {
		h, err := fieldFromClassfile(&cf.Fields[i], cp)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", c.name, cf.Fields[i].Name(cp), err)
		}
		fields = append(fields, h)
	}
	if err := r.register(c, fields); err != nil {
		return nil, err
	}
	return c, nil
}

func fieldFromClassfile(f *classfile.FieldInfo, cp classfile.ConstantPool) (*fieldHandle, error) {
	typ, ok := java.TypeFromDescriptor(f.Descriptor(cp))
	if !ok {
		return nil, fmt.Errorf("invalid descriptor %q", f.Descriptor(cp))
	}
	h := &fieldHandle{
		name:        f.Name(cp),
		typ:         typ,
		generic:     typ,
		modifiers:   java.ModifiersFromAccessFlags(f.AccessFlags) & fieldModifiers,
		annotations: java.AnnotationsFromClassfile(f.VisibleAnnotations(cp), cp),
	}
	if err := h.modifiers.Validate(); err != nil {
		return nil, err
	}
	if f.IsSynthetic(cp) {
		h.modifiers |= java.Synthetic
	}
	if sig := f.Signature(cp); sig != "" {
		ts, err := classfile.ParseFieldSignature(sig)
		if err != nil {
			return nil, err
		}
		h.generic = java.GenericTypeFromSignature(ts)
	}

	if h.modifiers.IsStatic() {
		h.static = zeroValue(typ)
		if cv, ok := f.ConstantValue(cp); ok {
			v, err := literal(typ, cv)
			if err != nil {
				return nil, fmt.Errorf("constant value: %w", err)
			}
			h.static = v
		}
	}
	return h, nil
}
