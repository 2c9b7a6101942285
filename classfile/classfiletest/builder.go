// Package classfiletest builds class files in memory for tests that need
// real class file bytes without a Java compiler.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dhamidi/jreflect/classfile"
)

// Field describes one field_info entry. Constant is written as a
// ConstantValue attribute and may be an int32, int64, float32, float64 or
// string.
type Field struct {
	Access               classfile.AccessFlags
	Name                 string
	Descriptor           string
	Signature            string
	Constant             any
	Synthetic            bool
	Deprecated           bool
	Annotations          []Annotation
	InvisibleAnnotations []Annotation
}

// Annotation uses a field descriptor for its type, e.g. "Ljavax/inject/Named;".
type Annotation struct {
	Descriptor string
	Elements   []Element
}

// Element values may be bool, int8, uint16, int16, int32, int64, float32,
// float64, string, Enum, Class, Annotation or []any.
type Element struct {
	Name  string
	Value any
}

type Enum struct {
	Descriptor string
	Name       string
}

// Class is a class literal given as a return descriptor, e.g. "Ljava/lang/String;".
type Class string

type Method struct {
	Access     classfile.AccessFlags
	Name       string
	Descriptor string
}

type Builder struct {
	name       string
	super      string
	access     classfile.AccessFlags
	interfaces []string
	signature  string
	fields     []Field
	methods    []Method

	pool  bytes.Buffer
	count uint16
	index map[string]uint16
}

// New starts a public class with the given internal name and
// java/lang/Object as its superclass.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		super:  "java/lang/Object",
		access: classfile.AccPublic | classfile.AccSuper,
	}
}

func (b *Builder) Super(name string) *Builder                  { b.super = name; return b }
func (b *Builder) Access(flags classfile.AccessFlags) *Builder { b.access = flags; return b }
func (b *Builder) Interface(name string) *Builder {
	b.interfaces = append(b.interfaces, name)
	return b
}
func (b *Builder) Signature(sig string) *Builder { b.signature = sig; return b }
func (b *Builder) Field(f Field) *Builder        { b.fields = append(b.fields, f); return b }
func (b *Builder) Method(m Method) *Builder      { b.methods = append(b.methods, m); return b }

// Bytes encodes the class file. It panics on element values it cannot
// encode, which is a bug in the calling test.
func (b *Builder) Bytes() []byte {
	b.pool.Reset()
	b.count = 1
	b.index = map[string]uint16{}

	var body bytes.Buffer
	u2(&body, uint16(b.access))
	u2(&body, b.class(b.name))
	if b.super == "" {
		u2(&body, 0)
	} else {
		u2(&body, b.class(b.super))
	}
	u2(&body, uint16(len(b.interfaces)))
	for _, iface := range b.interfaces {
		u2(&body, b.class(iface))
	}

	u2(&body, uint16(len(b.fields)))
	for _, f := range b.fields {
		b.writeField(&body, f)
	}

	u2(&body, uint16(len(b.methods)))
	for _, m := range b.methods {
		u2(&body, uint16(m.Access))
		u2(&body, b.utf8(m.Name))
		u2(&body, b.utf8(m.Descriptor))
		u2(&body, 0)
	}
	if b.signature == "" {
		u2(&body, 0)
	} else {
		var info bytes.Buffer
		u2(&info, b.utf8(b.signature))
		u2(&body, 1)
		body.Write(b.attribute("Signature", info.Bytes()))
	}

	var out bytes.Buffer
	u4(&out, classfile.Magic)
	u2(&out, 0)
	u2(&out, 61)
	u2(&out, b.count)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) writeField(w *bytes.Buffer, f Field) {
	u2(w, uint16(f.Access))
	u2(w, b.utf8(f.Name))
	u2(w, b.utf8(f.Descriptor))

	var attrs [][]byte
	if f.Constant != nil {
		var info bytes.Buffer
		u2(&info, b.constant(f.Constant))
		attrs = append(attrs, b.attribute("ConstantValue", info.Bytes()))
	}
	if f.Signature != "" {
		var info bytes.Buffer
		u2(&info, b.utf8(f.Signature))
		attrs = append(attrs, b.attribute("Signature", info.Bytes()))
	}
	if f.Synthetic {
		attrs = append(attrs, b.attribute("Synthetic", nil))
	}
	if f.Deprecated {
		attrs = append(attrs, b.attribute("Deprecated", nil))
	}
	if len(f.Annotations) > 0 {
		attrs = append(attrs, b.attribute("RuntimeVisibleAnnotations", b.annotations(f.Annotations)))
	}
	if len(f.InvisibleAnnotations) > 0 {
		attrs = append(attrs, b.attribute("RuntimeInvisibleAnnotations", b.annotations(f.InvisibleAnnotations)))
	}

	u2(w, uint16(len(attrs)))
	for _, a := range attrs {
		w.Write(a)
	}
}

func (b *Builder) attribute(name string, info []byte) []byte {
	var w bytes.Buffer
	u2(&w, b.utf8(name))
	u4(&w, uint32(len(info)))
	w.Write(info)
	return w.Bytes()
}

func (b *Builder) annotations(anns []Annotation) []byte {
	var w bytes.Buffer
	u2(&w, uint16(len(anns)))
	for _, a := range anns {
		b.writeAnnotation(&w, a)
	}
	return w.Bytes()
}

func (b *Builder) writeAnnotation(w *bytes.Buffer, a Annotation) {
	u2(w, b.utf8(a.Descriptor))
	u2(w, uint16(len(a.Elements)))
	for _, e := range a.Elements {
		u2(w, b.utf8(e.Name))
		b.writeElementValue(w, e.Value)
	}
}

func (b *Builder) writeElementValue(w *bytes.Buffer, v any) {
	tagged := func(tag byte, index uint16) {
		w.WriteByte(tag)
		u2(w, index)
	}
	switch v := v.(type) {
	case bool:
		n := int32(0)
		if v {
			n = 1
		}
		tagged('Z', b.constant(n))
	case int8:
		tagged('B', b.constant(int32(v)))
	case uint16:
		tagged('C', b.constant(int32(v)))
	case int16:
		tagged('S', b.constant(int32(v)))
	case int32:
		tagged('I', b.constant(v))
	case int64:
		tagged('J', b.constant(v))
	case float32:
		tagged('F', b.constant(v))
	case float64:
		tagged('D', b.constant(v))
	case string:
		tagged('s', b.utf8(v))
	case Class:
		tagged('c', b.utf8(string(v)))
	case Enum:
		w.WriteByte('e')
		u2(w, b.utf8(v.Descriptor))
		u2(w, b.utf8(v.Name))
	case Annotation:
		w.WriteByte('@')
		b.writeAnnotation(w, v)
	case []any:
		w.WriteByte('[')
		u2(w, uint16(len(v)))
		for _, elem := range v {
			b.writeElementValue(w, elem)
		}
	default:
		panic(fmt.Sprintf("classfiletest: unsupported element value %T", v))
	}
}

// intern appends a constant pool entry once per key and returns its index.
func (b *Builder) intern(key string, slots uint16, write func(w *bytes.Buffer)) uint16 {
	if idx, ok := b.index[key]; ok {
		return idx
	}
	idx := b.count
	write(&b.pool)
	b.count += slots
	b.index[key] = idx
	return idx
}

func (b *Builder) utf8(s string) uint16 {
	return b.intern("utf8:"+s, 1, func(w *bytes.Buffer) {
		w.WriteByte(byte(classfile.ConstantUtf8))
		u2(w, uint16(len(s)))
		w.WriteString(s)
	})
}

func (b *Builder) class(name string) uint16 {
	nameIndex := b.utf8(name)
	return b.intern("class:"+name, 1, func(w *bytes.Buffer) {
		w.WriteByte(byte(classfile.ConstantClass))
		u2(w, nameIndex)
	})
}

func (b *Builder) constant(v any) uint16 {
	switch v := v.(type) {
	case int32:
		return b.intern(fmt.Sprintf("int:%d", v), 1, func(w *bytes.Buffer) {
			w.WriteByte(byte(classfile.ConstantInteger))
			u4(w, uint32(v))
		})
	case float32:
		return b.intern(fmt.Sprintf("float:%x", math.Float32bits(v)), 1, func(w *bytes.Buffer) {
			w.WriteByte(byte(classfile.ConstantFloat))
			u4(w, math.Float32bits(v))
		})
	case int64:
		return b.intern(fmt.Sprintf("long:%d", v), 2, func(w *bytes.Buffer) {
			w.WriteByte(byte(classfile.ConstantLong))
			u8(w, uint64(v))
		})
	case float64:
		return b.intern(fmt.Sprintf("double:%x", math.Float64bits(v)), 2, func(w *bytes.Buffer) {
			w.WriteByte(byte(classfile.ConstantDouble))
			u8(w, math.Float64bits(v))
		})
	case string:
		s := b.utf8(v)
		return b.intern("string:"+v, 1, func(w *bytes.Buffer) {
			w.WriteByte(byte(classfile.ConstantString))
			u2(w, s)
		})
	}
	panic(fmt.Sprintf("classfiletest: unsupported constant %T", v))
}

func u2(w *bytes.Buffer, v uint16) { _ = binary.Write(w, binary.BigEndian, v) }
func u4(w *bytes.Buffer, v uint32) { _ = binary.Write(w, binary.BigEndian, v) }
func u8(w *bytes.Buffer, v uint64) { _ = binary.Write(w, binary.BigEndian, v) }
