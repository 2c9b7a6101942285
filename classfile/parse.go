package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"
)

// reader latches the first error; every read after it returns zero values.
type reader struct {
	r   io.Reader
	err error
}

// preallocLimit bounds the buffer allocated up front for a length read
// from the input. Longer reads grow with the bytes actually present.
const preallocLimit = 64 << 10

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n <= preallocLimit {
		buf := make([]byte, n)
		_, r.err = io.ReadFull(r.r, buf)
		return buf
	}
	buf, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	if err == nil && len(buf) < n {
		err = io.ErrUnexpectedEOF
	}
	r.err = err
	return buf
}

func (r *reader) readU1() uint8 {
	if b := r.readBytes(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) readU2() uint16 {
	if b := r.readBytes(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}
	return 0
}

func (r *reader) readU4() uint32 {
	if b := r.readBytes(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (r *reader) readU8() uint64 {
	return uint64(r.readU4())<<32 | uint64(r.readU4())
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}

	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if count == 0 {
		return nil, fmt.Errorf("invalid constant pool count: 0")
	}
	cf.ConstantPool = make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		if wide {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()
	cf.Interfaces = make([]uint16, r.readU2())
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	cf.Fields = make([]FieldInfo, r.readU2())
	for i := range cf.Fields {
		flags, name, desc := AccessFlags(r.readU2()), r.readU2(), r.readU2()
		attrs, err := readAttributes(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}
	}

	cf.Methods = make([]MethodInfo, r.readU2())
	for i := range cf.Methods {
		flags, name, desc := AccessFlags(r.readU2()), r.readU2(), r.readU2()
		attrs, err := readAttributes(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}
	}

	attrs, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	cf.Attributes = attrs

	return cf, nil
}

// readConstantPoolEntry reports wide=true for entries that occupy two
// pool slots (long and double).
func readConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tag := ConstantTag(r.readU1())
	switch tag {
	case ConstantUtf8:
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(int(r.readU2())))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		entry, wide = &ConstantLongInfo{Value: int64(r.readU8())}, true
	case ConstantDouble:
		entry, wide = &ConstantDoubleInfo{Value: math.Float64frombits(r.readU8())}, true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
		entry = &ConstantRefInfo{Kind: tag, ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{ReferenceKind: r.readU1(), ReferenceIndex: r.readU2()}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic, ConstantInvokeDynamic:
		entry = &ConstantDynamicInfo{Kind: tag, BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantModule, ConstantPackage:
		entry = &ConstantNamedInfo{Kind: tag, NameIndex: r.readU2()}
	default:
		if r.err != nil {
			return nil, false, r.err
		}
		return nil, false, fmt.Errorf("unknown constant pool tag: %d", tag)
	}
	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

func readAttributes(r *reader, cp ConstantPool) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		nameIndex := r.readU2()
		info := r.readBytes(int(r.readU4()))
		if r.err != nil {
			return nil, r.err
		}
		attrs[i] = AttributeInfo{NameIndex: nameIndex, Info: info}
		parsed, err := parseAttribute(cp.GetUtf8(nameIndex), info)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", cp.GetUtf8(nameIndex), err)
		}
		attrs[i].Parsed = parsed
	}
	return attrs, nil
}

func parseAttribute(name string, info []byte) (any, error) {
	r := &reader{r: bytes.NewReader(info)}
	var parsed any
	switch name {
	case "ConstantValue":
		parsed = &ConstantValueAttribute{ConstantValueIndex: r.readU2()}
	case "Signature":
		parsed = &SignatureAttribute{SignatureIndex: r.readU2()}
	case "Synthetic":
		parsed = &SyntheticAttribute{}
	case "Deprecated":
		parsed = &DeprecatedAttribute{}
	case "RuntimeVisibleAnnotations":
		parsed = &RuntimeVisibleAnnotationsAttribute{Annotations: readAnnotations(r)}
	case "RuntimeInvisibleAnnotations":
		parsed = &RuntimeInvisibleAnnotationsAttribute{Annotations: readAnnotations(r)}
	default:
		return nil, nil
	}
	return parsed, r.err
}

func readAnnotations(r *reader) []Annotation {
	anns := make([]Annotation, r.readU2())
	for i := range anns {
		anns[i] = readAnnotation(r)
		if r.err != nil {
			return nil
		}
	}
	return anns
}

func readAnnotation(r *reader) Annotation {
	ann := Annotation{TypeIndex: r.readU2()}
	ann.ElementValuePairs = make([]ElementValuePair, r.readU2())
	for i := range ann.ElementValuePairs {
		if r.err != nil {
			break
		}
		ann.ElementValuePairs[i] = ElementValuePair{
			ElementNameIndex: r.readU2(),
			Value:            readElementValue(r),
		}
	}
	return ann
}

func readElementValue(r *reader) ElementValue {
	ev := ElementValue{Tag: r.readU1()}
	switch ev.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		ev.Value = r.readU2()
	case 'e':
		ev.Value = EnumConstValue{TypeNameIndex: r.readU2(), ConstNameIndex: r.readU2()}
	case '@':
		ev.Value = readAnnotation(r)
	case '[':
		values := make([]ElementValue, r.readU2())
		for i := range values {
			if r.err != nil {
				break
			}
			values[i] = readElementValue(r)
		}
		ev.Value = ArrayValue{Values: values}
	default:
		if r.err == nil {
			r.err = fmt.Errorf("unknown element value tag %q", ev.Tag)
		}
	}
	return ev
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8. Supplementary
// characters arrive as two encoded surrogates, so decoding goes through
// UTF-16 code units.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
