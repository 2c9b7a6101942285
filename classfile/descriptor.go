package classfile

import "strings"

// FieldType is a parsed field descriptor. Exactly one of BaseType and
// ClassName is set.
type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseFieldDescriptor returns nil when desc is not a complete field
// descriptor.
func ParseFieldDescriptor(desc string) *FieldType {
	ft := &FieldType{}
	i := 0
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil
	}
	if name, ok := baseTypes[desc[i]]; ok {
		if i+1 != len(desc) {
			return nil
		}
		ft.BaseType = name
		return ft
	}
	if desc[i] != 'L' || desc[len(desc)-1] != ';' || len(desc)-i < 3 {
		return nil
	}
	ft.ClassName = desc[i+1 : len(desc)-1]
	if strings.ContainsAny(ft.ClassName, ";[<") {
		return nil
	}
	return ft
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
