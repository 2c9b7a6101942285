package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jreflect/java"
	"github.com/dhamidi/jreflect/java/reflect"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *reflect.Class) error
}

// NewEncoder returns the encoder for the named format, "line" or "json".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected json or line)", name)
}

func fieldModifiers(f reflect.Field) []string {
	var mods []string
	if f.IsStatic() {
		mods = append(mods, "static")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.IsVolatile() {
		mods = append(mods, "volatile")
	}
	if f.IsTransient() {
		mods = append(mods, "transient")
	}
	if f.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}

// elementTypes resolves every type argument of a parameterized field. An
// argument without a concrete element type is reported as !ok.
func elementTypes(f reflect.Field) []elementType {
	p, ok := f.GenericType().(*java.ParameterizedType)
	if !ok {
		return nil
	}
	result := make([]elementType, len(p.Args))
	for i := range p.Args {
		result[i].Type, result[i].ok = f.ElementType(i)
	}
	return result
}

type elementType struct {
	Type java.Type
	ok   bool
}
