package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jreflect/java/reflect"
)

// LineEncoder writes one tab-separated line for the class and one per
// declared field:
//
//	field <name> <type> <generic type> <visibility> <modifiers> <element types> <annotations>
//
// Empty columns are written as "-", and element types that do not
// resolve as "?".
type LineEncoder struct {
	w     io.Writer
	class *reflect.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *reflect.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	kind := "class"
	if c.IsInterface() {
		kind = "interface"
	}
	fmt.Fprintf(&sb, "%s\t%s\t%s\n", kind, c.Name(), column(strings.Fields(c.Modifiers().String()), ","))

	for _, f := range c.DeclaredFields() {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.Name(),
			f.Type().String(),
			f.GenericType().String(),
			f.Modifiers().Visibility(),
			column(fieldModifiers(f), ","),
			column(elementTypeNames(f), ","),
			column(annotationNames(f), " "),
		)
	}

	return []byte(sb.String()), nil
}

func elementTypeNames(f reflect.Field) []string {
	var names []string
	for _, et := range elementTypes(f) {
		if et.ok {
			names = append(names, et.Type.String())
		} else {
			names = append(names, "?")
		}
	}
	return names
}

func annotationNames(f reflect.Field) []string {
	var names []string
	for _, a := range f.DeclaredAnnotations() {
		names = append(names, a.String())
	}
	return names
}

func column(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}
