package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jreflect/java/reflect"
)

type JSONEncoder struct {
	w     io.Writer
	class *reflect.Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *reflect.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name           string      `json:"name"`
	Package        string      `json:"package"`
	SuperClass     string      `json:"superClass,omitempty"`
	Interfaces     []string    `json:"interfaces,omitempty"`
	TypeParameters []string    `json:"typeParameters,omitempty"`
	Kind           string      `json:"kind"`
	Modifiers      string      `json:"modifiers,omitempty"`
	Fields         []jsonField `json:"fields"`
}

type jsonField struct {
	Name         string      `json:"name"`
	Type         jsonType    `json:"type"`
	GenericType  string      `json:"genericType"`
	Visibility   string      `json:"visibility"`
	Modifiers    []string    `json:"modifiers,omitempty"`
	ElementTypes []*jsonType `json:"elementTypes,omitempty"`
	Annotations  []string    `json:"annotations,omitempty"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	kind := "class"
	if c.IsInterface() {
		kind = "interface"
	}
	return jsonClass{
		Name:           c.Name(),
		Package:        c.Package(),
		SuperClass:     c.SuperClass(),
		Interfaces:     c.Interfaces(),
		TypeParameters: c.TypeParameters(),
		Kind:           kind,
		Modifiers:      c.Modifiers().String(),
		Fields:         e.buildFields(),
	}
}

func (e *JSONEncoder) buildFields() []jsonField {
	fields := e.class.DeclaredFields()
	result := make([]jsonField, len(fields))
	for i, f := range fields {
		t := f.Type()
		result[i] = jsonField{
			Name:        f.Name(),
			Type:        jsonType{Name: t.Name, ArrayDepth: t.ArrayDepth},
			GenericType: f.GenericType().String(),
			Visibility:  string(f.Modifiers().Visibility()),
			Modifiers:   fieldModifiers(f),
		}
		for _, et := range elementTypes(f) {
			var jt *jsonType
			if et.ok {
				jt = &jsonType{Name: et.Type.Name, ArrayDepth: et.Type.ArrayDepth}
			}
			result[i].ElementTypes = append(result[i].ElementTypes, jt)
		}
		for _, a := range f.DeclaredAnnotations() {
			result[i].Annotations = append(result[i].Annotations, a.String())
		}
	}
	return result
}
