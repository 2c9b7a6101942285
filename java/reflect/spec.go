package reflect

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jreflect/java"
)

// ClassSpec declares a class without a class file. Types are written in
// Java source syntax and may refer to TypeParameters.
type ClassSpec struct {
	Name           string      `yaml:"name"`
	Super          string      `yaml:"super,omitempty"`
	Interfaces     []string    `yaml:"interfaces,omitempty"`
	Modifiers      []string    `yaml:"modifiers,omitempty"`
	TypeParameters []string    `yaml:"typeParameters,omitempty"`
	Fields         []FieldSpec `yaml:"fields,omitempty"`
}

// FieldSpec declares one field. Value is the initial value of a static
// field, in the same form as a ConstantValue attribute.
type FieldSpec struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Modifiers   []string         `yaml:"modifiers,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`
	Value       any              `yaml:"value,omitempty"`
}

type AnnotationSpec struct {
	Type   string   `yaml:"type"`
	Values Elements `yaml:"values,omitempty"`
}

// Elements keeps annotation elements in the order they were written.
type Elements []java.ElementValuePair

func (e *Elements) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: annotation values must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var raw any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return err
		}
		*e = append(*e, java.ElementValuePair{Name: node.Content[i].Value, Value: yamlElementValue(raw)})
	}
	return nil
}

// yamlElementValue narrows YAML integers to int32, the type of an int
// annotation element.
func yamlElementValue(v any) any {
	switch v := v.(type) {
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v)
		}
		return int64(v)
	case []any:
		values := make([]any, len(v))
		for i, x := range v {
			values[i] = yamlElementValue(x)
		}
		return values
	}
	return v
}

// Define registers a class described by spec. A missing superclass
// defaults to java.lang.Object for classes. Fields of an interface are
// implicitly public, static and final.
func (r *Registry) Define(spec ClassSpec) (*Class, error) {
	if spec.Name == "" {
		return nil, errors.New("class name is required")
	}
	mods, err := java.ParseModifiers(spec.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", spec.Name, err)
	}
	if extra := mods &^ classModifiers; extra != 0 {
		return nil, fmt.Errorf("class %s: modifiers %q do not apply to classes", spec.Name, extra)
	}

	c := &Class{
		name:       spec.Name,
		super:      spec.Super,
		interfaces: append([]string(nil), spec.Interfaces...),
		modifiers:  mods,
		typeParams: append([]string(nil), spec.TypeParameters...),
	}
	if c.super == "" && !c.IsInterface() {
		c.super = java.Object.Name
	}

	fields := make([]*fieldHandle, 0, len(spec.Fields))
	for _, fs := range spec.Fields {
		h, err := fieldFromSpec(fs, c)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", spec.Name, fs.Name, err)
		}
		fields = append(fields, h)
	}
	if err := r.register(c, fields); err != nil {
		return nil, err
	}
	return c, nil
}

func fieldFromSpec(fs FieldSpec, c *Class) (*fieldHandle, error) {
	if fs.Name == "" {
		return nil, errors.New("field name is required")
	}
	mods, err := java.ParseModifiers(fs.Modifiers)
	if err != nil {
		return nil, err
	}
	if mods&(java.Interface|java.Abstract) != 0 {
		return nil, fmt.Errorf("modifiers %v do not apply to fields", fs.Modifiers)
	}
	if c.IsInterface() {
		if extra := mods & (java.Private | java.Protected | java.Volatile | java.Transient); extra != 0 {
			return nil, fmt.Errorf("modifiers %q do not apply to interface fields", extra)
		}
		mods |= java.Public | java.Static | java.Final
	}
	if err := mods.Validate(); err != nil {
		return nil, err
	}

	generic, err := java.ParseType(fs.Type, c.typeParams...)
	if err != nil {
		return nil, err
	}
	typ := java.Erasure(generic)
	if typ.IsVoid() {
		return nil, errors.New("a field cannot be void")
	}

	h := &fieldHandle{
		name:      fs.Name,
		typ:       typ,
		generic:   generic,
		modifiers: mods,
	}
	for _, as := range fs.Annotations {
		t, err := java.ParseType(as.Type)
		if err != nil {
			return nil, err
		}
		at, ok := t.(java.Type)
		if !ok || at.IsPrimitive() || at.IsArray() {
			return nil, fmt.Errorf("%s is not an annotation type", as.Type)
		}
		h.annotations = append(h.annotations, java.Annotation{Type: at, Elements: as.Values})
	}

	switch {
	case fs.Value != nil && !mods.IsStatic():
		return nil, errors.New("only static fields take an initial value")
	case fs.Value != nil:
		if h.static, err = literal(typ, fs.Value); err != nil {
			return nil, err
		}
	case mods.IsStatic():
		h.static = zeroValue(typ)
	}
	return h, nil
}

type definitions struct {
	Classes []ClassSpec `yaml:"classes"`
}

// DefineYAML registers every class of a document of the form
//
//	classes:
//	  - name: com.example.Bean
//	    fields:
//	      - name: items
//	        type: java.util.List<String>
//	        modifiers: [private]
//
// Classes defined before a failing one stay registered.
func (r *Registry) DefineYAML(rd io.Reader) ([]*Class, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)

	var doc definitions
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode class definitions: %w", err)
	}

	classes := make([]*Class, 0, len(doc.Classes))
	for _, spec := range doc.Classes {
		c, err := r.Define(spec)
		if err != nil {
			return classes, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}
