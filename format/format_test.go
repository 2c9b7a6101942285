package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/jreflect/java/reflect"
)

func beanClass(t *testing.T) *reflect.Class {
	t.Helper()
	r := reflect.NewRegistry()
	c, err := r.Define(reflect.ClassSpec{
		Name:           "com.example.Bean",
		Modifiers:      []string{"public", "final"},
		TypeParameters: []string{"T"},
		Fields: []reflect.FieldSpec{
			{Name: "id", Type: "long", Modifiers: []string{"private", "volatile"}},
			{Name: "lookup", Type: "java.util.Map<T, String>", Modifiers: []string{"public"}, Annotations: []reflect.AnnotationSpec{
				{Type: "com.example.Column", Values: reflect.Elements{{Name: "name", Value: "LOOKUP"}}},
			}},
			{Name: "MAX", Type: "int", Modifiers: []string{"static", "final"}, Value: 3},
		},
	})
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	return c
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(beanClass(t)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := strings.Join([]string{
		"class\tcom.example.Bean\tpublic,final",
		"field\tid\tlong\tlong\tprivate\tvolatile\t-\t-",
		"field\tlookup\tjava.util.Map\tjava.util.Map<T, java.lang.String>\tpublic\t-\t?,java.lang.String\t@com.example.Column(name=\"LOOKUP\")",
		"field\tMAX\tint\tint\tpackage\tstatic,final\t-\t-",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(beanClass(t)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got jsonClass
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "com.example.Bean" || got.Kind != "class" || got.Modifiers != "public final" {
		t.Errorf("unexpected class header: %+v", got)
	}
	if len(got.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(got.Fields))
	}

	lookup := got.Fields[1]
	if lookup.GenericType != "java.util.Map<T, java.lang.String>" {
		t.Errorf("genericType = %q", lookup.GenericType)
	}
	if len(lookup.ElementTypes) != 2 || lookup.ElementTypes[0] != nil || lookup.ElementTypes[1].Name != "java.lang.String" {
		t.Errorf("elementTypes = %+v", lookup.ElementTypes)
	}
	if len(lookup.Annotations) != 1 {
		t.Errorf("annotations = %v", lookup.Annotations)
	}
	if got.Fields[0].Visibility != "private" {
		t.Errorf("visibility = %q", got.Fields[0].Visibility)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"line", "json"} {
		if _, err := NewEncoder(name, &bytes.Buffer{}); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := NewEncoder("xml", &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
