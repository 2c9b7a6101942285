package classfile_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/jreflect/classfile"
	"github.com/dhamidi/jreflect/classfile/classfiletest"
)

func testClass() []byte {
	return classfiletest.New("testdata/TestClass").
		Interface("java/lang/Runnable").
		Field(classfiletest.Field{
			Access:     classfile.AccPublic | classfile.AccStatic | classfile.AccFinal,
			Name:       "CONSTANT_VALUE",
			Descriptor: "I",
			Constant:   int32(42),
		}).
		Field(classfiletest.Field{
			Access:     classfile.AccPrivate,
			Name:       "name",
			Descriptor: "Ljava/lang/String;",
			Annotations: []classfiletest.Annotation{{
				Descriptor: "Ljavax/inject/Named;",
				Elements:   []classfiletest.Element{{Name: "value", Value: "user"}},
			}},
			InvisibleAnnotations: []classfiletest.Annotation{{Descriptor: "Ljavax/annotation/Nonnull;"}},
		}).
		Field(classfiletest.Field{
			Access:     classfile.AccProtected,
			Name:       "items",
			Descriptor: "Ljava/util/List;",
			Signature:  "Ljava/util/List<Ljava/lang/String;>;",
		}).
		Field(classfiletest.Field{
			Access:     classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal,
			Name:       "BIG",
			Descriptor: "J",
			Constant:   int64(1) << 40,
		}).
		Field(classfiletest.Field{
			Access:     classfile.AccFinal,
			Name:       "this$0",
			Descriptor: "Ltestdata/Outer;",
			Synthetic:  true,
		}).
		Method(classfiletest.Method{Access: classfile.AccPublic, Name: "run", Descriptor: "()V"}).
		Bytes()
}

func TestParseClassFile(t *testing.T) {
	cf, err := classfile.Parse(bytes.NewReader(testClass()))
	if err != nil {
		t.Fatalf("Failed to parse class file: %v", err)
	}

	t.Run("class name", func(t *testing.T) {
		expected := "testdata/TestClass"
		if got := cf.ClassName(); got != expected {
			t.Errorf("ClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("super class", func(t *testing.T) {
		expected := "java/lang/Object"
		if got := cf.SuperClassName(); got != expected {
			t.Errorf("SuperClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("interfaces", func(t *testing.T) {
		interfaces := cf.InterfaceNames()
		if len(interfaces) != 1 {
			t.Fatalf("Expected 1 interface, got %d", len(interfaces))
		}
		if interfaces[0] != "java/lang/Runnable" {
			t.Errorf("Interface[0] = %q, want %q", interfaces[0], "java/lang/Runnable")
		}
	})

	t.Run("access flags", func(t *testing.T) {
		if !cf.AccessFlags.IsPublic() {
			t.Error("Expected class to be public")
		}
		if cf.IsInterface() {
			t.Error("Expected IsInterface() to be false")
		}
	})

	t.Run("fields", func(t *testing.T) {
		if len(cf.Fields) != 5 {
			t.Fatalf("Expected 5 fields, got %d", len(cf.Fields))
		}

		constantValue := cf.GetField("CONSTANT_VALUE")
		if constantValue == nil {
			t.Fatal("Expected to find CONSTANT_VALUE field")
		}
		if !constantValue.IsPublic() || !constantValue.IsStatic() || !constantValue.IsFinal() {
			t.Error("CONSTANT_VALUE should be public static final")
		}
		if got, ok := constantValue.ConstantValue(cf.ConstantPool); !ok || got != int32(42) {
			t.Errorf("CONSTANT_VALUE constant = %v, %v, want 42", got, ok)
		}

		nameField := cf.GetField("name")
		if nameField == nil {
			t.Fatal("Expected to find name field")
		}
		if !nameField.IsPrivate() {
			t.Error("name field should be private")
		}
		if nameField.Descriptor(cf.ConstantPool) != "Ljava/lang/String;" {
			t.Errorf("name descriptor = %q, want %q", nameField.Descriptor(cf.ConstantPool), "Ljava/lang/String;")
		}
		if nameField.Signature(cf.ConstantPool) != "" {
			t.Errorf("name signature = %q, want empty", nameField.Signature(cf.ConstantPool))
		}

		items := cf.GetField("items")
		if items == nil {
			t.Fatal("Expected to find items field")
		}
		if !items.IsProtected() {
			t.Error("items field should be protected")
		}
		if got := items.Signature(cf.ConstantPool); got != "Ljava/util/List<Ljava/lang/String;>;" {
			t.Errorf("items signature = %q", got)
		}
	})

	t.Run("long constants take two slots", func(t *testing.T) {
		big := cf.GetField("BIG")
		if big == nil {
			t.Fatal("Expected to find BIG field")
		}
		if got, ok := big.ConstantValue(cf.ConstantPool); !ok || got != int64(1)<<40 {
			t.Errorf("BIG constant = %v, %v", got, ok)
		}
	})

	t.Run("synthetic attribute", func(t *testing.T) {
		outer := cf.GetField("this$0")
		if outer == nil {
			t.Fatal("Expected to find this$0 field")
		}
		if !outer.IsSynthetic(cf.ConstantPool) {
			t.Error("this$0 should be synthetic")
		}
		if cf.GetField("name").IsSynthetic(cf.ConstantPool) {
			t.Error("name should not be synthetic")
		}
	})

	t.Run("annotations", func(t *testing.T) {
		nameField := cf.GetField("name")
		anns := nameField.VisibleAnnotations(cf.ConstantPool)
		if len(anns) != 1 {
			t.Fatalf("Expected 1 visible annotation, got %d", len(anns))
		}
		if got := cf.ConstantPool.GetUtf8(anns[0].TypeIndex); got != "Ljavax/inject/Named;" {
			t.Errorf("annotation type = %q", got)
		}
		pair := anns[0].ElementValuePairs[0]
		if cf.ConstantPool.GetUtf8(pair.ElementNameIndex) != "value" || pair.Value.Tag != 's' {
			t.Errorf("unexpected element pair %+v", pair)
		}
		if got := cf.ConstantPool.GetUtf8(pair.Value.Value.(uint16)); got != "user" {
			t.Errorf("element value = %q, want %q", got, "user")
		}

		attr := nameField.GetAttribute(cf.ConstantPool, "RuntimeInvisibleAnnotations")
		if attr == nil || attr.AsRuntimeInvisibleAnnotations() == nil {
			t.Fatal("Expected RuntimeInvisibleAnnotations attribute")
		}
	})

	t.Run("methods", func(t *testing.T) {
		if len(cf.Methods) != 1 {
			t.Fatalf("Expected 1 method, got %d", len(cf.Methods))
		}
		if got := cf.Methods[0].Name(cf.ConstantPool); got != "run" {
			t.Errorf("method name = %q, want %q", got, "run")
		}
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TestClass.class")
	if err := os.WriteFile(path, testClass(), 0o644); err != nil {
		t.Fatalf("write class file: %v", err)
	}
	cf, err := classfile.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cf.ClassName() != "testdata/TestClass" {
		t.Errorf("ClassName() = %q", cf.ClassName())
	}
}

func TestParseErrors(t *testing.T) {
	valid := testClass()
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte{0xCA, 0xFE, 0xBA, 0xBF, 0, 0, 0, 61}},
		{"truncated", valid[:len(valid)/2]},
		{"unknown constant tag", []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 61, 0, 2, 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := classfile.Parse(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseOversizedAttribute(t *testing.T) {
	valid := classfiletest.New("com/example/Empty").Bytes()
	// Replace the empty class attribute table with one attribute that
	// claims 4 GiB of data but has none.
	data := append([]byte(nil), valid[:len(valid)-2]...)
	data = append(data, 0, 1, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF)

	_, err := classfile.Parse(bytes.NewReader(data))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"I", "int"},
		{"Z", "boolean"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[[J", "long[][]"},
		{"[Ljava/util/Map$Entry;", "java.util.Map$Entry[]"},
	}
	for _, tt := range tests {
		ft := classfile.ParseFieldDescriptor(tt.desc)
		if ft == nil {
			t.Errorf("ParseFieldDescriptor(%q) = nil", tt.desc)
			continue
		}
		if got := ft.String(); got != tt.want {
			t.Errorf("ParseFieldDescriptor(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}

	for _, bad := range []string{"", "[", "X", "L;", "Ljava/lang/String", "II"} {
		if ft := classfile.ParseFieldDescriptor(bad); ft != nil {
			t.Errorf("ParseFieldDescriptor(%q) = %v, want nil", bad, ft)
		}
	}
}
