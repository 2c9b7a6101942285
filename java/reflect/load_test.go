package reflect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jreflect/classfile"
	"github.com/dhamidi/jreflect/classfile/classfiletest"
	"github.com/dhamidi/jreflect/java"
)

func configClass() []byte {
	return classfiletest.New("com/example/Config").
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/io/Serializable;").
		Interface("java/io/Serializable").
		Field(classfiletest.Field{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "MAX", Descriptor: "I", Constant: int32(42)}).
		Field(classfiletest.Field{Access: classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal, Name: "NAME", Descriptor: "Ljava/lang/String;", Constant: "cfg"}).
		Field(classfiletest.Field{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "ENABLED", Descriptor: "Z", Constant: int32(1)}).
		Field(classfiletest.Field{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "SEP", Descriptor: "C", Constant: int32(',')}).
		Field(classfiletest.Field{Access: classfile.AccPublic | classfile.AccStatic, Name: "ratio", Descriptor: "D"}).
		Field(classfiletest.Field{
			Access:     classfile.AccPrivate,
			Name:       "items",
			Descriptor: "Ljava/util/List;",
			Signature:  "Ljava/util/List<Ljava/lang/String;>;",
			Annotations: []classfiletest.Annotation{
				{Descriptor: "Lcom/example/Column;", Elements: []classfiletest.Element{{Name: "name", Value: "ITEMS"}}},
			},
			InvisibleAnnotations: []classfiletest.Annotation{{Descriptor: "Lcom/example/Hidden;"}},
		}).
		Field(classfiletest.Field{Access: classfile.AccProtected | classfile.AccTransient, Name: "cache", Descriptor: "[Ljava/lang/Object;"}).
		Field(classfiletest.Field{Access: classfile.AccFinal, Name: "this$0", Descriptor: "Lcom/example/Outer;", Synthetic: true}).
		Field(classfiletest.Field{Access: classfile.AccPublic, Name: "values", Descriptor: "Ljava/util/Map;", Signature: "Ljava/util/Map<TT;[Ljava/lang/String;>;"}).
		Bytes()
}

func TestLoad(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	c, err := r.Load(bytes.NewReader(configClass()))
	require.NoError(t, err)
	assert.Equal(t, "com.example.Config", c.Name())
	assert.Equal(t, "java.lang.Object", c.SuperClass())
	assert.Equal(t, []string{"java.io.Serializable"}, c.Interfaces())
	assert.Equal(t, []string{"T"}, c.TypeParameters())
	assert.Equal(t, java.Public, c.Modifiers())

	var names []string
	for _, f := range c.DeclaredFields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"MAX", "NAME", "ENABLED", "SEP", "ratio", "items", "cache", "this$0", "values"}, names)

	statics := map[string]Value{
		"MAX":     int32(42),
		"NAME":    "cfg",
		"ENABLED": true,
		"SEP":     uint16(','),
		"ratio":   float64(0),
	}
	for name, want := range statics {
		f := mustField(t, r, "com.example.Config", name)
		f.SetAccessible(true)
		v, err := f.Get(nil)
		require.NoError(t, err, name)
		assert.Equal(t, want, v, name)
	}

	items := mustField(t, r, "com.example.Config", "items")
	assert.True(t, items.IsPrivate())
	elem, ok := items.ElementType(0)
	require.True(t, ok)
	assert.Equal(t, java.String, elem)
	require.Len(t, items.DeclaredAnnotations(), 1)
	assert.True(t, items.IsAnnotationPresent(java.TypeOf("com.example.Column")))
	assert.False(t, items.IsAnnotationPresent(java.TypeOf("com.example.Hidden")))

	cache := mustField(t, r, "com.example.Config", "cache")
	assert.True(t, cache.IsProtected())
	assert.True(t, cache.IsTransient())
	assert.Equal(t, java.ArrayOf(java.Object), cache.Type())

	outer := mustField(t, r, "com.example.Config", "this$0")
	assert.True(t, outer.IsSynthetic())
	assert.True(t, outer.IsDefaultAccess())
	assert.True(t, outer.IsFinal())

	values := mustField(t, r, "com.example.Config", "values")
	assert.Equal(t, "java.util.Map<T, java.lang.String[]>", values.GenericType().String())
	_, ok = values.ElementType(0)
	assert.False(t, ok)
	elem, ok = values.ElementType(1)
	require.True(t, ok)
	assert.Equal(t, java.ArrayOf(java.String), elem)

	_, err = r.Load(bytes.NewReader(configClass()))
	assert.ErrorIs(t, err, ErrDuplicateClass)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Config.class")
	require.NoError(t, os.WriteFile(path, configClass(), 0o644))

	r := NewRegistry()
	c, err := r.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Config", c.Name())

	_, err = r.LoadFile(filepath.Join(t.TempDir(), "Missing.class"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not a class file")},
		{"bad signature", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Name: "x", Descriptor: "Ljava/util/List;", Signature: "Ljava/util/List<"}).
			Bytes()},
		{"constant out of range", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Access: classfile.AccStatic, Name: "b", Descriptor: "B", Constant: int32(1000)}).
			Bytes()},
		{"bad descriptor", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Name: "x", Descriptor: "Q"}).
			Bytes()},
		{"public and private", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Access: classfile.AccPublic | classfile.AccPrivate, Name: "x", Descriptor: "I"}).
			Bytes()},
		{"protected and private", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Access: classfile.AccProtected | classfile.AccPrivate, Name: "x", Descriptor: "I"}).
			Bytes()},
		{"final and volatile", classfiletest.New("com/example/Bad").
			Field(classfiletest.Field{Access: classfile.AccFinal | classfile.AccVolatile, Name: "x", Descriptor: "I"}).
			Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.Load(bytes.NewReader(tt.data))
			assert.Error(t, err)
			_, ok := r.Class("com.example.Bad")
			assert.False(t, ok)
		})
	}
}
