package reflect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jreflect/java"
)

func TestNewArray(t *testing.T) {
	t.Parallel()

	a := NewArray(java.Char, 3)
	assert.Equal(t, java.ArrayOf(java.Char), a.Type)
	assert.Equal(t, []Value{uint16(0), uint16(0), uint16(0)}, a.Elements)

	b := NewArray(java.String, 2)
	assert.Equal(t, []Value{nil, nil}, b.Elements)
}

func TestIsAssignable(t *testing.T) {
	t.Parallel()
	r := newFixture(t)
	_, err := r.Define(ClassSpec{Name: "com.example.Impl", Interfaces: []string{"com.example.Api"}})
	require.NoError(t, err)

	tests := []struct {
		from, to java.Type
		want     bool
	}{
		{java.TypeOf("com.example.sub.Child"), java.TypeOf("com.example.Base"), true},
		{java.TypeOf("com.example.Base"), java.TypeOf("com.example.Bean"), false},
		{java.TypeOf("com.example.Impl"), java.TypeOf("com.example.Api"), true},
		{java.TypeOf("com.example.Unknown"), java.Object, true},
		{java.TypeOf("com.example.Unknown"), java.TypeOf("com.example.Base"), false},
		{java.String, java.TypeOf("java.lang.CharSequence"), true},
		{java.TypeOf("java.lang.Integer"), java.TypeOf("java.lang.Number"), true},
		{java.TypeOf("java.lang.Boolean"), java.TypeOf("java.lang.Number"), false},
		{java.ArrayOf(java.TypeOf("com.example.sub.Child")), java.ArrayOf(java.TypeOf("com.example.Bean")), true},
		{java.ArrayOf(java.Int), java.ArrayOf(java.Long), false},
		{java.ArrayOf(java.Int), java.TypeOf("java.lang.Cloneable"), true},
		{java.ArrayOf(java.Int), java.Object, true},
		{java.ArrayOf(java.String), java.String, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.isAssignable(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAssignBoxing(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	tests := []struct {
		to    java.Type
		value Value
		ok    bool
	}{
		{java.TypeOf("java.lang.Integer"), int32(1), true},
		{java.TypeOf("java.lang.Integer"), int64(1), false},
		{java.TypeOf("java.lang.Number"), float32(1), true},
		{java.TypeOf("java.lang.Number"), true, false},
		{java.TypeOf("java.lang.Comparable"), uint16('c'), true},
		{java.TypeOf("java.io.Serializable"), "s", true},
		{java.Int, int16(2), true},
		{java.Short, int32(2), false},
		{java.Char, int8(1), false},
		{java.Double, int64(1), true},
		{java.Boolean, int32(1), false},
	}
	for _, tt := range tests {
		_, err := r.assign(tt.to, tt.value)
		assert.Equal(t, tt.ok, err == nil, "%s = %#v: %v", tt.to, tt.value, err)
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ   java.Type
		value any
		want  Value
	}{
		{java.Byte, int32(-128), int8(-128)},
		{java.Char, "x", uint16('x')},
		{java.Char, int32(65), uint16(65)},
		{java.Long, 5, int64(5)},
		{java.Float, 1.5, float32(1.5)},
		{java.Double, float32(0.25), float64(0.25)},
		{java.Double, 2, float64(2)},
		{java.Boolean, true, true},
		{java.Boolean, int32(0), false},
		{java.String, "s", "s"},
	}
	for _, tt := range tests {
		got, err := literal(tt.typ, tt.value)
		require.NoError(t, err, "%s %v", tt.typ, tt.value)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []struct {
		typ   java.Type
		value any
	}{
		{java.Byte, int32(128)},
		{java.Char, int32(-1)},
		{java.Int, 1.5},
		{java.Boolean, "yes"},
		{java.Char, "xy"},
		{java.TypeOf("java.util.List"), "x"},
	} {
		_, err := literal(bad.typ, bad.value)
		assert.Error(t, err, "%s %v", bad.typ, bad.value)
	}
}

func TestAccessError(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")

	err := error(&AccessError{Kind: ErrIllegalAccess, Field: "x", Msg: "illegal access to field: x", Err: cause})
	assert.Equal(t, "illegal access: illegal access to field: x: boom", err.Error())
	assert.ErrorIs(t, err, ErrIllegalAccess)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrArgumentMismatch)

	bare := &AccessError{Kind: ErrArgumentMismatch}
	assert.Equal(t, "argument mismatch", bare.Error())
	assert.ErrorIs(t, bare, ErrArgumentMismatch)
}
