package reflect

import (
	"fmt"
	"math"
	"slices"

	"github.com/dhamidi/jreflect/java"
)

// Value is a field value; see the package documentation for the mapping
// from Java types.
type Value = any

// Object is an instance of a registered class. It holds one slot per
// instance field of its class and of every registered superclass.
type Object struct {
	class  *Class
	values map[int]Value
}

func (o *Object) Class() *Class {
	return o.class
}

func (o *Object) String() string {
	return fmt.Sprintf("%s@%p", o.class.name, o)
}

// Array is a Java array value. Type is the array type itself, e.g. int[].
type Array struct {
	Type     java.Type
	Elements []Value
}

// NewArray allocates an array of length zero-valued components.
func NewArray(component java.Type, length int) *Array {
	a := &Array{Type: java.ArrayOf(component), Elements: make([]Value, length)}
	for i := range a.Elements {
		a.Elements[i] = zeroValue(component)
	}
	return a
}

func zeroValue(t java.Type) Value {
	if !t.IsPrimitive() {
		return nil
	}
	switch t.Name {
	case "boolean":
		return false
	case "byte":
		return int8(0)
	case "char":
		return uint16(0)
	case "short":
		return int16(0)
	case "int":
		return int32(0)
	case "long":
		return int64(0)
	case "float":
		return float32(0)
	}
	return float64(0)
}

// primitiveOf reports the Java primitive a Go value represents.
func primitiveOf(v Value) (java.Type, bool) {
	switch v.(type) {
	case bool:
		return java.Boolean, true
	case int8:
		return java.Byte, true
	case uint16:
		return java.Char, true
	case int16:
		return java.Short, true
	case int32:
		return java.Int, true
	case int64:
		return java.Long, true
	case float32:
		return java.Float, true
	case float64:
		return java.Double, true
	}
	return java.Type{}, false
}

// widenings lists the widening primitive conversions of JLS 5.1.2.
var widenings = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

var boxes = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// stringSupertypes are the types a string value is assignable to.
var stringSupertypes = []string{
	"java.lang.String",
	"java.lang.Object",
	"java.lang.CharSequence",
	"java.lang.Comparable",
	"java.io.Serializable",
}

func widen(v Value, from, to java.Type) (Value, bool) {
	if from == to {
		return v, true
	}
	if !slices.Contains(widenings[from.Name], to.Name) {
		return nil, false
	}
	switch to.Name {
	case "short":
		return int16(asInt64(v)), true
	case "int":
		return int32(asInt64(v)), true
	case "long":
		return asInt64(v), true
	case "float":
		return float32(asFloat64(v)), true
	}
	return asFloat64(v), true
}

func asInt64(v Value) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case uint16:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func asFloat64(v Value) float64 {
	if f, ok := v.(float32); ok {
		return float64(f)
	}
	if f, ok := v.(float64); ok {
		return f
	}
	return float64(asInt64(v))
}

// assign converts v for storage in a field of type t, or explains why it
// cannot be stored there.
func (r *Registry) assign(t java.Type, v Value) (Value, error) {
	if t.IsPrimitive() {
		from, ok := primitiveOf(v)
		if !ok {
			return nil, fmt.Errorf("cannot assign %s to %s", describe(v), t)
		}
		if w, ok := widen(v, from, t); ok {
			return w, nil
		}
		return nil, fmt.Errorf("cannot convert %s to %s", from, t)
	}

	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t.ArrayDepth == 0 && slices.Contains(stringSupertypes, t.Name) {
			return v, nil
		}
	case *Object:
		if v == nil {
			return nil, nil
		}
		if r.isAssignable(v.class.Type(), t) {
			return v, nil
		}
	case *Array:
		if v == nil {
			return nil, nil
		}
		if r.isAssignable(v.Type, t) {
			return v, nil
		}
	default:
		if prim, ok := primitiveOf(v); ok && t.ArrayDepth == 0 && r.isAssignable(java.TypeOf(boxes[prim.Name]), t) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("cannot assign %s to %s", describe(v), t)
}

// isAssignable reports whether a reference of type from may be stored
// in a variable of type to (JLS 5.2 for reference types).
func (r *Registry) isAssignable(from, to java.Type) bool {
	if from == to || to == java.Object {
		return true
	}
	if from.IsArray() {
		switch {
		case to.ArrayDepth == 0:
			return to.Name == "java.lang.Cloneable" || to.Name == "java.io.Serializable"
		case from.ComponentType().IsPrimitive() || to.ComponentType().IsPrimitive():
			return false
		}
		return r.isAssignable(from.ComponentType(), to.ComponentType())
	}
	if to.IsArray() || from.IsPrimitive() || to.IsPrimitive() {
		return false
	}
	if from == java.String {
		return slices.Contains(stringSupertypes, to.Name)
	}
	if boxed := boxedSupertypes(from.Name); boxed != nil {
		return slices.Contains(boxed, to.Name)
	}
	c, ok := r.Class(from.Name)
	return ok && c.isSubtypeOf(to.Name)
}

func boxedSupertypes(name string) []string {
	for prim, box := range boxes {
		if box != name {
			continue
		}
		supers := []string{box, "java.io.Serializable", "java.lang.Comparable"}
		if prim != "boolean" && prim != "char" {
			supers = append(supers, "java.lang.Number")
		}
		return supers
	}
	return nil
}

func describe(v Value) string {
	if v == nil {
		return "null"
	}
	if t, ok := primitiveOf(v); ok {
		return t.Name + " value"
	}
	switch v := v.(type) {
	case string:
		return "java.lang.String value"
	case *Object:
		return v.class.name + " instance"
	case *Array:
		return v.Type.String() + " instance"
	}
	return fmt.Sprintf("Go value of type %T", v)
}

// literal converts a constant from a class file or a YAML definition to
// the representation of type t. Integral constants are range checked.
func literal(t java.Type, v any) (Value, error) {
	if !t.IsPrimitive() {
		if s, ok := v.(string); ok && t == java.String {
			return s, nil
		}
		return nil, fmt.Errorf("no constant form for %s", t)
	}
	if t == java.Boolean {
		switch b := v.(type) {
		case bool:
			return b, nil
		case int32:
			return b != 0, nil
		}
		return nil, fmt.Errorf("%v is not a boolean", v)
	}
	if t == java.Char {
		if s, ok := v.(string); ok && len([]rune(s)) == 1 && []rune(s)[0] <= math.MaxUint16 {
			return uint16([]rune(s)[0]), nil
		}
	}

	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case float32:
		if t == java.Float {
			return x, nil
		}
		if t == java.Double {
			return float64(x), nil
		}
		return nil, fmt.Errorf("%v is not an integer", v)
	case float64:
		if t == java.Double {
			return x, nil
		}
		if t == java.Float {
			return float32(x), nil
		}
		return nil, fmt.Errorf("%v is not an integer", v)
	default:
		return nil, fmt.Errorf("%v is not a %s constant", v, t)
	}

	limits := map[string][2]int64{
		"byte":  {math.MinInt8, math.MaxInt8},
		"char":  {0, math.MaxUint16},
		"short": {math.MinInt16, math.MaxInt16},
		"int":   {math.MinInt32, math.MaxInt32},
		"long":  {math.MinInt64, math.MaxInt64},
	}
	if lim, ok := limits[t.Name]; ok && (n < lim[0] || n > lim[1]) {
		return nil, fmt.Errorf("%d overflows %s", n, t)
	}
	switch t.Name {
	case "byte":
		return int8(n), nil
	case "char":
		return uint16(n), nil
	case "short":
		return int16(n), nil
	case "int":
		return int32(n), nil
	case "long":
		return n, nil
	case "float":
		return float32(n), nil
	}
	return float64(n), nil
}
