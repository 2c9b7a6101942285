package reflect

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dhamidi/jreflect/java"
)

// fieldHandle is the single owner of a field's metadata, its accessible
// flag and, for static fields, its value.
type fieldHandle struct {
	index       int
	class       *Class
	name        string
	typ         java.Type
	generic     java.GenericType
	modifiers   java.Modifiers
	annotations []java.Annotation

	mu         sync.Mutex
	accessible atomic.Bool
	static     Value
}

// Field provides information about, and access to, a single field of a
// class. The zero Field is not usable.
type Field struct {
	h      *fieldHandle
	caller *Class
}

// From returns an accessor that performs access checks as code in caller
// would. Accessors returned by a Class or Registry check access as code
// outside every class, which can only reach public fields.
func (f Field) From(caller *Class) Field {
	f.caller = caller
	return f
}

func (f Field) Name() string { return f.h.name }

// Type returns the declared type of the field, erased. It is not the
// runtime type of the current value.
func (f Field) Type() java.Type { return f.h.typ }

// GenericType returns the declared type with its type arguments.
func (f Field) GenericType() java.GenericType { return f.h.generic }

func (f Field) DeclaringClass() java.Type { return f.h.class.Type() }

func (f Field) Declarer() *Class { return f.h.class }

func (f Field) Modifiers() java.Modifiers { return f.h.modifiers }

// IsAccessible reports whether Get and Set bypass the field's visibility.
// The flag lives on the field handle and is shared by all of its
// accessors.
func (f Field) IsAccessible() bool { return f.h.accessible.Load() }

// SetAccessible changes the flag for every accessor of this field.
func (f Field) SetAccessible(accessible bool) { f.h.accessible.Store(accessible) }

// IsDefaultAccess reports package-private access: none of private,
// protected or public.
func (f Field) IsDefaultAccess() bool { return f.h.modifiers.IsPackage() }

func (f Field) IsFinal() bool     { return f.h.modifiers.IsFinal() }
func (f Field) IsPrivate() bool   { return f.h.modifiers.IsPrivate() }
func (f Field) IsProtected() bool { return f.h.modifiers.IsProtected() }
func (f Field) IsPublic() bool    { return f.h.modifiers.IsPublic() }
func (f Field) IsStatic() bool    { return f.h.modifiers.IsStatic() }
func (f Field) IsTransient() bool { return f.h.modifiers.IsTransient() }
func (f Field) IsVolatile() bool  { return f.h.modifiers.IsVolatile() }
func (f Field) IsSynthetic() bool { return f.h.modifiers.IsSynthetic() }

// ElementType resolves the type argument at index of a parameterized
// field type. A parameterized argument resolves to its raw type, and a
// generic array of a concrete component to that array type. Anything
// else, an index out of range or a non-parameterized field yields false.
func (f Field) ElementType(index int) (java.Type, bool) {
	p, ok := f.h.generic.(*java.ParameterizedType)
	if !ok || index < 0 || index >= len(p.Args) {
		return java.Type{}, false
	}
	switch arg := p.Args[index].(type) {
	case java.Type:
		return arg, true
	case *java.ParameterizedType:
		return arg.Raw, true
	case *java.GenericArrayType:
		if component, ok := arg.Component.(java.Type); ok {
			return java.ArrayOf(component), true
		}
	}
	return java.Type{}, false
}

func (f Field) IsAnnotationPresent(annotationType java.Type) bool {
	_, ok := f.DeclaredAnnotation(annotationType)
	return ok
}

// DeclaredAnnotations returns the annotations written on this field in
// declaration order, or an empty slice.
func (f Field) DeclaredAnnotations() []Annotation {
	result := make([]Annotation, len(f.h.annotations))
	for i, a := range f.h.annotations {
		result[i] = wrapAnnotation(a)
	}
	return result
}

// DeclaredAnnotation returns the first declared annotation of exactly
// annotationType.
func (f Field) DeclaredAnnotation(annotationType java.Type) (Annotation, bool) {
	for _, a := range f.h.annotations {
		if a.Type == annotationType {
			return wrapAnnotation(a), true
		}
	}
	return Annotation{}, false
}

// Get returns the value of the field on obj. obj is ignored for static
// fields.
func (f Field) Get(obj any) (Value, error) {
	if f.IsStatic() {
		if err := f.checkAccess(); err != nil {
			return nil, err
		}
		return f.h.static, nil
	}

	o, err := f.instance(obj)
	if err != nil {
		return nil, f.mismatch("object is not an instance of "+f.h.class.name, err)
	}
	if err := f.checkAccess(); err != nil {
		return nil, err
	}
	return o.values[f.h.index], nil
}

// Set stores value into the field on obj, applying widening primitive
// conversions. obj is ignored for static fields. Final fields can be set
// only when they are accessible and not static.
func (f Field) Set(obj any, value Value) error {
	var o *Object
	if !f.IsStatic() {
		var err error
		if o, err = f.instance(obj); err != nil {
			return f.mismatch("argument not valid for field: "+f.h.name, err)
		}
	}
	if err := f.checkAccess(); err != nil {
		return err
	}
	if f.IsFinal() && (f.IsStatic() || !f.IsAccessible()) {
		return f.illegal(errFinalField)
	}

	converted, err := f.h.class.reg.assign(f.h.typ, value)
	if err != nil {
		return f.mismatch("argument not valid for field: "+f.h.name, err)
	}
	if o != nil {
		o.values[f.h.index] = converted
	} else {
		f.h.static = converted
	}
	return nil
}

// Exclusive runs fn while holding the lock of the underlying field
// handle, so a SetAccessible followed by Get or Set is not interleaved
// with another Exclusive section on the same field. fn must not call
// Exclusive on the same field.
func (f Field) Exclusive(fn func(Field) error) error {
	f.h.mu.Lock()
	defer f.h.mu.Unlock()
	return fn(f)
}

func (f Field) instance(obj any) (*Object, error) {
	o, ok := obj.(*Object)
	switch {
	case obj == nil || (ok && o == nil):
		return nil, errNullObject
	case !ok:
		return nil, fmt.Errorf("%w: %T", errNotAnObject, obj)
	case !o.class.extends(f.h.class):
		return nil, fmt.Errorf("%s is not a subclass of %s", o.class.name, f.h.class.name)
	}
	return o, nil
}

func (f Field) checkAccess() error {
	if f.IsAccessible() || f.visibleFrom(f.caller) {
		return nil
	}
	caller := "outside any class"
	if f.caller != nil {
		caller = "from " + f.caller.name
	}
	return f.illegal(fmt.Errorf("%s field of %s is not visible %s", f.h.modifiers.Visibility(), f.h.class.name, caller))
}

func (f Field) visibleFrom(caller *Class) bool {
	m := f.h.modifiers
	switch {
	case m.IsPublic():
		return true
	case caller == nil:
		return false
	case m.IsPrivate():
		return caller == f.h.class
	case caller.Package() == f.h.class.Package():
		return true
	case m.IsProtected():
		return caller.extends(f.h.class)
	}
	return false
}

func (f Field) mismatch(msg string, cause error) error {
	return &AccessError{Kind: ErrArgumentMismatch, Class: f.h.class.name, Field: f.h.name, Msg: msg, Err: cause}
}

func (f Field) illegal(cause error) error {
	return &AccessError{Kind: ErrIllegalAccess, Class: f.h.class.name, Field: f.h.name, Msg: "illegal access to field: " + f.h.name, Err: cause}
}

// String describes the field the way Java declares it, with the erased
// type and the declaring class, e.g. "private java.util.List com.example.Bean.items".
func (f Field) String() string {
	return f.declaration(f.h.typ.String())
}

// GenericString is String with the field's generic type.
func (f Field) GenericString() string {
	return f.declaration(f.h.generic.String())
}

func (f Field) declaration(typ string) string {
	s := typ + " " + f.h.class.name + "." + f.h.name
	if mods := f.h.modifiers.String(); mods != "" {
		s = mods + " " + s
	}
	return s
}
