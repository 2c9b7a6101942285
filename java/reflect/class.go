package reflect

import (
	"github.com/dhamidi/jreflect/java"
)

// Class is the registered descriptor of one class or interface. It is
// immutable once registered.
type Class struct {
	reg        *Registry
	index      int
	name       string
	super      string
	interfaces []string
	modifiers  java.Modifiers
	typeParams []string
	fields     []*fieldHandle
}

func (c *Class) Name() string              { return c.name }
func (c *Class) Type() java.Type           { return java.TypeOf(c.name) }
func (c *Class) Package() string           { return c.Type().Package() }
func (c *Class) SuperClass() string        { return c.super }
func (c *Class) Modifiers() java.Modifiers { return c.modifiers }
func (c *Class) String() string            { return c.kind() + " " + c.name }
func (c *Class) Interfaces() []string      { return append([]string(nil), c.interfaces...) }
func (c *Class) TypeParameters() []string  { return append([]string(nil), c.typeParams...) }
func (c *Class) IsInterface() bool         { return c.modifiers&java.Interface != 0 }

func (c *Class) kind() string {
	if c.IsInterface() {
		return "interface"
	}
	return "class"
}

// DeclaredFields returns new accessors for the fields declared by this
// class, in declaration order. Inherited fields are not included.
func (c *Class) DeclaredFields() []Field {
	fields := make([]Field, len(c.fields))
	for i, h := range c.fields {
		fields[i] = Field{h: h}
	}
	return fields
}

func (c *Class) DeclaredField(name string) (Field, bool) {
	for _, h := range c.fields {
		if h.name == name {
			return Field{h: h}, true
		}
	}
	return Field{}, false
}

// hierarchy returns c followed by its registered superclasses. The walk
// stops at the first superclass that is not registered.
func (c *Class) hierarchy() []*Class {
	var chain []*Class
	seen := map[*Class]bool{}
	for k := c; k != nil && !seen[k]; {
		seen[k] = true
		chain = append(chain, k)
		if k.super == "" {
			break
		}
		next, ok := c.reg.Class(k.super)
		if !ok {
			break
		}
		k = next
	}
	return chain
}

// extends reports whether c is other or a subclass of it.
func (c *Class) extends(other *Class) bool {
	for _, k := range c.hierarchy() {
		if k == other {
			return true
		}
	}
	return false
}

// isSubtypeOf reports whether c is name, or extends or implements it
// through registered classes. Unregistered supertypes are matched by name
// but not walked.
func (c *Class) isSubtypeOf(name string) bool {
	seen := map[string]bool{}
	var walk func(n string) bool
	walk = func(n string) bool {
		if n == name {
			return true
		}
		if n == "" || seen[n] {
			return false
		}
		seen[n] = true
		k, ok := c.reg.Class(n)
		if !ok {
			return false
		}
		if walk(k.super) {
			return true
		}
		for _, iface := range k.interfaces {
			if walk(iface) {
				return true
			}
		}
		return false
	}
	return walk(c.name)
}
