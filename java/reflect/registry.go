package reflect

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jreflect/java"
)

// Registry is the arena of class descriptors and field handles. It is
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes []*Class
	byName  map[string]*Class
	fields  []*fieldHandle
	log     commonlog.Logger
}

type Option func(*Registry)

func WithLogger(log commonlog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry returns a registry that already holds java.lang.Object.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byName: map[string]*Class{},
		log:    commonlog.GetLogger("jreflect.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.register(&Class{name: java.Object.Name, modifiers: java.Public}, nil); err != nil {
		panic(err)
	}
	return r
}

// register assigns arena indices to c and its field handles. fields are
// attached to c in declaration order.
func (r *Registry) register(c *Class, fields []*fieldHandle) error {
	seen := make(map[string]bool, len(fields))
	for _, h := range fields {
		if seen[h.name] {
			return fmt.Errorf("duplicate field %s in %s", h.name, c.name)
		}
		seen[h.name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[c.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.name)
	}
	c.reg = r
	c.index = len(r.classes)
	for _, h := range fields {
		h.class = c
		h.index = len(r.fields)
		r.fields = append(r.fields, h)
	}
	c.fields = fields
	r.classes = append(r.classes, c)
	r.byName[c.name] = c

	r.log.Debugf("registered class %s with %d fields", c.name, len(fields))
	return nil
}

func (r *Registry) Class(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Classes returns every registered class in registration order.
func (r *Registry) Classes() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Class(nil), r.classes...)
}

// FieldAt returns an accessor for the field handle with the given arena
// index.
func (r *Registry) FieldAt(index int) (Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.fields) {
		return Field{}, false
	}
	return Field{h: r.fields[index]}, true
}

// LookupField finds a field declared directly by className.
func (r *Registry) LookupField(className, fieldName string) (Field, bool) {
	c, ok := r.Class(className)
	if !ok {
		return Field{}, false
	}
	return c.DeclaredField(fieldName)
}

// New allocates an instance of className with every instance field,
// including those of registered superclasses, set to its zero value.
func (r *Registry) New(className string) (*Object, error) {
	c, ok := r.Class(className)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	if c.modifiers&(java.Abstract|java.Interface) != 0 {
		return nil, fmt.Errorf("cannot instantiate %s %s", c.kind(), c.name)
	}

	o := &Object{class: c, values: map[int]Value{}}
	for _, k := range c.hierarchy() {
		for _, h := range k.fields {
			if !h.modifiers.IsStatic() {
				o.values[h.index] = zeroValue(h.typ)
			}
		}
	}
	return o, nil
}
