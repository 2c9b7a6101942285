package reflect

import "github.com/dhamidi/jreflect/java"

// Annotation wraps one annotation declared on a field. Each accessor call
// produces new wrappers.
type Annotation struct {
	a java.Annotation
}

func wrapAnnotation(a java.Annotation) Annotation {
	a.Elements = append([]java.ElementValuePair(nil), a.Elements...)
	return Annotation{a: a}
}

func (a Annotation) AnnotationType() java.Type { return a.a.Type }

// Value returns the value given for the named element.
func (a Annotation) Value(name string) (any, bool) { return a.a.Value(name) }

func (a Annotation) Elements() []java.ElementValuePair {
	return append([]java.ElementValuePair(nil), a.a.Elements...)
}

func (a Annotation) String() string { return a.a.String() }
