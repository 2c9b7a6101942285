// Package reflect gives reflective access to the fields of JVM classes
// without a JVM.
//
// A Registry is the arena that owns class descriptors and field handles.
// Classes enter it once, either from a parsed .class file (Load,
// LoadFile) or from a declarative ClassSpec (Define, DefineYAML), and are
// immutable from then on. Instances are Objects allocated with
// Registry.New; their field values, like the values of static fields, are
// plain Go values:
//
//	boolean  bool        byte    int8
//	char     uint16      short   int16
//	int      int32       long    int64
//	float    float32     double  float64
//	String   string      arrays  *Array
//	objects  *Object     null    nil
//
// A Field is a lightweight accessor over one field handle. Several Field
// values may wrap the same handle (every DeclaredFields call makes new
// ones), and they share the handle's accessible flag: toggling it through
// one accessor is visible through all of them. Get and Set do not lock;
// callers that share a handle between goroutines hold Field.Exclusive
// around each toggle-and-access sequence.
package reflect
