package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/jreflect/java/reflect"
)

// loadClasses registers every class in files, which may be .class files
// or YAML class definitions, and returns them in load order.
func loadClasses(files []string) (*reflect.Registry, []*reflect.Class, error) {
	r := reflect.NewRegistry()
	var classes []*reflect.Class
	for _, filename := range files {
		switch ext := filepath.Ext(filename); ext {
		case ".class":
			c, err := r.LoadFile(filename)
			if err != nil {
				return nil, nil, fmt.Errorf("load class file: %w", err)
			}
			classes = append(classes, c)
		case ".yaml", ".yml":
			f, err := os.Open(filename)
			if err != nil {
				return nil, nil, fmt.Errorf("open definitions: %w", err)
			}
			defined, err := r.DefineYAML(f)
			f.Close()
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", filename, err)
			}
			classes = append(classes, defined...)
		default:
			return nil, nil, fmt.Errorf("unsupported file extension: %s (expected .class, .yaml or .yml)", ext)
		}
	}
	return r, classes, nil
}

func lookupField(r *reflect.Registry, className, fieldName string) (reflect.Field, error) {
	if _, ok := r.Class(className); !ok {
		return reflect.Field{}, fmt.Errorf("%w: %s", reflect.ErrUnknownClass, className)
	}
	f, ok := r.LookupField(className, fieldName)
	if !ok {
		return reflect.Field{}, fmt.Errorf("class %s declares no field %s", className, fieldName)
	}
	return f, nil
}
