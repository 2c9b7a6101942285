package java

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// langTypes are the java.lang names that may be written unqualified.
var langTypes = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "Number": true,
	"Boolean": true, "Byte": true, "Character": true, "Short": true,
	"Integer": true, "Long": true, "Float": true, "Double": true,
	"Comparable": true, "Iterable": true, "Class": true, "Enum": true,
}

// ParseType parses a type written in Java source syntax, for example
// "java.util.Map<String, ? extends java.util.List<T>>[]". Names listed in
// typeParams are type variables. Nested classes are written with their
// binary name (java.util.Map$Entry) unless they follow a parameterized
// owner (Outer<T>.Inner).
func ParseType(src string, typeParams ...string) (GenericType, error) {
	p := &typeParser{src: src, params: typeParams}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src    string
	pos    int
	params []string
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse type %q: %s", p.src, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) consume(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if c != '_' && c != '$' && !unicode.IsLetter(c) && !(p.pos > start && unicode.IsDigit(c)) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// keyword consumes word only when it is followed by a non-identifier byte.
func (p *typeParser) keyword(word string) bool {
	p.skipSpace()
	save := p.pos
	if p.ident() == word {
		return true
	}
	p.pos = save
	return false
}

func (p *typeParser) parseType() (GenericType, error) {
	base, err := p.parseNonArray()
	if err != nil {
		return nil, err
	}
	for p.consume('[') {
		if !p.consume(']') {
			return nil, p.errorf("expected ']'")
		}
		base = GenericArrayOf(base)
	}
	return base, nil
}

func (p *typeParser) parseNonArray() (GenericType, error) {
	first := p.ident()
	if first == "" {
		return nil, p.errorf("expected a type name")
	}
	if prim := (Type{Name: first}); prim.IsPrimitive() {
		return prim, nil
	}

	name := first
	for p.consume('.') {
		part := p.ident()
		if part == "" {
			return nil, p.errorf("expected identifier after '.'")
		}
		name += "." + part
	}

	if !strings.Contains(name, ".") {
		if slices.Contains(p.params, name) {
			return &TypeVariable{Name: name}, nil
		}
		if langTypes[name] {
			name = "java.lang." + name
		}
	}

	var cur GenericType = TypeOf(name)
	for {
		if !p.consume('<') {
			return cur, nil
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		param := &ParameterizedType{Raw: Erasure(cur), Args: args}
		if owner, ok := cur.(*ParameterizedType); ok {
			param.Raw = owner.Raw
			param.Owner = owner.Owner
		}
		cur = param
		if !p.consume('.') {
			return cur, nil
		}
		inner := p.ident()
		if inner == "" {
			return nil, p.errorf("expected inner class name")
		}
		cur = &ParameterizedType{Raw: TypeOf(param.Raw.Name + "$" + inner), Owner: param}
	}
}

func (p *typeParser) parseArgs() ([]GenericType, error) {
	var args []GenericType
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.consume('>') {
			return args, nil
		}
		if !p.consume(',') {
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}

func (p *typeParser) parseArg() (GenericType, error) {
	if !p.consume('?') {
		return p.parseType()
	}
	switch {
	case p.keyword("extends"):
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &WildcardType{Upper: []GenericType{bound}}, nil
	case p.keyword("super"):
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &WildcardType{Upper: []GenericType{Object}, Lower: []GenericType{bound}}, nil
	}
	return &WildcardType{Upper: []GenericType{Object}}, nil
}
