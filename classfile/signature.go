package classfile

import (
	"fmt"
	"strings"
)

type SignatureKind uint8

const (
	SignatureBase SignatureKind = iota
	SignatureClass
	SignatureTypeVariable
	SignatureArray
)

// TypeSignature is one node of a parsed generic signature (JVMS 4.7.9.1).
type TypeSignature struct {
	Kind SignatureKind

	// SignatureBase
	BaseType string

	// SignatureClass. ClassName is the binary internal name; for an inner
	// class suffix such as Outer<T>.Inner it is "Outer$Inner" and Outer
	// points at the enclosing class signature.
	ClassName     string
	TypeArguments []TypeArgument
	Outer         *TypeSignature

	// SignatureTypeVariable
	Variable string

	// SignatureArray
	Component *TypeSignature
}

// TypeArgument is one entry of a <...> list. Wildcard is 0 for an exact
// argument, or one of '*', '+' (extends) and '-' (super). Type is nil for
// '*'.
type TypeArgument struct {
	Wildcard byte
	Type     *TypeSignature
}

func (ts *TypeSignature) String() string {
	var sb strings.Builder
	ts.write(&sb)
	return sb.String()
}

func (ts *TypeSignature) write(sb *strings.Builder) {
	switch ts.Kind {
	case SignatureBase:
		for code, name := range baseTypes {
			if name == ts.BaseType {
				sb.WriteByte(code)
			}
		}
	case SignatureTypeVariable:
		sb.WriteString("T" + ts.Variable + ";")
	case SignatureArray:
		sb.WriteByte('[')
		ts.Component.write(sb)
	case SignatureClass:
		ts.writeClass(sb)
		sb.WriteByte(';')
	}
}

func (ts *TypeSignature) writeClass(sb *strings.Builder) {
	if ts.Outer != nil {
		ts.Outer.writeClass(sb)
		sb.WriteByte('.')
		sb.WriteString(ts.ClassName[strings.LastIndexByte(ts.ClassName, '$')+1:])
	} else {
		sb.WriteString("L" + ts.ClassName)
	}
	if len(ts.TypeArguments) == 0 {
		return
	}
	sb.WriteByte('<')
	for _, arg := range ts.TypeArguments {
		if arg.Wildcard != 0 {
			sb.WriteByte(arg.Wildcard)
		}
		if arg.Type != nil {
			arg.Type.write(sb)
		}
	}
	sb.WriteByte('>')
}

// ParseFieldSignature parses the value of a field's Signature attribute,
// which is always a reference type signature.
func ParseFieldSignature(sig string) (*TypeSignature, error) {
	p := &signatureParser{src: sig}
	ts, err := p.referenceType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing characters")
	}
	return ts, nil
}

type signatureParser struct {
	src string
	pos int
}

func (p *signatureParser) errorf(format string, args ...any) error {
	return fmt.Errorf("invalid signature %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *signatureParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// until reads up to, but not including, the first byte from stops.
func (p *signatureParser) until(stops string) string {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte(stops, p.src[p.pos]) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *signatureParser) javaType() (*TypeSignature, error) {
	if p.pos < len(p.src) {
		if name, ok := baseTypes[p.src[p.pos]]; ok {
			p.pos++
			return &TypeSignature{Kind: SignatureBase, BaseType: name}, nil
		}
	}
	return p.referenceType()
}

func (p *signatureParser) referenceType() (*TypeSignature, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end")
	}
	switch p.src[p.pos] {
	case 'L':
		p.pos++
		return p.classType()
	case 'T':
		p.pos++
		name := p.until(";<>.:/[")
		if name == "" || !p.consume(';') {
			return nil, p.errorf("malformed type variable")
		}
		return &TypeSignature{Kind: SignatureTypeVariable, Variable: name}, nil
	case '[':
		p.pos++
		component, err := p.javaType()
		if err != nil {
			return nil, err
		}
		return &TypeSignature{Kind: SignatureArray, Component: component}, nil
	}
	return nil, p.errorf("unexpected %q", p.src[p.pos])
}

func (p *signatureParser) classType() (*TypeSignature, error) {
	name := p.until(".;<>")
	if name == "" {
		return nil, p.errorf("missing class name")
	}
	cur := &TypeSignature{Kind: SignatureClass, ClassName: name}
	for {
		if p.consume('<') {
			args, err := p.typeArguments()
			if err != nil {
				return nil, err
			}
			cur.TypeArguments = args
		}
		if p.consume('.') {
			inner := p.until(".;<>/")
			if inner == "" {
				return nil, p.errorf("missing inner class name")
			}
			cur = &TypeSignature{Kind: SignatureClass, ClassName: cur.ClassName + "$" + inner, Outer: cur}
			continue
		}
		if !p.consume(';') {
			return nil, p.errorf("expected ';'")
		}
		return cur, nil
	}
}

func (p *signatureParser) typeArguments() ([]TypeArgument, error) {
	var args []TypeArgument
	for !p.consume('>') {
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated type arguments")
		}
		var arg TypeArgument
		switch c := p.src[p.pos]; c {
		case '*':
			p.pos++
			args = append(args, TypeArgument{Wildcard: '*'})
			continue
		case '+', '-':
			p.pos++
			arg.Wildcard = c
		}
		t, err := p.referenceType()
		if err != nil {
			return nil, err
		}
		arg.Type = t
		args = append(args, arg)
	}
	if len(args) == 0 {
		return nil, p.errorf("empty type arguments")
	}
	return args, nil
}

type TypeParameter struct {
	Name            string
	ClassBound      *TypeSignature
	InterfaceBounds []*TypeSignature
}

// ClassSignature is the value of a class's Signature attribute.
type ClassSignature struct {
	TypeParameters []TypeParameter
	SuperClass     *TypeSignature
	Interfaces     []*TypeSignature
}

func ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &signatureParser{src: sig}
	cs := &ClassSignature{}
	if p.consume('<') {
		for !p.consume('>') {
			tp, err := p.typeParameter()
			if err != nil {
				return nil, err
			}
			cs.TypeParameters = append(cs.TypeParameters, tp)
		}
		if len(cs.TypeParameters) == 0 {
			return nil, p.errorf("empty type parameters")
		}
	}

	super, err := p.superType()
	if err != nil {
		return nil, err
	}
	cs.SuperClass = super
	for p.pos < len(p.src) {
		iface, err := p.superType()
		if err != nil {
			return nil, err
		}
		cs.Interfaces = append(cs.Interfaces, iface)
	}
	return cs, nil
}

func (p *signatureParser) typeParameter() (TypeParameter, error) {
	name := p.until(":<>;")
	if name == "" || !p.consume(':') {
		return TypeParameter{}, p.errorf("malformed type parameter")
	}
	tp := TypeParameter{Name: name}
	if p.pos < len(p.src) && p.src[p.pos] != ':' {
		bound, err := p.referenceType()
		if err != nil {
			return TypeParameter{}, err
		}
		tp.ClassBound = bound
	}
	for p.consume(':') {
		bound, err := p.referenceType()
		if err != nil {
			return TypeParameter{}, err
		}
		tp.InterfaceBounds = append(tp.InterfaceBounds, bound)
	}
	return tp, nil
}

func (p *signatureParser) superType() (*TypeSignature, error) {
	if !p.consume('L') {
		return nil, p.errorf("expected class type signature")
	}
	return p.classType()
}
