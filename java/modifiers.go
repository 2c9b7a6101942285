package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jreflect/classfile"
)

// Modifiers is a bit set using the JVM access flag values.
type Modifiers uint16

const (
	Public    = Modifiers(classfile.AccPublic)
	Private   = Modifiers(classfile.AccPrivate)
	Protected = Modifiers(classfile.AccProtected)
	Static    = Modifiers(classfile.AccStatic)
	Final     = Modifiers(classfile.AccFinal)
	Volatile  = Modifiers(classfile.AccVolatile)
	Transient = Modifiers(classfile.AccTransient)
	Interface = Modifiers(classfile.AccInterface)
	Abstract  = Modifiers(classfile.AccAbstract)
	Synthetic = Modifiers(classfile.AccSynthetic)
	Enum      = Modifiers(classfile.AccEnum)

	accessMask = Public | Private | Protected
)

// modifierNames is in Java declaration order.
var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Interface, "interface"},
	{Synthetic, "synthetic"},
	{Enum, "enum"},
}

func ModifiersFromAccessFlags(flags classfile.AccessFlags) Modifiers {
	return Modifiers(flags)
}

// ParseModifiers accepts modifier keywords in any order. At most one
// access modifier may be given, and final excludes volatile.
func ParseModifiers(words []string) (Modifiers, error) {
	var m Modifiers
	for _, w := range words {
		found := false
		for _, mn := range modifierNames {
			if mn.name == strings.TrimSpace(w) {
				if m&mn.mod != 0 {
					return 0, fmt.Errorf("repeated modifier %q", w)
				}
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", w)
		}
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}

// Validate rejects more than one access modifier, and final together with
// volatile.
func (m Modifiers) Validate() error {
	access := m & accessMask
	if access&(access-1) != 0 {
		return fmt.Errorf("conflicting access modifiers: %s", access)
	}
	if m.IsFinal() && m.IsVolatile() {
		return fmt.Errorf("a field cannot be both final and volatile")
	}
	return nil
}

func (m Modifiers) IsPublic() bool    { return m&Public != 0 }
func (m Modifiers) IsPrivate() bool   { return m&Private != 0 }
func (m Modifiers) IsProtected() bool { return m&Protected != 0 }
func (m Modifiers) IsStatic() bool    { return m&Static != 0 }
func (m Modifiers) IsFinal() bool     { return m&Final != 0 }
func (m Modifiers) IsVolatile() bool  { return m&Volatile != 0 }
func (m Modifiers) IsTransient() bool { return m&Transient != 0 }
func (m Modifiers) IsSynthetic() bool { return m&Synthetic != 0 }
func (m Modifiers) IsEnum() bool      { return m&Enum != 0 }

// IsPackage reports package-private (default) access.
func (m Modifiers) IsPackage() bool { return m&accessMask == 0 }

func (m Modifiers) Visibility() Visibility {
	switch {
	case m.IsPublic():
		return VisibilityPublic
	case m.IsProtected():
		return VisibilityProtected
	case m.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

// String renders the source-level keywords, leaving out flags that are
// not written in declarations.
func (m Modifiers) String() string {
	var words []string
	for _, mn := range modifierNames {
		if m&mn.mod == 0 || mn.mod == Synthetic || mn.mod == Enum || mn.mod == Interface {
			continue
		}
		words = append(words, mn.name)
	}
	return strings.Join(words, " ")
}
