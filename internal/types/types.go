// Package types builds the per-module table of declared names and their types.
package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindSort is one of the builtin universes Type and Prop.
	KindSort
	// KindNamed refers to a declaration or binder by name.
	KindNamed
	// KindArrow is a function type; Binder is set for dependent arrows.
	KindArrow
	// KindApp applies Left to Right; multi-argument application is curried.
	KindApp
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindSort:
		return "sort"
	case KindNamed:
		return "named"
	case KindArrow:
		return "arrow"
	case KindApp:
		return "app"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Builtin sort names.
const (
	SortType = "Type"
	SortProp = "Prop"
)

// IsBuiltin reports whether name is a builtin sort.
func IsBuiltin(name string) bool {
	return name == SortType || name == SortProp
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind   Kind
	Name   string // sorts and named types
	Binder string // dependent arrows
	Left   TypeID // arrow domain, applied head
	Right  TypeID // arrow codomain, applied argument
}

type typeKey Type
