package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the builtin sorts.
type Builtins struct {
	Type TypeID
	Prop TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with the builtin sorts.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 32),
	}
	in.internRaw(Type{Kind: KindInvalid}) // reserve 0
	in.builtins.Type = in.Intern(Type{Kind: KindSort, Name: SortType})
	in.builtins.Prop = in.Intern(Type{Kind: KindSort, Name: SortProp})
	return in
}

// Builtins returns TypeIDs for the builtin sorts.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[typeKey(t)]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Named interns a reference by name, mapping Type and Prop to their sorts.
func (in *Interner) Named(name string) TypeID {
	if IsBuiltin(name) {
		return in.Intern(Type{Kind: KindSort, Name: name})
	}
	return in.Intern(Type{Kind: KindNamed, Name: name})
}

// Arrow interns `from -> to`, or `(binder : from) -> to`.
func (in *Interner) Arrow(binder string, from, to TypeID) TypeID {
	return in.Intern(Type{Kind: KindArrow, Binder: binder, Left: from, Right: to})
}

// App interns head applied to args, left-nested.
func (in *Interner) App(head TypeID, args ...TypeID) TypeID {
	id := head
	for _, arg := range args {
		id = in.Intern(Type{Kind: KindApp, Left: id, Right: arg})
	}
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of interned types, not counting the reserved slot.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

// Format renders id back to source syntax.
func (in *Interner) Format(id TypeID) string {
	var sb strings.Builder
	in.format(&sb, id, false)
	return sb.String()
}

func (in *Interner) format(sb *strings.Builder, id TypeID, atom bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		sb.WriteString("<invalid>")
		return
	}
	switch tt.Kind {
	case KindSort, KindNamed:
		sb.WriteString(tt.Name)
	case KindApp:
		if atom {
			sb.WriteByte('(')
		}
		in.format(sb, tt.Left, false)
		sb.WriteByte(' ')
		in.format(sb, tt.Right, true)
		if atom {
			sb.WriteByte(')')
		}
	case KindArrow:
		if atom {
			sb.WriteByte('(')
		}
		if tt.Binder != "" {
			sb.WriteString("(" + tt.Binder + " : ")
			in.format(sb, tt.Left, false)
			sb.WriteByte(')')
		} else {
			in.format(sb, tt.Left, in.isArrow(tt.Left))
		}
		sb.WriteString(" -> ")
		in.format(sb, tt.Right, false)
		if atom {
			sb.WriteByte(')')
		}
	default:
		sb.WriteString("<invalid>")
	}
}

func (in *Interner) isArrow(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindArrow
}
