package metadata

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// TypeExpr: tagged-variant type-expression tree
// ---------------------------------------------------------------------------

// TypeKind identifies the variant of a TypeExpr node.
type TypeKind uint8

const (
	// KindNamed is a concrete type name: integer, atom, map.
	KindNamed TypeKind = 1

	// KindVar is a type variable: a, value.
	KindVar TypeKind = 2

	// KindFun is a function signature: name(args...) -> result. The root
	// node of every spec clause is a KindFun carrying the function name.
	KindFun TypeKind = 3

	// KindApp is a parameterized type: list(integer), map(atom, term).
	KindApp TypeKind = 4

	// KindTuple is a fixed-shape aggregate: {atom, integer}.
	KindTuple TypeKind = 5

	// KindUnion is an alternative: integer | nil.
	KindUnion TypeKind = 6
)

// String returns a human-readable name for TypeKind.
func (k TypeKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindVar:
		return "var"
	case KindFun:
		return "fun"
	case KindApp:
		return "app"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// TypeExpr is one node of an encoded type expression. Trees are immutable
// once decoded; transformations return new nodes and share subtrees.
type TypeExpr struct {
	Kind   TypeKind    `cbor:"1,keyasint"`
	Name   string      `cbor:"2,keyasint,omitempty"`
	Args   []*TypeExpr `cbor:"3,keyasint,omitempty"`
	Result *TypeExpr   `cbor:"4,keyasint,omitempty"`
}

// Named constructs a concrete type node.
func Named(name string) *TypeExpr {
	return &TypeExpr{Kind: KindNamed, Name: name}
}

// Var constructs a type-variable node.
func Var(name string) *TypeExpr {
	return &TypeExpr{Kind: KindVar, Name: name}
}

// Fun constructs a function-signature clause.
func Fun(name string, result *TypeExpr, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindFun, Name: name, Args: args, Result: result}
}

// App constructs a parameterized type node.
func App(name string, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindApp, Name: name, Args: args}
}

// Tuple constructs a tuple node.
func Tuple(elems ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindTuple, Args: elems}
}

// Union constructs an alternative node.
func Union(alts ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindUnion, Args: alts}
}

// WithName returns a copy of the clause with the root function name
// replaced. Subtrees are shared, not copied; the receiver is unchanged.
// Non-fun nodes are returned as-is since there is no name to rewrite.
func (t *TypeExpr) WithName(name string) *TypeExpr {
	if t == nil || t.Kind != KindFun {
		return t
	}
	clone := *t
	clone.Name = name
	return &clone
}

// Arity returns the argument count of a fun clause, or -1 for other nodes.
func (t *TypeExpr) Arity() int {
	if t == nil || t.Kind != KindFun {
		return -1
	}
	return len(t.Args)
}

// String renders the expression in signature syntax, e.g.
// "f(integer, integer) -> integer" or "list(atom | nil)".
func (t *TypeExpr) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

func (t *TypeExpr) render(sb *strings.Builder) {
	switch t.Kind {
	case KindNamed, KindVar:
		sb.WriteString(t.Name)
	case KindFun:
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		t.renderList(sb, t.Args, ", ")
		sb.WriteByte(')')
		sb.WriteString(" -> ")
		if t.Result != nil {
			t.Result.render(sb)
		} else {
			sb.WriteString("term")
		}
	case KindApp:
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		t.renderList(sb, t.Args, ", ")
		sb.WriteByte(')')
	case KindTuple:
		sb.WriteByte('{')
		t.renderList(sb, t.Args, ", ")
		sb.WriteByte('}')
	case KindUnion:
		t.renderList(sb, t.Args, " | ")
	default:
		fmt.Fprintf(sb, "<%s>", t.Kind)
	}
}

func (t *TypeExpr) renderList(sb *strings.Builder, list []*TypeExpr, sep string) {
	for i, e := range list {
		if i > 0 {
			sb.WriteString(sep)
		}
		if e == nil {
			sb.WriteString("term")
			continue
		}
		e.render(sb)
	}
}
