package metadata

import "testing"

func TestTypeExprString(t *testing.T) {
	tests := []struct {
		name string
		expr *TypeExpr
		want string
	}{
		{
			name: "named",
			expr: Named("integer"),
			want: "integer",
		},
		{
			name: "variable",
			expr: Var("value"),
			want: "value",
		},
		{
			name: "fun clause",
			expr: Fun("f", Named("integer"), Named("integer"), Named("integer")),
			want: "f(integer, integer) -> integer",
		},
		{
			name: "fun with no args",
			expr: Fun("now", Named("integer")),
			want: "now() -> integer",
		},
		{
			name: "fun with nil result",
			expr: Fun("cast", nil, Named("term")),
			want: "cast(term) -> term",
		},
		{
			name: "parameterized",
			expr: App("list", Named("atom")),
			want: "list(atom)",
		},
		{
			name: "tuple",
			expr: Tuple(Named("atom"), Named("integer")),
			want: "{atom, integer}",
		},
		{
			name: "union",
			expr: Union(Named("integer"), Named("nil")),
			want: "integer | nil",
		},
		{
			name: "nested",
			expr: Fun("fetch", Union(Tuple(Named("ok"), Var("value")), Named("error")),
				App("map", Named("atom"), Var("value")), Named("atom")),
			want: "fetch(map(atom, value), atom) -> {ok, value} | error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithName(t *testing.T) {
	clause := Fun("f", Named("integer"), Named("integer"), Named("integer"))

	renamed := clause.WithName("g")
	if got := renamed.String(); got != "g(integer, integer) -> integer" {
		t.Errorf("renamed = %q", got)
	}

	// The original clause must be untouched.
	if got := clause.String(); got != "f(integer, integer) -> integer" {
		t.Errorf("original mutated: %q", got)
	}

	// Subtrees are shared, not copied.
	if renamed.Args[0] != clause.Args[0] {
		t.Error("expected shared argument subtree")
	}
}

func TestWithNameNonFun(t *testing.T) {
	n := Named("integer")
	if n.WithName("g") != n {
		t.Error("expected non-fun node returned unchanged")
	}
	var nilExpr *TypeExpr
	if nilExpr.WithName("g") != nil {
		t.Error("expected nil to stay nil")
	}
}

func TestArity(t *testing.T) {
	if got := Fun("f", nil, Var("a"), Var("b")).Arity(); got != 2 {
		t.Errorf("Arity = %d, want 2", got)
	}
	if got := Named("integer").Arity(); got != -1 {
		t.Errorf("Arity of named = %d, want -1", got)
	}
}

func TestTypeExprRoundTrip(t *testing.T) {
	clause := Fun("put", Named("map"),
		Var("key"), Var("value"), App("list", Tuple(Named("atom"), Named("term"))))

	records := []SpecRecord{{Kind: AttrSpec, Name: "put", Arity: 3, Clauses: []*TypeExpr{clause}}}
	data, err := EncodeSpecs(records)
	if err != nil {
		t.Fatalf("EncodeSpecs: %v", err)
	}

	decoded := DecodeSpecs(data)
	if len(decoded) != 1 || len(decoded[0].Clauses) != 1 {
		t.Fatalf("decoded shape = %+v", decoded)
	}
	if got := decoded[0].Clauses[0].String(); got != clause.String() {
		t.Errorf("round trip = %q, want %q", got, clause.String())
	}
}
