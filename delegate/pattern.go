// Package delegate generates forwarding function definitions: facade
// functions that call into a target module while carrying the target's
// documentation and type signatures as if declared locally.
package delegate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCallSyntax indicates a delegation pattern could not be parsed
// into a function name and parameter list.
var ErrInvalidCallSyntax = errors.New("invalid call syntax")

// CallPattern is one delegation request: the facade function's name and
// positional parameters, as written by the user.
type CallPattern struct {
	Name   string
	Params []string
}

// Arity returns the parameter count.
func (p CallPattern) Arity() int {
	return len(p.Params)
}

// String renders the pattern back in call syntax.
func (p CallPattern) String() string {
	return p.Name + "(" + strings.Join(p.Params, ", ") + ")"
}

// ParsePattern parses call syntax like "put(opts, key, value)". A bare
// name or an empty parameter list both mean arity 0. Names may end in "?"
// or "!"; parameters are plain identifiers. Errors always quote the
// offending pattern.
func ParsePattern(src string) (CallPattern, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return CallPattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidCallSyntax)
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if !isIdent(s, true) {
			return CallPattern{}, fmt.Errorf("%w: %q", ErrInvalidCallSyntax, src)
		}
		return CallPattern{Name: s}, nil
	}

	name := strings.TrimSpace(s[:open])
	if !isIdent(name, true) {
		return CallPattern{}, fmt.Errorf("%w: %q", ErrInvalidCallSyntax, src)
	}

	if !strings.HasSuffix(s, ")") {
		return CallPattern{}, fmt.Errorf("%w: %q: missing closing parenthesis", ErrInvalidCallSyntax, src)
	}
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if strings.ContainsAny(inner, "()") {
		return CallPattern{}, fmt.Errorf("%w: %q: nested parentheses", ErrInvalidCallSyntax, src)
	}

	p := CallPattern{Name: name}
	if inner == "" {
		return p, nil
	}

	seen := make(map[string]bool)
	for _, raw := range strings.Split(inner, ",") {
		param := strings.TrimSpace(raw)
		if !isIdent(param, false) {
			return CallPattern{}, fmt.Errorf("%w: %q: bad parameter %q", ErrInvalidCallSyntax, src, param)
		}
		if seen[param] {
			return CallPattern{}, fmt.Errorf("%w: %q: duplicate parameter %q", ErrInvalidCallSyntax, src, param)
		}
		seen[param] = true
		p.Params = append(p.Params, param)
	}
	return p, nil
}

// isIdent reports whether s is an identifier. Function names (allowSuffix)
// may carry a trailing "?" or "!".
func isIdent(s string, allowSuffix bool) bool {
	if allowSuffix {
		s = strings.TrimRight(s, "?!")
		if strings.ContainsAny(s, "?!") {
			return false
		}
	}
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
