// Package domain contains the core model for the configuration document,
// the expression language, the job graph and the environment scope.
package domain

import "regexp"

// Expr is a deferred configuration value. Scalars in the document that carry
// an expression tag are parsed into one of the closed set of variants below
// and resolved later by the evaluator, in dependency order.
//
// Every variant is pure given its resolved inputs except ShellPredicate and
// ShellCapture, which spawn a process and are therefore memoized by identity
// (pointer), not by textual equality.
type Expr interface {
	expr()
}

// Literal wraps a plain string or bool that needs no resolution.
type Literal struct {
	Val any
}

// EnvSubst is a template containing ${name} placeholders. Names that resolve
// neither through the named-value table nor the initial environment are left
// intact for the spawned shell; that deferral is the point of the variant.
type EnvSubst struct {
	Template string
}

// ShellPredicate runs a command and reports whether it exited zero
// (non-zero when negated). A non-zero exit is the signal, not an error.
type ShellPredicate struct {
	Command string
	Negate  bool
}

// ShellCapture runs a command and resolves to its trimmed standard output.
type ShellCapture struct {
	Command string
}

// Join concatenates its parts with a separator ("" or " ").
type Join struct {
	Parts []Expr
	Sep   string
}

// PathJoin joins its parts with "/" and normalizes the result as a
// filesystem path: `~` expansion, `..` collapsing, and resolution relative
// to the project home when the joined path is relative.
type PathJoin struct {
	Parts []Expr
}

// URLJoin joins its parts with no separator and validates the result as a URL.
type URLJoin struct {
	Parts []Expr
}

// Exists joins its parts like PathJoin and tests filesystem presence.
type Exists struct {
	Parts  []Expr
	Negate bool
}

func (*Literal) expr()        {}
func (*EnvSubst) expr()       {}
func (*ShellPredicate) expr() {}
func (*ShellCapture) expr()   {}
func (*Join) expr()           {}
func (*PathJoin) expr()       {}
func (*URLJoin) expr()        {}
func (*Exists) expr()         {}

var placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)

// ScanPlaceholders returns the distinct ${name} references in a template,
// in order of first appearance.
func ScanPlaceholders(s string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// ExpandPlaceholders replaces each ${name} in s through lookup. Names the
// lookup does not know stay as written; only the brace form is a
// placeholder, a bare $name belongs to the shell.
func ExpandPlaceholders(s string, lookup func(string) (string, bool)) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := lookup(name); ok {
			return v
		}
		return match
	})
}

// References returns the names an expression depends on, for ordering the
// resolution of the named-value table. Shell probes keep their ${name}
// references too: the referenced values must be resolved before the probe
// runs so they can be passed in its environment.
func References(e Expr) []string {
	switch v := e.(type) {
	case *EnvSubst:
		return ScanPlaceholders(v.Template)
	case *ShellPredicate:
		return ScanPlaceholders(v.Command)
	case *ShellCapture:
		return ScanPlaceholders(v.Command)
	case *Join:
		return partRefs(v.Parts)
	case *PathJoin:
		return partRefs(v.Parts)
	case *URLJoin:
		return partRefs(v.Parts)
	case *Exists:
		return partRefs(v.Parts)
	default:
		return nil
	}
}

func partRefs(parts []Expr) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range parts {
		for _, n := range References(p) {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}
