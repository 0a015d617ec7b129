package vars

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc receives a message for every placeholder left unresolved.
type WarnFunc func(format string, args ...any)

// Expander replaces placeholders in strings and decoded documents.
type Expander struct {
	lookup    func(string) (string, bool)
	variables map[string]string
	funcs     map[string]Func
	warn      WarnFunc
}

type Option func(*Expander)

func New(opts ...Option) *Expander {
	e := &Expander{
		lookup:    os.LookupEnv,
		variables: make(map[string]string),
		funcs:     defaultFuncs(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLookup replaces os.LookupEnv for {{$NAME}} placeholders.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(e *Expander) {
		e.lookup = fn
	}
}

func WithVariables(vars map[string]string) Option {
	return func(e *Expander) {
		for k, v := range vars {
			e.variables[k] = v
		}
	}
}

func WithFunc(name string, fn Func) Option {
	return func(e *Expander) {
		e.funcs[name] = fn
	}
}

func WithWarnFunc(fn WarnFunc) Option {
	return func(e *Expander) {
		e.warn = fn
	}
}

func (e *Expander) warnf(format string, args ...any) {
	if e.warn != nil {
		e.warn(format, args...)
	}
}

// Expand resolves every placeholder in s.
func (e *Expander) Expand(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])
		if v, ok := e.resolve(expr); ok {
			return v
		}
		return match
	})
}

func (e *Expander) resolve(expr string) (string, bool) {
	if name, ok := strings.CutPrefix(expr, "$"); ok {
		if v, found := e.lookup(name); found {
			return v, true
		}
		e.warnf("unresolved environment variable: $%s", name)
		return "", false
	}

	if m := funcCallPattern.FindStringSubmatch(expr); m != nil {
		fn, ok := e.funcs[m[1]]
		if !ok {
			e.warnf("unknown function: %s", m[1])
			return "", false
		}
		v, err := fn(splitArgs(m[2]))
		if err != nil {
			e.warnf("%s: %v", expr, err)
			return "", false
		}
		return v, true
	}

	if v, ok := e.variables[expr]; ok {
		return v, true
	}
	e.warnf("unresolved variable: %s", expr)
	return "", false
}

// ExpandMap returns a copy of m with every value expanded.
func (e *Expander) ExpandMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = e.Expand(v)
	}
	return out
}

// ExpandValue walks a decoded YAML or JSON document and expands every string
// it contains. Keys are left alone.
func (e *Expander) ExpandValue(v any) any {
	switch t := v.(type) {
	case string:
		return e.Expand(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = e.ExpandValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = e.ExpandValue(val)
		}
		return out
	default:
		return v
	}
}

// ParseAssignments turns "key=value" pairs into a variable map.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid variable %q (use key=value)", p)
		}
		out[k] = v
	}
	return out, nil
}
