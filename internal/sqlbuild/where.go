package sqlbuild

import (
	"fmt"
	"strings"
)

// Term is one optional condition of a WHERE clause over criteria of type F.
// A bound term consumes one placeholder, marked %s in its expression; a flag
// term is a fixed expression.
type Term[F any] struct {
	expr  string
	bind  bool
	value func(F) (any, bool)
}

// Bound returns a term whose expression binds the value reported by value.
// The term is skipped when value reports false.
func Bound[F any](expr string, value func(F) (any, bool)) Term[F] {
	return Term[F]{expr: expr, bind: true, value: value}
}

// Flag returns a term with a fixed expression, included when on reports true.
func Flag[F any](expr string, on func(F) bool) Term[F] {
	return Term[F]{expr: expr, value: func(f F) (any, bool) { return nil, on(f) }}
}

// Where evaluates terms in order against f and AND-joins the present ones.
// Placeholders are numbered contiguously from $1 in term order. When no term
// is present both results are empty and the caller omits WHERE.
func Where[F any](f F, terms []Term[F]) (string, []any) {
	var (
		clauses []string
		args    []any
		argIdx  int
	)

	nextArg := func() string {
		argIdx++
		return Placeholder(argIdx)
	}

	for _, t := range terms {
		v, ok := t.value(f)
		if !ok {
			continue
		}
		if !t.bind {
			clauses = append(clauses, t.expr)
			continue
		}
		clauses = append(clauses, fmt.Sprintf(t.expr, nextArg()))
		args = append(args, v)
	}

	return strings.Join(clauses, " AND "), args
}

// Contains returns an ILIKE pattern matching s anywhere, lower-cased.
// LIKE metacharacters in s are escaped so they match literally.
func Contains(s string) string {
	s = strings.ToLower(s)
	s = likeEscaper.Replace(s)
	return "%" + s + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
