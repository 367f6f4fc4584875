// Package sqlbuild turns sparse caller input into parameterized SQL fragments
// for PostgreSQL: SET lists for partial updates and WHERE clauses for
// optional filters. Values are always returned for binding, never
// interpolated into the SQL text.
package sqlbuild

import "strconv"

// ColumnMap maps external field names (e.g. "numEmployees") to column
// names (e.g. "num_employees"). Names without an entry are used as given.
// A nil ColumnMap is valid.
type ColumnMap map[string]string

// Resolve returns m[name] whenever name has an entry, even an empty one,
// and name itself otherwise.
func (m ColumnMap) Resolve(name string) string {
	if col, ok := m[name]; ok {
		return col
	}
	return name
}

// Placeholder returns the positional parameter for the 1-based index n.
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
