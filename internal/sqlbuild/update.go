package sqlbuild

import (
	"strings"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// Field is one name/value pair of a partial update.
type Field struct {
	Name  string
	Value any
}

// Payload is an ordered partial update. Its order decides placeholder
// numbering, so it is kept as a slice rather than a map.
type Payload []Field

// Names returns the field names in payload order.
func (p Payload) Names() []string {
	names := make([]string, len(p))
	for i, f := range p {
		names[i] = f.Name
	}
	return names
}

// Map returns the payload as a name -> value map, e.g. for event payloads.
func (p Payload) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, f := range p {
		m[f.Name] = f.Value
	}
	return m
}

// Update is the SET list of an UPDATE statement and its bind values.
// Assignments[i] always references Values[i] as $i+1.
type Update struct {
	Assignments []string
	Values      []any
}

// SetClause joins the assignments for use after SET.
func (u *Update) SetClause() string {
	return strings.Join(u.Assignments, ", ")
}

// Next returns the placeholder following the last assignment, used to bind
// the key in the WHERE clause.
func (u *Update) Next() string {
	return Placeholder(len(u.Values) + 1)
}

// Args returns the bind values followed by extra, without aliasing Values.
func (u *Update) Args(extra ...any) []any {
	args := make([]any, 0, len(u.Values)+len(extra))
	args = append(args, u.Values...)
	return append(args, extra...)
}

// BuildPartialUpdate produces `"column"=$N` assignments for every field of p,
// in order, with column names resolved through cols. Values are returned
// unchanged. An empty payload is an invalid-input error.
//
// Column names are quoted but not escaped. Callers must only pass field
// names that were checked against an allow-list.
//
//	{firstName: "Aliya", age: 32} => ["\"first_name\"=$1", "\"age\"=$2"], ["Aliya", 32]
func BuildPartialUpdate(p Payload, cols ColumnMap) (*Update, error) {
	if len(p) == 0 {
		return nil, model.InvalidInput("no data provided")
	}

	u := &Update{
		Assignments: make([]string, len(p)),
		Values:      make([]any, len(p)),
	}
	for i, f := range p {
		u.Assignments[i] = `"` + cols.Resolve(f.Name) + `"=` + Placeholder(i+1)
		u.Values[i] = f.Value
	}
	return u, nil
}
