package sqlbuild

import (
	"reflect"
	"testing"

	"github.com/alfredjeanlab/jobly/internal/model"
)

func TestColumnMapResolve(t *testing.T) {
	cols := ColumnMap{"numEmployees": "num_employees", "blank": ""}
	for _, tc := range []struct {
		name string
		want string
	}{
		{"numEmployees", "num_employees"},
		{"name", "name"},
		{"blank", ""},
	} {
		if got := cols.Resolve(tc.name); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}

	var nilMap ColumnMap
	if got := nilMap.Resolve("age"); got != "age" {
		t.Errorf("nil map Resolve(age) = %q, want age", got)
	}
}

func TestBuildPartialUpdate(t *testing.T) {
	for _, tc := range []struct {
		name        string
		payload     Payload
		cols        ColumnMap
		wantAssigns []string
		wantValues  []any
		wantSet     string
		wantNext    string
	}{
		{
			name:        "NoRenames",
			payload:     Payload{{"name", "nick"}, {"age", "28"}},
			cols:        ColumnMap{},
			wantAssigns: []string{`"name"=$1`, `"age"=$2`},
			wantValues:  []any{"nick", "28"},
			wantSet:     `"name"=$1, "age"=$2`,
			wantNext:    "$3",
		},
		{
			name:        "NumericValueKept",
			payload:     Payload{{"name", "nick"}, {"age", int64(28)}},
			wantAssigns: []string{`"name"=$1`, `"age"=$2`},
			wantValues:  []any{"nick", int64(28)},
			wantSet:     `"name"=$1, "age"=$2`,
			wantNext:    "$3",
		},
		{
			name:        "SingleRename",
			payload:     Payload{{"name", "nick"}},
			cols:        ColumnMap{"name": "full_name"},
			wantAssigns: []string{`"full_name"=$1`},
			wantValues:  []any{"nick"},
			wantSet:     `"full_name"=$1`,
			wantNext:    "$2",
		},
		{
			name:        "PartialRename",
			payload:     Payload{{"name", "nick"}, {"age", "28"}},
			cols:        ColumnMap{"name": "full_name"},
			wantAssigns: []string{`"full_name"=$1`, `"age"=$2`},
			wantValues:  []any{"nick", "28"},
			wantSet:     `"full_name"=$1, "age"=$2`,
			wantNext:    "$3",
		},
		{
			name:        "AllRenamed",
			payload:     Payload{{"name", "nick"}, {"age", "28"}},
			cols:        ColumnMap{"name": "full_name", "age": "user_age"},
			wantAssigns: []string{`"full_name"=$1`, `"user_age"=$2`},
			wantValues:  []any{"nick", "28"},
			wantSet:     `"full_name"=$1, "user_age"=$2`,
			wantNext:    "$3",
		},
		{
			name:        "NullValue",
			payload:     Payload{{"logoUrl", nil}},
			cols:        ColumnMap{"logoUrl": "logo_url"},
			wantAssigns: []string{`"logo_url"=$1`},
			wantValues:  []any{nil},
			wantSet:     `"logo_url"=$1`,
			wantNext:    "$2",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			u, err := BuildPartialUpdate(tc.payload, tc.cols)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(u.Assignments, tc.wantAssigns) {
				t.Errorf("Assignments = %q, want %q", u.Assignments, tc.wantAssigns)
			}
			if !reflect.DeepEqual(u.Values, tc.wantValues) {
				t.Errorf("Values = %v, want %v", u.Values, tc.wantValues)
			}
			if got := u.SetClause(); got != tc.wantSet {
				t.Errorf("SetClause() = %q, want %q", got, tc.wantSet)
			}
			if got := u.Next(); got != tc.wantNext {
				t.Errorf("Next() = %q, want %q", got, tc.wantNext)
			}
		})
	}
}

func TestBuildPartialUpdate_PlaceholdersAligned(t *testing.T) {
	for k := 1; k <= 12; k++ {
		var p Payload
		for i := 0; i < k; i++ {
			p = append(p, Field{Name: string(rune('a' + i)), Value: i})
		}
		u, err := BuildPartialUpdate(p, nil)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		if len(u.Assignments) != k || len(u.Values) != k {
			t.Fatalf("k=%d: got %d assignments, %d values", k, len(u.Assignments), len(u.Values))
		}
		for i, a := range u.Assignments {
			want := `"` + p[i].Name + `"=` + Placeholder(i+1)
			if a != want {
				t.Errorf("k=%d: assignment %d = %q, want %q", k, i, a, want)
			}
			if u.Values[i] != p[i].Value {
				t.Errorf("k=%d: value %d = %v, want %v", k, i, u.Values[i], p[i].Value)
			}
		}
	}
}

func TestBuildPartialUpdate_Empty(t *testing.T) {
	for _, p := range []Payload{nil, {}} {
		_, err := BuildPartialUpdate(p, ColumnMap{})
		if err == nil {
			t.Fatal("expected error for empty payload")
		}
		if model.KindOf(err) != model.KindInvalidInput {
			t.Fatalf("expected invalid input, got %v (%v)", model.KindOf(err), err)
		}
	}
	if _, err := BuildPartialUpdate(nil, nil); model.KindOf(err) != model.KindInvalidInput {
		t.Fatalf("expected invalid input with nil column map, got %v", err)
	}
}

func TestUpdateArgsDoesNotAlias(t *testing.T) {
	u, err := BuildPartialUpdate(Payload{{"a", 1}, {"b", 2}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args := u.Args("key")
	args[0] = 99
	if u.Values[0] != 1 {
		t.Fatalf("Args aliased Values: %v", u.Values)
	}
	if !reflect.DeepEqual(args, []any{99, 2, "key"}) {
		t.Fatalf("Args = %v", args)
	}
}

func TestPayloadHelpers(t *testing.T) {
	p := Payload{{"title", "love"}, {"salary", int64(5)}}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"title", "salary"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := p.Map(); got["title"] != "love" || got["salary"] != int64(5) {
		t.Errorf("Map() = %v", got)
	}
}
