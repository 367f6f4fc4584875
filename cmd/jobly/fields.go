package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// splitField splits "key=value" into (key, value, true).
// Returns ("", "", false) if there is no '=' or key is empty.
func splitField(s string) (string, string, bool) {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// rawOrString returns a json.RawMessage if v is a JSON number, boolean, null
// or quoted string. Anything else is returned as a plain string so it gets
// quoted on encode; `name=Acme` and `name="Acme"` send the same value.
func rawOrString(v string) any {
	if v == "" {
		return v
	}
	switch c := v[0]; {
	case c == '"', c == '-', c >= '0' && c <= '9', v == "true", v == "false", v == "null":
		if json.Valid([]byte(v)) {
			return json.RawMessage(v)
		}
	}
	return v
}

// parseSetFlags turns repeated --set key=value flags into an ordered patch.
// Flag order is preserved and repeating a key is an error.
func parseSetFlags(sets []string) (sqlbuild.Payload, error) {
	patch := make(sqlbuild.Payload, 0, len(sets))
	seen := make(map[string]bool, len(sets))
	for _, s := range sets {
		k, v, ok := splitField(s)
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", s)
		}
		if seen[k] {
			return nil, fmt.Errorf("field %q set more than once", k)
		}
		seen[k] = true
		patch = append(patch, sqlbuild.Field{Name: k, Value: rawOrString(v)})
	}
	return patch, nil
}
