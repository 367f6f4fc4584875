package server

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// maxBodyBytes caps request bodies read by the decoders.
const maxBodyBytes = 1 << 20

// decodeBody decodes a create request into v, rejecting unknown fields and
// trailing data.
func decodeBody(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return model.InvalidInput("invalid JSON body: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.InvalidInput("invalid JSON body: unexpected data after object")
	}
	return nil
}

// decodePatch reads a JSON object into a Payload, keeping the fields in
// document order. Each value is checked against rules; unknown, repeated or
// ill-typed fields are reported together as a *model.ValidationError.
// An empty object yields an empty Payload.
func decodePatch(r io.Reader, rules map[string]model.PatchRule) (sqlbuild.Payload, error) {
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, model.InvalidInput("invalid JSON body: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, model.InvalidInput("invalid JSON body: expected an object")
	}

	var (
		ve    model.ValidationError
		patch sqlbuild.Payload
		seen  = make(map[string]bool)
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, model.InvalidInput("invalid JSON body: %v", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, model.InvalidInput("invalid JSON body: expected a field name")
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, model.InvalidInput("invalid JSON body: %v", err)
		}

		if seen[name] {
			ve.Add(name, "given more than once")
			continue
		}
		seen[name] = true

		val, err := model.CheckPatchField(rules, name, raw)
		if err != nil {
			ve.Add(name, "%v", err)
			continue
		}
		patch = append(patch, sqlbuild.Field{Name: name, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return nil, model.InvalidInput("invalid JSON body: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, model.InvalidInput("invalid JSON body: unexpected data after object")
	}

	if ve.HasErrors() {
		return nil, &ve
	}
	return patch, nil
}

// numberText returns the literal text of an optional JSON number.
func numberText(n *json.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}
