package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// PostgreSQL SQLSTATE codes mapped to model error kinds.
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeNumericOutOfRange   pq.ErrorCode = "22003"
	codeInvalidText         pq.ErrorCode = "22P02"
)

// uniqueColumns names the column behind each unique constraint of the schema.
var uniqueColumns = map[string]string{
	"companies_pkey":     "handle",
	"companies_name_key": "name",
	"jobs_pkey":          "id",
	"jobs_title_key":     "title",
}

// keyDetail matches the DETAIL of a unique violation,
// e.g. `Key (title)=(Engineer) already exists.`
var keyDetail = regexp.MustCompile(`^Key \((.+)\)=\((.*)\) already exists`)

// classifyWriteError maps constraint violations raised by an INSERT or UPDATE
// to model errors. The duplicate probe before insert is only an early exit;
// the unique constraint is what guarantees uniqueness under concurrency.
// key identifies the row being written, not necessarily the colliding value.
func classifyWriteError(err error, entity, key string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("write %s %s: %w", entity, key, err)
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		return duplicateError(entity, pqErr)
	case codeForeignKeyViolation:
		return model.InvalidInput("%s %s references an unknown company", entity, key)
	case codeCheckViolation:
		return model.InvalidInput("%s %s violates constraint %s", entity, key, pqErr.Constraint)
	case codeNumericOutOfRange, codeInvalidText:
		return model.InvalidInput("%s %s: %s", entity, key, pqErr.Message)
	}
	return fmt.Errorf("write %s %s: %w", entity, key, err)
}

// duplicateError names the colliding column, and its value when the server
// reports it.
func duplicateError(entity string, pqErr *pq.Error) error {
	if m := keyDetail.FindStringSubmatch(pqErr.Detail); m != nil {
		return model.Duplicate("duplicate %s %s: %s", entity, m[1], m[2])
	}
	if col, ok := uniqueColumns[pqErr.Constraint]; ok {
		return model.Duplicate("duplicate %s %s", entity, col)
	}
	return model.Duplicate("duplicate %s (constraint %s)", entity, pqErr.Constraint)
}
