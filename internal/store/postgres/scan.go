package postgres

import (
	"database/sql"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanCompany scans a single row into a model.Company.
// The row must contain columns in the order defined by companyColumns.
func scanCompany(row scannable) (*model.Company, error) {
	var c model.Company
	var (
		description  sql.NullString
		numEmployees sql.NullInt64
		logoURL      sql.NullString
	)

	if err := row.Scan(
		&c.Handle,
		&c.Name,
		&description,
		&numEmployees,
		&logoURL,
	); err != nil {
		return nil, err
	}

	c.Description = description.String
	c.NumEmployees = intPtr(numEmployees)
	c.LogoURL = logoURL.String
	return &c, nil
}

// scanJob scans a single row into a model.Job.
// The row must contain columns in the order defined by jobColumns.
func scanJob(row scannable) (*model.Job, error) {
	var j model.Job
	var (
		salary sql.NullInt64
		equity sql.NullString
	)

	if err := row.Scan(
		&j.ID,
		&j.Title,
		&salary,
		&equity,
		&j.CompanyHandle,
	); err != nil {
		return nil, err
	}

	j.Salary = intPtr(salary)
	j.Equity = equity.String
	return &j, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// nullIntPtr converts a *int to sql.NullInt64 (nil → NULL).
func nullIntPtr(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

// nullString converts an empty string to sql.NullString{Valid: false}.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
