package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// companyColumns is the column list used for SELECT and RETURNING on the companies table.
const companyColumns = `handle, name, description, num_employees, logo_url`

// companyColumnMap renames the camelCase update fields that differ from their columns.
var companyColumnMap = sqlbuild.ColumnMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// companyTerms is evaluated in order: name, then the employee bounds.
// Both bounds are exclusive.
var companyTerms = []sqlbuild.Term[model.CompanyFilter]{
	sqlbuild.Bound("lower(name) ILIKE %s", func(f model.CompanyFilter) (any, bool) {
		if f.Name == nil {
			return nil, false
		}
		return sqlbuild.Contains(*f.Name), true
	}),
	sqlbuild.Bound("num_employees > %s", func(f model.CompanyFilter) (any, bool) {
		if f.MinEmployees == nil {
			return nil, false
		}
		return *f.MinEmployees, true
	}),
	sqlbuild.Bound("num_employees < %s", func(f model.CompanyFilter) (any, bool) {
		if f.MaxEmployees == nil {
			return nil, false
		}
		return *f.MaxEmployees, true
	}),
}

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateCompany(ctx context.Context, db executor, c *model.Company) (*model.Company, error) {
	var existing string
	err := db.QueryRowContext(ctx, `SELECT handle FROM companies WHERE handle = $1`, c.Handle).Scan(&existing)
	if err == nil {
		return nil, model.Duplicate("duplicate company: %s", c.Handle)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate company: %w", err)
	}

	row := db.QueryRowContext(ctx, `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Handle,
		c.Name,
		c.Description,
		nullIntPtr(c.NumEmployees),
		nullString(c.LogoURL),
	)
	created, err := scanCompany(row)
	if err != nil {
		return nil, classifyWriteError(err, "company", c.Handle)
	}
	return created, nil
}

func queryListCompanies(ctx context.Context, db executor, filter model.CompanyFilter) ([]*model.Company, error) {
	where, args := sqlbuild.Where(filter, companyTerms)

	q := `SELECT ` + companyColumns + ` FROM companies`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []*model.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan companies: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan companies: %w", err)
	}
	return companies, nil
}

func queryGetCompany(ctx context.Context, db executor, handle string) (*model.Company, error) {
	row := db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFound("no company: %s", handle)
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func queryUpdateCompany(ctx context.Context, db executor, handle string, patch sqlbuild.Payload) (*model.Company, error) {
	upd, err := sqlbuild.BuildPartialUpdate(patch, companyColumnMap)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		UPDATE companies
		SET `+upd.SetClause()+`
		WHERE handle = `+upd.Next()+`
		RETURNING `+companyColumns,
		upd.Args(handle)...,
	)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFound("no company: %s", handle)
	}
	if err != nil {
		return nil, classifyWriteError(err, "company", handle)
	}
	return c, nil
}

func queryDeleteCompany(ctx context.Context, db executor, handle string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.NotFound("no company: %s", handle)
	}
	return nil
}

func queryListCompanyJobs(ctx context.Context, db executor, handle string) ([]*model.Job, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE company_handle = $1
		ORDER BY title`,
		handle,
	)
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}
