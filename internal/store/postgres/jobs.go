package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// jobColumns is the column list used for SELECT and RETURNING on the jobs table.
const jobColumns = `id, title, salary, equity, company_handle`

var jobColumnMap = sqlbuild.ColumnMap{
	"companyHandle": "company_handle",
}

// jobTerms is evaluated in order: title, minimum salary, equity flag.
// The salary bound is inclusive; the equity flag never binds a value.
var jobTerms = []sqlbuild.Term[model.JobFilter]{
	sqlbuild.Bound("lower(title) ILIKE %s", func(f model.JobFilter) (any, bool) {
		if f.Title == nil {
			return nil, false
		}
		return sqlbuild.Contains(*f.Title), true
	}),
	sqlbuild.Bound("salary >= %s", func(f model.JobFilter) (any, bool) {
		if f.MinSalary == nil {
			return nil, false
		}
		return *f.MinSalary, true
	}),
	sqlbuild.Flag("equity > 0", func(f model.JobFilter) bool { return f.HasEquity }),
}

func queryCreateJob(ctx context.Context, db executor, j *model.Job) (*model.Job, error) {
	var existing string
	err := db.QueryRowContext(ctx, `SELECT title FROM jobs WHERE title = $1`, j.Title).Scan(&existing)
	if err == nil {
		return nil, model.Duplicate("duplicate job: %s", j.Title)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate job: %w", err)
	}

	row := db.QueryRowContext(ctx, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		j.Title,
		nullIntPtr(j.Salary),
		nullString(j.Equity),
		j.CompanyHandle,
	)
	created, err := scanJob(row)
	if err != nil {
		return nil, classifyWriteError(err, "job", j.Title)
	}
	return created, nil
}

func queryListJobs(ctx context.Context, db executor, filter model.JobFilter) ([]*model.Job, error) {
	where, args := sqlbuild.Where(filter, jobTerms)

	q := `SELECT ` + jobColumns + ` FROM jobs`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY title`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func queryGetJob(ctx context.Context, db executor, title string) (*model.Job, error) {
	row := db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE title = $1`, title)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFound("no job: %s", title)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func queryUpdateJob(ctx context.Context, db executor, title string, patch sqlbuild.Payload) (*model.Job, error) {
	upd, err := sqlbuild.BuildPartialUpdate(patch, jobColumnMap)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		UPDATE jobs
		SET `+upd.SetClause()+`
		WHERE title = `+upd.Next()+`
		RETURNING `+jobColumns,
		upd.Args(title)...,
	)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFound("no job: %s", title)
	}
	if err != nil {
		return nil, classifyWriteError(err, "job", title)
	}
	return j, nil
}

func queryDeleteJob(ctx context.Context, db executor, title string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.NotFound("no job: %s", title)
	}
	return nil
}

func collectJobs(rows *sql.Rows) ([]*model.Job, error) {
	jobs := []*model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan jobs: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	return jobs, nil
}
