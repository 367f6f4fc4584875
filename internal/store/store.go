package store

import (
	"context"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// Store defines the persistence interface for companies and jobs.
//
// Failures are classified with model.KindOf: lookups by natural key that
// match nothing are KindNotFound, creates that collide are KindDuplicate and
// empty or malformed updates are KindInvalidInput. Anything else is a
// storage error.
type Store interface {
	// Companies, keyed by handle.
	CreateCompany(ctx context.Context, company *model.Company) (*model.Company, error)
	ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error)
	GetCompany(ctx context.Context, handle string) (*model.Company, error)
	UpdateCompany(ctx context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error)
	DeleteCompany(ctx context.Context, handle string) error
	ListCompanyJobs(ctx context.Context, handle string) ([]*model.Job, error)

	// Jobs, keyed by title.
	CreateJob(ctx context.Context, job *model.Job) (*model.Job, error)
	ListJobs(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	GetJob(ctx context.Context, title string) (*model.Job, error)
	UpdateJob(ctx context.Context, title string, patch sqlbuild.Payload) (*model.Job, error)
	DeleteJob(ctx context.Context, title string) error

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
