// Package client provides a transport-agnostic interface for the jobly service
// and an HTTP/JSON implementation that talks to the jobly REST API.
package client

import (
	"context"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// JoblyClient is the interface that jobly CLI commands use to communicate
// with the server. It is implemented by HTTPClient.
type JoblyClient interface {
	// Companies
	ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error)
	GetCompany(ctx context.Context, handle string) (*model.CompanyDetail, error)
	CreateCompany(ctx context.Context, c *model.Company) (*model.Company, error)
	UpdateCompany(ctx context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error)
	DeleteCompany(ctx context.Context, handle string) error

	// Jobs
	ListJobs(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	GetJob(ctx context.Context, title string) (*model.Job, error)
	CreateJob(ctx context.Context, req *CreateJobRequest) (*model.Job, error)
	UpdateJob(ctx context.Context, title string, patch sqlbuild.Payload) (*model.Job, error)
	DeleteJob(ctx context.Context, title string) error

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateJobRequest holds parameters for creating a job. The server assigns
// the id.
type CreateJobRequest struct {
	Title         string `json:"title"`
	Salary        *int   `json:"salary,omitempty"`
	Equity        string `json:"equity,omitempty"`
	CompanyHandle string `json:"companyHandle"`
}
