package sync

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
	"github.com/alfredjeanlab/jobly/internal/store"
)

var errNotUsed = errors.New("not used by sync")

// mockStore serves fixed company and job lists. Only the read paths used by
// ExportJSONL are implemented.
type mockStore struct {
	companies []*model.Company
	jobs      []*model.Job
	listErr   error
	txCount   int
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore { return &mockStore{} }

func (m *mockStore) ListCompanies(context.Context, model.CompanyFilter) ([]*model.Company, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]*model.Company(nil), m.companies...), nil
}

func (m *mockStore) ListJobs(context.Context, model.JobFilter) ([]*model.Job, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]*model.Job(nil), m.jobs...), nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	m.txCount++
	return fn(m)
}

func (m *mockStore) CreateCompany(context.Context, *model.Company) (*model.Company, error) {
	return nil, errNotUsed
}

func (m *mockStore) GetCompany(context.Context, string) (*model.Company, error) {
	return nil, errNotUsed
}

func (m *mockStore) UpdateCompany(context.Context, string, sqlbuild.Payload) (*model.Company, error) {
	return nil, errNotUsed
}

func (m *mockStore) DeleteCompany(context.Context, string) error { return errNotUsed }

func (m *mockStore) ListCompanyJobs(context.Context, string) ([]*model.Job, error) {
	return nil, errNotUsed
}

func (m *mockStore) CreateJob(context.Context, *model.Job) (*model.Job, error) {
	return nil, errNotUsed
}

func (m *mockStore) GetJob(context.Context, string) (*model.Job, error) { return nil, errNotUsed }

func (m *mockStore) UpdateJob(context.Context, string, sqlbuild.Payload) (*model.Job, error) {
	return nil, errNotUsed
}

func (m *mockStore) DeleteJob(context.Context, string) error { return errNotUsed }

func (m *mockStore) Ping(context.Context) error { return nil }

func (m *mockStore) Close() error { return nil }
