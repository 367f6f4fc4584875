package server

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
	"github.com/alfredjeanlab/jobly/internal/store"
)

// mockStore is an in-memory store.Store with the same error classification
// as the postgres store.
type mockStore struct {
	companies map[string]*model.Company
	jobs      map[string]*model.Job
	nextJobID int64

	// failWith, when non-nil, is returned by every data method.
	failWith error
	pingErr  error
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		companies: make(map[string]*model.Company),
		jobs:      make(map[string]*model.Job),
	}
}

func (m *mockStore) CreateCompany(_ context.Context, c *model.Company) (*model.Company, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.companies[c.Handle]; ok {
		return nil, model.Duplicate("duplicate company: %s", c.Handle)
	}
	clone := *c
	m.companies[c.Handle] = &clone
	out := clone
	return &out, nil
}

func (m *mockStore) ListCompanies(_ context.Context, f model.CompanyFilter) ([]*model.Company, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*model.Company{}
	for _, c := range m.companies {
		if f.Name != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*f.Name)) {
			continue
		}
		if f.MinEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees <= *f.MinEmployees) {
			continue
		}
		if f.MaxEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees >= *f.MaxEmployees) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) GetCompany(_ context.Context, handle string) (*model.Company, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	c, ok := m.companies[handle]
	if !ok {
		return nil, model.NotFound("no company: %s", handle)
	}
	clone := *c
	return &clone, nil
}

func (m *mockStore) UpdateCompany(_ context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if len(patch) == 0 {
		return nil, model.InvalidInput("no data provided")
	}
	c, ok := m.companies[handle]
	if !ok {
		return nil, model.NotFound("no company: %s", handle)
	}
	next := *c
	for _, f := range patch {
		switch f.Name {
		case "name":
			next.Name = f.Value.(string)
		case "description":
			next.Description = f.Value.(string)
		case "numEmployees":
			next.NumEmployees = intFromValue(f.Value)
		case "logoUrl":
			next.LogoURL, _ = f.Value.(string)
		}
	}
	m.companies[handle] = &next
	out := next
	return &out, nil
}

func (m *mockStore) DeleteCompany(_ context.Context, handle string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.companies[handle]; !ok {
		return model.NotFound("no company: %s", handle)
	}
	delete(m.companies, handle)
	for title, j := range m.jobs {
		if j.CompanyHandle == handle {
			delete(m.jobs, title)
		}
	}
	return nil
}

func (m *mockStore) ListCompanyJobs(_ context.Context, handle string) ([]*model.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*model.Job{}
	for _, j := range m.jobs {
		if j.CompanyHandle == handle {
			clone := *j
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockStore) CreateJob(_ context.Context, j *model.Job) (*model.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.jobs[j.Title]; ok {
		return nil, model.Duplicate("duplicate job: %s", j.Title)
	}
	if _, ok := m.companies[j.CompanyHandle]; !ok {
		return nil, model.InvalidInput("job %s references an unknown company", j.Title)
	}
	m.nextJobID++
	clone := *j
	clone.ID = m.nextJobID
	m.jobs[j.Title] = &clone
	out := clone
	return &out, nil
}

func (m *mockStore) ListJobs(_ context.Context, f model.JobFilter) ([]*model.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*model.Job{}
	for _, j := range m.jobs {
		if f.Title != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Title)) {
			continue
		}
		if f.MinSalary != nil && (j.Salary == nil || *j.Salary < *f.MinSalary) {
			continue
		}
		if f.HasEquity && (j.Equity == "" || strings.Trim(j.Equity, "0.") == "") {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockStore) GetJob(_ context.Context, title string) (*model.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	j, ok := m.jobs[title]
	if !ok {
		return nil, model.NotFound("no job: %s", title)
	}
	clone := *j
	return &clone, nil
}

func (m *mockStore) UpdateJob(_ context.Context, title string, patch sqlbuild.Payload) (*model.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if len(patch) == 0 {
		return nil, model.InvalidInput("no data provided")
	}
	j, ok := m.jobs[title]
	if !ok {
		return nil, model.NotFound("no job: %s", title)
	}
	next := *j
	for _, f := range patch {
		switch f.Name {
		case "title":
			next.Title = f.Value.(string)
		case "salary":
			next.Salary = intFromValue(f.Value)
		case "equity":
			next.Equity, _ = f.Value.(string)
		case "companyHandle":
			next.CompanyHandle = f.Value.(string)
		}
	}
	if next.Title != title {
		if _, taken := m.jobs[next.Title]; taken {
			return nil, model.Duplicate("duplicate job: %s", title)
		}
	}
	if _, ok := m.companies[next.CompanyHandle]; !ok {
		return nil, model.InvalidInput("job %s references an unknown company", title)
	}
	delete(m.jobs, title)
	m.jobs[next.Title] = &next
	out := next
	return &out, nil
}

func (m *mockStore) DeleteJob(_ context.Context, title string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.jobs[title]; !ok {
		return model.NotFound("no job: %s", title)
	}
	delete(m.jobs, title)
	return nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Close() error { return nil }

func intFromValue(v any) *int {
	n, ok := v.(int64)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

// published is one event captured by recordingPublisher.
type published struct {
	topic string
	event any
}

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.topic
	}
	return out
}
