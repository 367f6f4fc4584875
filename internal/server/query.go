package server

import (
	"net/url"
	"strconv"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// parseCompanyFilter reads name, minEmployees and maxEmployees from the query
// string. A parameter that is present, even empty, sets its criterion.
func parseCompanyFilter(q url.Values) (model.CompanyFilter, error) {
	var f model.CompanyFilter
	if q.Has("name") {
		v := q.Get("name")
		f.Name = &v
	}
	var err error
	if f.MinEmployees, err = intParam(q, "minEmployees"); err != nil {
		return f, err
	}
	if f.MaxEmployees, err = intParam(q, "maxEmployees"); err != nil {
		return f, err
	}
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return f, model.InvalidInput("minEmployees cannot be greater than maxEmployees")
	}
	return f, nil
}

// parseJobFilter reads title, minSalary and hasEquity from the query string.
// Only hasEquity=true enables the equity criterion.
func parseJobFilter(q url.Values) (model.JobFilter, error) {
	var f model.JobFilter
	if q.Has("title") {
		v := q.Get("title")
		f.Title = &v
	}
	var err error
	if f.MinSalary, err = intParam(q, "minSalary"); err != nil {
		return f, err
	}
	f.HasEquity = q.Get("hasEquity") == "true"
	return f, nil
}

func intParam(q url.Values, name string) (*int, error) {
	if !q.Has(name) {
		return nil, nil
	}
	n, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return nil, model.InvalidInput("%s: must be an integer", name)
	}
	if n < 0 {
		return nil, model.InvalidInput("%s: must be 0 or greater", name)
	}
	if n > model.MaxCount {
		return nil, model.InvalidInput("%s: must be %d or less", name, model.MaxCount)
	}
	return &n, nil
}
