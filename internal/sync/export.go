package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/store"
)

// FormatVersion is written in the header of every snapshot.
const FormatVersion = "1"

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	CompanyCount int       `json:"companyCount"`
	JobCount     int       `json:"jobCount"`
}

// Summary describes one exported snapshot.
type Summary struct {
	Companies int
	Jobs      int
	TakenAt   time.Time
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes every company (sorted by handle) then every job (sorted
// by title) to w as JSONL, preceded by a header line. Both lists are read in
// one transaction so the snapshot is consistent.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) (Summary, error) {
	var (
		companies []*model.Company
		jobs      []*model.Job
	)
	err := s.RunInTransaction(ctx, func(tx store.Store) error {
		var err error
		if companies, err = tx.ListCompanies(ctx, model.CompanyFilter{}); err != nil {
			return fmt.Errorf("list companies: %w", err)
		}
		if jobs, err = tx.ListJobs(ctx, model.JobFilter{}); err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	sort.Slice(companies, func(i, j int) bool { return companies[i].Handle < companies[j].Handle })
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Title < jobs[j].Title })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	sum := Summary{Companies: len(companies), Jobs: len(jobs), TakenAt: time.Now().UTC()}
	if err := enc.Encode(header{
		Version:      FormatVersion,
		Type:         "header",
		Timestamp:    sum.TakenAt,
		CompanyCount: sum.Companies,
		JobCount:     sum.Jobs,
	}); err != nil {
		return Summary{}, fmt.Errorf("encode header: %w", err)
	}

	for _, c := range companies {
		if err := enc.Encode(record{Type: "company", Data: c}); err != nil {
			return Summary{}, fmt.Errorf("encode company %s: %w", c.Handle, err)
		}
	}
	for _, j := range jobs {
		if err := enc.Encode(record{Type: "job", Data: j}); err != nil {
			return Summary{}, fmt.Errorf("encode job %s: %w", j.Title, err)
		}
	}

	return sum, nil
}
