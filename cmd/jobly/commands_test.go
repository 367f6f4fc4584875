package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alfredjeanlab/jobly/internal/client"
)

// cannedServer answers every request with body and records the last request.
type cannedServer struct {
	status int
	body   string

	method string
	uri    string
	sent   string
}

func (s *cannedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.method = r.Method
	s.uri = r.URL.RequestURI()
	data, _ := io.ReadAll(r.Body)
	s.sent = string(data)
	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 {
		w.WriteHeader(s.status)
	}
	_, _ = io.WriteString(w, s.body)
}

func useTestServer(t *testing.T, s *cannedServer) {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	joblyClient = client.NewHTTPClient(srv.URL, "")
	t.Cleanup(func() { joblyClient = nil; jsonOutput = false })
}

func runCmd(t *testing.T, cmd *cobra.Command, args []string, flags map[string]string) (string, error) {
	t.Helper()
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("set --%s: %v", k, err)
		}
	}
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

func TestCompaniesList_Filters(t *testing.T) {
	s := &cannedServer{body: `{"companies":[{"handle":"c1","name":"C1","description":"Desc1","numEmployees":1}]}`}
	useTestServer(t, s)

	out, err := runCmd(t, companiesListCmd, nil, map[string]string{"name": "c", "min-employees": "0"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if s.uri != "/v1/companies?minEmployees=0&name=c" {
		t.Errorf("uri = %q", s.uri)
	}
	if !strings.Contains(out, "c1") || !strings.Contains(out, "1 companies") {
		t.Errorf("output = %q", out)
	}
}

func TestCompaniesShow_NoJobs(t *testing.T) {
	s := &cannedServer{body: `{"company":{"handle":"c3","name":"C3","description":"Desc3","numEmployees":null,"jobs":[]}}`}
	useTestServer(t, s)

	out, err := runCmd(t, companiesShowCmd, []string{"c3"}, nil)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Employees:   -") || !strings.Contains(out, "Jobs:        none") {
		t.Errorf("output = %q", out)
	}
}

func TestCompaniesUpdate_SendsOrderedPatch(t *testing.T) {
	s := &cannedServer{body: `{"company":{"handle":"c1","name":"New","description":"Desc1","numEmployees":9}}`}
	useTestServer(t, s)

	if _, err := runCmd(t, companiesUpdateCmd, []string{"c1"}, map[string]string{"set": "numEmployees=9"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.method != http.MethodPatch || s.sent != `{"numEmployees":9}` {
		t.Errorf("request = %s %s", s.method, s.sent)
	}
}

func TestJobsCreate_JSONOutput(t *testing.T) {
	s := &cannedServer{status: http.StatusCreated, body: `{"job":{"id":5,"title":"new","salary":100,"equity":"0.1","companyHandle":"c1"}}`}
	useTestServer(t, s)
	jsonOutput = true

	out, err := runCmd(t, jobsCreateCmd, []string{"new"}, map[string]string{"company": "c1", "salary": "100", "equity": "0.1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.sent != `{"title":"new","salary":100,"equity":"0.1","companyHandle":"c1"}` {
		t.Errorf("body = %s", s.sent)
	}
	if !strings.Contains(out, `"id": 5`) {
		t.Errorf("output = %q", out)
	}
}

func TestJobsDelete_ErrorSurfaced(t *testing.T) {
	s := &cannedServer{status: http.StatusNotFound, body: `{"error":"no job: ghost"}`}
	useTestServer(t, s)

	_, err := runCmd(t, jobsDeleteCmd, []string{"ghost"}, nil)
	if err == nil || !strings.Contains(err.Error(), "no job: ghost") {
		t.Fatalf("err = %v", err)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	s := &cannedServer{status: http.StatusServiceUnavailable, body: `{"error":"database unavailable"}`}
	useTestServer(t, s)

	if _, err := runCmd(t, healthCmd, nil, nil); err == nil {
		t.Fatal("expected error from unhealthy server")
	}
}
