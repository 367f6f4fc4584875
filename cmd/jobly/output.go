package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alfredjeanlab/jobly/internal/model"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// orDash renders an absent value as "-".
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func printCompany(w io.Writer, c *model.Company) {
	fmt.Fprintf(w, "Handle:      %s\n", c.Handle)
	fmt.Fprintf(w, "Name:        %s\n", c.Name)
	fmt.Fprintf(w, "Employees:   %s\n", intOrDash(c.NumEmployees))
	if c.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", c.Description)
	}
	if c.LogoURL != "" {
		fmt.Fprintf(w, "Logo:        %s\n", c.LogoURL)
	}
}

func printCompanyDetail(w io.Writer, c *model.CompanyDetail) {
	printCompany(w, &c.Company)
	if len(c.Jobs) == 0 {
		fmt.Fprintln(w, "Jobs:        none")
		return
	}
	fmt.Fprintln(w, "Jobs:")
	for _, j := range c.Jobs {
		fmt.Fprintf(w, "  %s (salary %s, equity %s)\n", j.Title, intOrDash(j.Salary), orDash(j.Equity))
	}
}

func printCompanyList(w io.Writer, companies []*model.Company) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tNAME\tEMPLOYEES\tDESCRIPTION")
	for _, c := range companies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Handle, c.Name, intOrDash(c.NumEmployees), truncate(c.Description, 50))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d companies\n", len(companies))
}

func printJob(w io.Writer, j *model.Job) {
	fmt.Fprintf(w, "ID:          %d\n", j.ID)
	fmt.Fprintf(w, "Title:       %s\n", j.Title)
	fmt.Fprintf(w, "Salary:      %s\n", intOrDash(j.Salary))
	fmt.Fprintf(w, "Equity:      %s\n", orDash(j.Equity))
	fmt.Fprintf(w, "Company:     %s\n", j.CompanyHandle)
}

func printJobList(w io.Writer, jobs []*model.Job) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSALARY\tEQUITY\tCOMPANY")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", j.ID, truncate(j.Title, 50), intOrDash(j.Salary), orDash(j.Equity), j.CompanyHandle)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d jobs\n", len(jobs))
}
