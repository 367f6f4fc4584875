package model

// CompanyFilter holds the optional criteria for listing companies.
// A nil pointer means the criterion was not provided.
type CompanyFilter struct {
	Name         *string `json:"name,omitempty"`         // case-insensitive substring
	MinEmployees *int    `json:"minEmployees,omitempty"` // exclusive
	MaxEmployees *int    `json:"maxEmployees,omitempty"` // exclusive
}

// JobFilter holds the optional criteria for listing jobs.
type JobFilter struct {
	Title     *string `json:"title,omitempty"`     // case-insensitive substring
	MinSalary *int    `json:"minSalary,omitempty"` // inclusive
	HasEquity bool    `json:"hasEquity,omitempty"` // equity > 0
}
