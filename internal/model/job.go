package model

// Job is a position posted by a company. Title is its natural key; ID is the
// surrogate key assigned by the database.
type Job struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Salary        *int   `json:"salary"`
	Equity        string `json:"equity,omitempty"` // decimal text, e.g. "0.05"
	CompanyHandle string `json:"companyHandle"`
}
