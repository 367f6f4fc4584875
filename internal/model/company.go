package model

// Company is an employer listed on the board. Handle is its natural key.
type Company struct {
	Handle       string `json:"handle"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	NumEmployees *int   `json:"numEmployees"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

// CompanyDetail is a company together with the jobs it posts.
type CompanyDetail struct {
	Company
	Jobs []*Job `json:"jobs"`
}
