package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Add appends a field error.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// MaxHandleLength is the longest company handle accepted.
const MaxHandleLength = 25

var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateCompany checks a Company for constraint violations before insert.
// It returns a *ValidationError if any rules fail, or nil if the company is valid.
func ValidateCompany(c *Company) error {
	var ve ValidationError

	if err := checkHandle(c.Handle); err != nil {
		ve.Add("handle", "%v", err)
	}
	if err := checkName(c.Name); err != nil {
		ve.Add("name", "%v", err)
	}
	if c.NumEmployees != nil {
		if err := checkCount(int64(*c.NumEmployees)); err != nil {
			ve.Add("numEmployees", "%v", err)
		}
	}
	if c.LogoURL != "" {
		if err := checkURL(c.LogoURL); err != nil {
			ve.Add("logoUrl", "%v", err)
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateJob checks a Job for constraint violations before insert.
func ValidateJob(j *Job) error {
	var ve ValidationError

	if err := checkName(j.Title); err != nil {
		ve.Add("title", "%v", err)
	}
	if j.Salary != nil {
		if err := checkCount(int64(*j.Salary)); err != nil {
			ve.Add("salary", "%v", err)
		}
	}
	if j.Equity != "" {
		if err := checkEquity(j.Equity); err != nil {
			ve.Add("equity", "%v", err)
		}
	}
	if err := checkHandle(j.CompanyHandle); err != nil {
		ve.Add("companyHandle", "%v", err)
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// MaxCount is the largest value accepted for integer fields and bounds,
// the range of a Postgres INTEGER column.
const MaxCount = math.MaxInt32

func checkCount(n int64) error {
	switch {
	case n < 0:
		return fmt.Errorf("must be 0 or greater, got %d", n)
	case n > MaxCount:
		return fmt.Errorf("must be %d or less, got %d", MaxCount, n)
	}
	return nil
}

func checkHandle(h string) error {
	switch {
	case h == "":
		return fmt.Errorf("is required")
	case len(h) > MaxHandleLength:
		return fmt.Errorf("must be %d characters or fewer", MaxHandleLength)
	case !handlePattern.MatchString(h):
		return fmt.Errorf("must contain only lowercase letters, digits and dashes")
	}
	return nil
}

func checkName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("is required")
	}
	if len([]rune(s)) > 255 {
		return fmt.Errorf("must be 255 characters or fewer")
	}
	return nil
}
