package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// PatchRule validates one field value of a partial update and returns it in
// the form bound to the database. Values arrive as decoded by a
// json.Decoder with UseNumber: string, json.Number, bool or nil.
type PatchRule func(val any) (any, error)

// CompanyPatchRules lists the fields a company update may carry.
// The handle is immutable once created.
var CompanyPatchRules = map[string]PatchRule{
	"name":         nameValue,
	"description":  stringValue,
	"numEmployees": countValue,
	"logoUrl":      urlValue,
}

// JobPatchRules lists the fields a job update may carry.
var JobPatchRules = map[string]PatchRule{
	"title":         nameValue,
	"salary":        countValue,
	"equity":        equityValue,
	"companyHandle": handleValue,
}

// CheckPatchField applies the rule registered for name.
func CheckPatchField(rules map[string]PatchRule, name string, val any) (any, error) {
	rule, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown field")
	}
	return rule(val)
}

func stringValue(val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	return s, nil
}

func nameValue(val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if err := checkName(s); err != nil {
		return nil, err
	}
	return s, nil
}

func handleValue(val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if err := checkHandle(s); err != nil {
		return nil, err
	}
	return s, nil
}

// countValue accepts null or a non-negative integer.
func countValue(val any) (any, error) {
	if val == nil {
		return nil, nil
	}
	n, ok := val.(json.Number)
	if !ok {
		return nil, fmt.Errorf("must be an integer")
	}
	i, err := n.Int64()
	if err != nil {
		return nil, fmt.Errorf("must be an integer")
	}
	if err := checkCount(i); err != nil {
		return nil, err
	}
	return i, nil
}

// equityValue accepts null, or a number or numeric string between 0 and 1.
// The original text is kept so NUMERIC precision is not lost to float64.
func equityValue(val any) (any, error) {
	var text string
	switch v := val.(type) {
	case nil:
		return nil, nil
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return nil, fmt.Errorf("must be a number between 0 and 1")
	}
	if err := checkEquity(text); err != nil {
		return nil, err
	}
	return text, nil
}

func urlValue(val any) (any, error) {
	if val == nil {
		return nil, nil
	}
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if err := checkURL(s); err != nil {
		return nil, err
	}
	return s, nil
}

// decimalPattern is the subset of NUMERIC input syntax accepted for equity.
// It excludes forms strconv understands but Postgres does not, such as hex
// floats, underscores, Inf and NaN.
var decimalPattern = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?$`)

func checkEquity(s string) error {
	if !decimalPattern.MatchString(s) {
		return fmt.Errorf("must be a number between 0 and 1")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number between 0 and 1")
	}
	if f < 0 || f > 1 {
		return fmt.Errorf("must be between 0 and 1, got %s", s)
	}
	return nil
}

func checkURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}
