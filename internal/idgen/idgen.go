// Package idgen generates request correlation IDs backed by nanoid.
package idgen

import (
	"fmt"
	"regexp"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// RequestPrefix is prepended to every generated request ID.
	RequestPrefix = "req-"

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 12

	// maxInboundLength caps caller-supplied IDs accepted by Accept.
	maxInboundLength = 64
)

var inboundPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// RequestID returns a new ID such as "req-V1StGXR8Z5jd".
func RequestID() (string, error) {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return RequestPrefix + id, nil
}

// Accept returns the caller-supplied ID when it is safe to echo into logs and
// response headers. Otherwise a fresh ID is generated.
func Accept(inbound string) (string, error) {
	if inbound != "" && len(inbound) <= maxInboundLength && inboundPattern.MatchString(inbound) {
		return inbound, nil
	}
	return RequestID()
}
