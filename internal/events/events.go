// Package events defines the change notifications emitted after successful
// company and job writes, and the publishers that deliver them.
package events

import (
	"context"
	"strings"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// Event topics. Subscribe to AllTopics to receive every change.
const (
	TopicCompanyCreated = "jobly.company.created"
	TopicCompanyUpdated = "jobly.company.updated"
	TopicCompanyDeleted = "jobly.company.deleted"

	TopicJobCreated = "jobly.job.created"
	TopicJobUpdated = "jobly.job.updated"
	TopicJobDeleted = "jobly.job.deleted"

	AllTopics = "jobly.>"
)

// KeyHeader carries the natural key (company handle or job title) of the
// record an event describes.
const KeyHeader = "Jobly-Key"

// Keyed is implemented by every event type.
type Keyed interface {
	Key() string
}

type CompanyCreated struct {
	Company *model.Company `json:"company"`
}

type CompanyUpdated struct {
	Company *model.Company `json:"company"`
	Changes map[string]any `json:"changes"` // request field name -> new value
}

type CompanyDeleted struct {
	Handle string `json:"handle"`
}

func (e CompanyCreated) Key() string { return companyKey(e.Company) }
func (e CompanyUpdated) Key() string { return companyKey(e.Company) }
func (e CompanyDeleted) Key() string { return e.Handle }

func companyKey(c *model.Company) string {
	if c == nil {
		return ""
	}
	return c.Handle
}

type JobCreated struct {
	Job *model.Job `json:"job"`
}

type JobUpdated struct {
	Job     *model.Job     `json:"job"`
	Changes map[string]any `json:"changes"`
}

type JobDeleted struct {
	Title string `json:"title"`
}

func (e JobCreated) Key() string { return jobKey(e.Job) }
func (e JobUpdated) Key() string { return jobKey(e.Job) }
func (e JobDeleted) Key() string { return e.Title }

func jobKey(j *model.Job) string {
	if j == nil {
		return ""
	}
	return j.Title
}

// Match reports whether topic matches pattern. Patterns use NATS subject
// wildcards: "*" matches one token and a trailing ">" matches the rest.
func Match(pattern, topic string) bool {
	pp := strings.Split(pattern, ".")
	tp := strings.Split(topic, ".")
	for i, p := range pp {
		if p == ">" {
			return i == len(pp)-1 && len(tp) > i
		}
		if i >= len(tp) {
			return false
		}
		if p != "*" && p != tp[i] {
			return false
		}
	}
	return len(pp) == len(tp)
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
