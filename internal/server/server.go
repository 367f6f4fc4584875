// Package server exposes the company and job accessors over HTTP, a
// Server-Sent Events stream of changes, and a gRPC listener carrying the
// standard health service.
package server

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/jobly/internal/events"
	"github.com/alfredjeanlab/jobly/internal/store"
)

// JoblyServer serves the jobly HTTP API backed by a store. Successful
// mutations are announced on the publisher and the change feed.
type JoblyServer struct {
	store     store.Store
	publisher events.Publisher
	feed      *changeFeed
}

// NewJoblyServer returns a new JoblyServer backed by the given store and publisher.
func NewJoblyServer(s store.Store, p events.Publisher) *JoblyServer {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &JoblyServer{store: s, publisher: p, feed: newChangeFeed(feedHistorySize)}
}

// publish emits an event after a committed write, to the publisher and to
// connected event streams. Delivery is best-effort: failures are logged and
// never fail the request.
func (s *JoblyServer) publish(ctx context.Context, topic, key string, event any) {
	s.broadcastEvent(topic, key, event)
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "key", key, "error", err)
	}
}
