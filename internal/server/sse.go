package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alfredjeanlab/jobly/internal/events"
)

const (
	// feedHistorySize is how many recent changes are kept for Last-Event-ID
	// replay.
	feedHistorySize = 1000

	// feedKeepalive is how often an idle stream receives a comment line.
	feedKeepalive = 15 * time.Second

	// watcherBuffer is the per-stream backlog; a stream that falls further
	// behind misses changes.
	watcherBuffer = 64
)

// change is one committed write as seen by stream clients.
type change struct {
	Seq   uint64
	Topic string
	Key   string // company handle or job title
	Data  []byte // JSON event payload
}

// changeFeed fans company and job changes out to Server-Sent Events streams
// and retains the most recent ones so a reconnecting client can catch up.
type changeFeed struct {
	mu       sync.Mutex
	seq      uint64
	history  []change // oldest first, at most size entries
	size     int
	watchers map[*watcher]struct{}
}

// watcher is one connected stream.
type watcher struct {
	topics []string // events.Match patterns; empty follows every topic
	key    string   // empty follows every record
	ch     chan change
}

func newChangeFeed(size int) *changeFeed {
	return &changeFeed{size: size, watchers: make(map[*watcher]struct{})}
}

// publish records a change and hands it to every interested watcher. A
// watcher whose buffer is full misses the change.
func (f *changeFeed) publish(topic, key string, data []byte) change {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	c := change{Seq: f.seq, Topic: topic, Key: key, Data: data}
	if len(f.history) == f.size {
		copy(f.history, f.history[1:])
		f.history = f.history[:f.size-1]
	}
	f.history = append(f.history, c)

	for w := range f.watchers {
		if !w.wants(c) {
			continue
		}
		select {
		case w.ch <- c:
		default:
			slog.Warn("event stream lagging, dropping change", "topic", topic, "key", key, "seq", c.Seq)
		}
	}
	return c
}

// watch registers w and returns the retained changes numbered above after
// that w wants.
// Registration and the history read happen under one lock, so a change is
// either in the backlog or delivered on w.ch, never both or neither.
func (f *changeFeed) watch(w *watcher, after uint64) []change {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchers[w] = struct{}{}
	var backlog []change
	for _, c := range f.history {
		if c.Seq > after && w.wants(c) {
			backlog = append(backlog, c)
		}
	}
	return backlog
}

func (f *changeFeed) unwatch(w *watcher) {
	f.mu.Lock()
	delete(f.watchers, w)
	f.mu.Unlock()
}

func (w *watcher) wants(c change) bool {
	if w.key != "" && w.key != c.Key {
		return false
	}
	if len(w.topics) == 0 {
		return true
	}
	for _, p := range w.topics {
		if events.Match(p, c.Topic) {
			return true
		}
	}
	return false
}

// broadcastEvent encodes event and publishes it on the change feed.
func (s *JoblyServer) broadcastEvent(topic, key string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to encode event for stream", "topic", topic, "key", key, "error", err)
		return
	}
	s.feed.publish(topic, key, data)
}

// handleEventStream handles GET /v1/events/stream.
//
// Query parameters: topics (comma-separated patterns such as
// "jobly.job.*") and key (a company handle or job title). A Last-Event-ID
// header replays retained changes after that sequence number.
func (s *JoblyServer) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	var after uint64
	if v := r.Header.Get("Last-Event-ID"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Last-Event-ID: invalid sequence %q", v))
			return
		}
		after = n
	}

	wt := &watcher{
		topics: splitTopics(r.URL.Query().Get("topics")),
		key:    r.URL.Query().Get("key"),
		ch:     make(chan change, watcherBuffer),
	}
	backlog := s.feed.watch(wt, after)
	defer s.feed.unwatch(wt)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for _, c := range backlog {
		writeChange(w, c)
	}
	flusher.Flush()

	keepalive := time.NewTicker(feedKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-wt.ch:
			writeChange(w, c)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ":keepalive\n\n")
			flusher.Flush()
		}
	}
}

func splitTopics(q string) []string {
	var out []string
	for _, t := range strings.Split(q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// writeChange writes c as one SSE message.
func writeChange(w http.ResponseWriter, c change) {
	fmt.Fprintf(w, "id:%d\nevent:%s\ndata:%s\n\n", c.Seq, c.Topic, c.Data)
}
