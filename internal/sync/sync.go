// Package sync periodically exports a JSONL snapshot of all companies and
// jobs to backup destinations.
package sync

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/jobly/internal/store"
)

// Snapshot is one JSONL export together with its summary.
type Snapshot struct {
	Summary
	Data []byte
}

// Destination is a snapshot target such as an S3 bucket.
type Destination interface {
	// Write sends the snapshot to the destination.
	Write(ctx context.Context, snap Snapshot) error
}

// Scheduler runs periodic syncs to one or more destinations.
type Scheduler struct {
	store        store.Store
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports from the store to the given
// destinations at the specified interval.
func NewScheduler(s store.Store, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:        s,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic sync. It runs an initial sync immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current sync (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	// Run once immediately at startup.
	s.SyncOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

// SyncOnce exports one snapshot and writes it to every destination. It
// returns the number of destinations that failed.
func (s *Scheduler) SyncOnce(ctx context.Context) int {
	var buf bytes.Buffer
	sum, err := ExportJSONL(ctx, s.store, &buf)
	if err != nil {
		s.logger.Error("sync export failed", "error", err)
		return len(s.destinations)
	}
	snap := Snapshot{Summary: sum, Data: buf.Bytes()}

	failed := 0
	for i, dest := range s.destinations {
		if err := dest.Write(ctx, snap); err != nil {
			failed++
			s.logger.Error("sync destination write failed", "destination", destinationName(i, dest), "error", err)
		}
	}

	s.logger.Info("sync completed",
		"destinations", len(s.destinations),
		"failed", failed,
		"companies", sum.Companies,
		"jobs", sum.Jobs,
		"bytes", len(snap.Data),
	)
	return failed
}

func destinationName(i int, dest Destination) string {
	if s, ok := dest.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%d", i)
}
