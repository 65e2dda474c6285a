package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/utils/logger"
	"go.uber.org/zap"
)

// Lister is the read side a Synchronizer polls; CatalogApp satisfies it.
type Lister interface {
	List(ctx context.Context, viewer model.Viewer) ([]model.ListingEntity, error)
}

// Synchronizer keeps one viewer's snapshot of a catalog store fresh by
// re-listing on a fixed period. Ticks do not wait for the previous fetch;
// reads are idempotent, so overlapping requests are fine. The snapshot is
// replaced whole by whichever response completes last in issue order: a
// late-arriving response from an older tick is discarded once a newer one
// has landed. Stopping the synchronizer orphans in-flight fetches, which
// then leave the snapshot alone.
type Synchronizer struct {
	lister   Lister
	viewer   model.Viewer
	interval time.Duration

	mu       sync.Mutex
	snapshot []model.ListingEntity
	issued   uint64
	applied  uint64

	cancel context.CancelFunc
}

func NewSynchronizer(lister Lister, viewer model.Viewer, interval time.Duration) *Synchronizer {
	return &Synchronizer{
		lister:   lister,
		viewer:   viewer,
		interval: interval,
	}
}

// Start begins polling. The first refresh is issued immediately, then one
// per interval until Stop is called or ctx is cancelled.
func (s *Synchronizer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Synchronizer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Snapshot returns the most recently completed listing view.
func (s *Synchronizer) Snapshot() []model.ListingEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ListingEntity, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *Synchronizer) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.issue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.issue(ctx)
		}
	}
}

func (s *Synchronizer) issue(ctx context.Context) {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	go s.fetch(ctx, gen)
}

func (s *Synchronizer) fetch(ctx context.Context, gen uint64) {
	items, err := s.lister.List(ctx, s.viewer)
	if err != nil {
		logger.Warn("[Synchronizer] refresh failed", zap.Uint64("generation", gen), zap.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		// Torn down while this fetch was in flight.
		return
	}
	if gen <= s.applied {
		// A later-issued response already landed.
		return
	}
	s.applied = gen
	s.snapshot = items
}
