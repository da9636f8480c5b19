package artifact

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"falcon9/internal/model"
)

// Slot holds the process-wide artifact. It is written at most once.
type Slot struct {
	v atomic.Pointer[Loaded]
}

// Set stores l if the slot is still empty and reports whether it did.
func (s *Slot) Set(l *Loaded) bool {
	if l == nil || l.Pipeline == nil {
		return false
	}
	return s.v.CompareAndSwap(nil, l)
}

func (s *Slot) Get() *Loaded {
	return s.v.Load()
}

// Model returns the held pipeline, or nil before the first successful load.
func (s *Slot) Model() *model.Pipeline {
	if l := s.v.Load(); l != nil {
		return l.Pipeline
	}
	return nil
}

// Current returns the held artifact as a classifier.
func (s *Slot) Current() (model.Artifact, bool) {
	l := s.v.Load()
	if l == nil {
		return nil, false
	}
	return l.Pipeline, true
}

// Retrier fills a Slot from a Loader. Once the slot is filled further calls
// are no-ops.
type Retrier struct {
	Loader *Loader
	Slot   *Slot
	Logger *zap.Logger

	mu sync.Mutex
}

// Ensure loads the artifact unless one is already held. It returns the held
// artifact or the load error.
func (r *Retrier) Ensure(ctx context.Context) (*Loaded, error) {
	l, _, err := r.ensure(ctx)
	return l, err
}

func (r *Retrier) ensure(ctx context.Context) (l *Loaded, loaded bool, err error) {
	if l := r.Slot.Get(); l != nil {
		return l, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l := r.Slot.Get(); l != nil {
		return l, false, nil
	}
	l, err = r.Loader.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	loaded = r.Slot.Set(l)
	return r.Slot.Get(), loaded, nil
}

// Run is the cron job body. It reports whether this call filled the slot.
func (r *Retrier) Run(ctx context.Context) bool {
	if r.Slot.Get() != nil {
		return false
	}
	_, loaded, err := r.ensure(ctx)
	if err != nil && r.Logger != nil {
		r.Logger.Warn("artifact load retry failed", zap.Error(err))
	}
	return loaded
}
