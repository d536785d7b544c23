package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

type snapshot struct {
	seq   uint64
	state studio.State
}

// Persister writes whole-state snapshots to the repository. Only the newest
// pending snapshot is kept; writes happen after the debounce window goes quiet.
// A failed write is kept aside until RetryFailed or a newer write succeeds.
type Persister struct {
	repo      studio.StateRepository
	debounce  time.Duration
	onFailure func(error)

	seq     atomic.Uint64
	pending chan snapshot

	saveMu    sync.Mutex
	savedSeq  uint64
	failed    *snapshot
	lastError error
}

func NewPersister(repo studio.StateRepository, debounce time.Duration, onFailure func(error)) *Persister {
	if onFailure == nil {
		onFailure = func(error) {}
	}
	return &Persister{
		repo:      repo,
		debounce:  debounce,
		onFailure: onFailure,
		pending:   make(chan snapshot, 1),
	}
}

// Enqueue schedules a snapshot for writing, replacing any older pending one. It never blocks.
func (p *Persister) Enqueue(state studio.State) {
	snap := snapshot{seq: p.seq.Add(1), state: state}
	for {
		select {
		case p.pending <- snap:
			return
		default:
		}
		select {
		case old := <-p.pending:
			if old.seq > snap.seq {
				snap = old
			}
		default:
		}
	}
}

// Run consumes pending snapshots until ctx is cancelled. A snapshot still inside
// its debounce window at cancellation is left pending for Flush.
func (p *Persister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case latest := <-p.pending:
			timer := time.NewTimer(p.debounce)
		debounce:
			for {
				select {
				case next := <-p.pending:
					latest = next
					timer.Reset(p.debounce)
				case <-timer.C:
					break debounce
				case <-ctx.Done():
					timer.Stop()
					select {
					case p.pending <- latest:
					default:
					}
					return
				}
			}
			_ = p.save(ctx, latest)
		}
	}
}

func (p *Persister) save(ctx context.Context, snap snapshot) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	if snap.seq <= p.savedSeq {
		return nil
	}

	if err := p.repo.Save(ctx, snap.state); err != nil {
		if p.failed == nil || p.failed.seq < snap.seq {
			p.failed = &snap
		}
		p.lastError = err
		slog.Error("Failed to persist application state", "seq", snap.seq, "error", err)
		p.onFailure(err)
		return fmt.Errorf("failed to persist state: %w", err)
	}

	p.savedSeq = snap.seq
	if p.failed != nil && p.failed.seq <= snap.seq {
		p.failed = nil
	}
	p.lastError = nil
	slog.Debug("Application state persisted", "seq", snap.seq)
	return nil
}

// RetryFailed re-attempts the last failed write, if any.
func (p *Persister) RetryFailed(ctx context.Context) error {
	p.saveMu.Lock()
	failed := p.failed
	p.saveMu.Unlock()

	if failed == nil {
		return nil
	}
	slog.Info("Retrying failed state write", "seq", failed.seq)
	return p.save(ctx, *failed)
}

// Flush writes any pending snapshot immediately, then retries a failed one.
func (p *Persister) Flush(ctx context.Context) error {
	select {
	case snap := <-p.pending:
		if err := p.save(ctx, snap); err != nil {
			return err
		}
	default:
	}
	return p.RetryFailed(ctx)
}

// LastError returns the error of the most recent write, nil after a success.
func (p *Persister) LastError() error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()
	return p.lastError
}
