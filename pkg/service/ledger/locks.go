package ledger

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/nestfund/ledger/pkg/domain/ledger"
)

// accountLocks hands out exclusive per-account locks. Every engine operation
// acquires the locks of all accounts it will mutate before reading anything,
// and holds them until its transaction has committed or rolled back.
//
// Operations spanning two accounts acquire both locks in ascending id order,
// so two transfers between the same pair of accounts can never deadlock.
type accountLocks struct {
	mu      sync.Mutex
	held    map[uuid.UUID]*lockEntry
	timeout time.Duration
}

type lockEntry struct {
	ch   chan struct{} // capacity 1; holding the token means holding the lock
	refs int
}

func newAccountLocks(timeout time.Duration) *accountLocks {
	return &accountLocks{
		held:    make(map[uuid.UUID]*lockEntry),
		timeout: timeout,
	}
}

// Acquire locks every given account id, deduplicated and in ascending order.
// It returns a release function, or ErrLockTimeout when the wait exceeds the
// configured timeout, or the context error when the caller goes away first.
func (l *accountLocks) Acquire(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	ordered := dedupeSorted(ids)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	acquired := make([]uuid.UUID, 0, len(ordered))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			l.unlock(acquired[i])
		}
	}

	for _, id := range ordered {
		entry := l.retain(id)
		select {
		case entry.ch <- struct{}{}:
			acquired = append(acquired, id)
		case <-ctx.Done():
			l.release(id)
			release()
			return nil, ctx.Err()
		case <-timer.C:
			l.release(id)
			release()
			return nil, domain.ErrLockTimeout
		}
	}
	return release, nil
}

func (l *accountLocks) retain(id uuid.UUID) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.held[id]
	if !ok {
		entry = &lockEntry{ch: make(chan struct{}, 1)}
		l.held[id] = entry
	}
	entry.refs++
	return entry
}

// release drops a reference without unlocking, for aborted acquisitions.
func (l *accountLocks) release(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.held[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.held, id)
	}
}

func (l *accountLocks) unlock(id uuid.UUID) {
	l.mu.Lock()
	entry := l.held[id]
	l.mu.Unlock()
	<-entry.ch
	l.release(id)
}

func dedupeSorted(ids []uuid.UUID) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i][:], ordered[j][:]) < 0
	})
	return ordered
}
