package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// SequencedWriter serializes writes to a Store by logical order. Callers take a
// sequence number with Next at the moment they snapshot the document; Write then
// drops any snapshot older than the last one persisted, so a slow earlier write can
// never replace a newer state.
type SequencedWriter struct {
	store Store

	next    atomic.Uint64
	mu      sync.Mutex
	written uint64
}

// NewSequencedWriter wraps s.
func NewSequencedWriter(s Store) *SequencedWriter {
	return &SequencedWriter{store: s}
}

// Next returns the next logical write number.
func (w *SequencedWriter) Next() uint64 {
	return w.next.Add(1)
}

// Write persists blob if seq is newer than the last persisted write. It reports
// whether the blob reached the store.
func (w *SequencedWriter) Write(ctx context.Context, seq uint64, blob []byte) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq <= w.written {
		return false, nil
	}
	if err := w.store.Save(ctx, blob); err != nil {
		return false, err
	}
	w.written = seq
	return true, nil
}

// Store returns the wrapped store.
func (w *SequencedWriter) Store() Store {
	return w.store
}
