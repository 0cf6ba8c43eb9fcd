// Package wizard owns the single résumé document of a session and funnels every
// mutation through named operations that keep the preview, the step indicator and
// the persisted copy in step with it.
package wizard

import "errors"

var (
	// ErrNoStore is returned by Open when no persistence backend is configured.
	ErrNoStore = errors.New("wizard: store is required")
	// ErrUnknownTemplate is returned when selecting a key the registry does not hold.
	ErrUnknownTemplate = errors.New("wizard: unknown template")
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("wizard: session closed")
)
