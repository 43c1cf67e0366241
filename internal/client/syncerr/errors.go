// Package syncerr normalizes the failure modes of the synchronizer into a
// single error type. Callers use the kind to decide whether to fall back to
// local data (the remote was unreachable) or surface a validation message
// (the remote rejected the request).
package syncerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnreachable means the remote collaborator could not be contacted
	// or timed out. Last-known local data stays valid.
	KindUnreachable Kind = iota

	// KindRejected means the remote responded but reported failure, e.g.
	// missing GPS data or a validation error.
	KindRejected

	// KindPersistence means a local mirror write failed. In-memory state
	// remains authoritative for the session.
	KindPersistence

	// KindMalformedLocal means the persisted mirror held unparseable data
	// and was discarded.
	KindMalformedLocal
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindPersistence:
		return "persistence"
	case KindMalformedLocal:
		return "malformed local data"
	default:
		return "unknown"
	}
}

// SyncError carries a human-readable message plus the failure kind.
type SyncError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *SyncError {
	return &SyncError{Kind: kind, Op: op, Err: err}
}

// Unreachable wraps a transport-level failure.
func Unreachable(op string, err error) *SyncError {
	return New(KindUnreachable, op, err)
}

// Rejected wraps a remote refusal.
func Rejected(op string, err error) *SyncError {
	return New(KindRejected, op, err)
}

func is(err error, kind Kind) bool {
	var se *SyncError
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}

// IsUnreachable reports whether err is a SyncError of kind Unreachable.
func IsUnreachable(err error) bool { return is(err, KindUnreachable) }

// IsRejected reports whether err is a SyncError of kind Rejected.
func IsRejected(err error) bool { return is(err, KindRejected) }
