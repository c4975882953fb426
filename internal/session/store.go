// Package session holds the process-wide authentication state: who is
// signed in, whether the persisted identity has been restored yet, and
// the role predicates the rest of the UI keys off.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	domainauth "github.com/campusbook/sections-ui/internal/domain/auth"
)

// State is a point-in-time snapshot of the session. Identity is nil when
// nobody is signed in. While Restoring is true no authorization decision
// may be treated as final: the persisted identity has not been loaded yet
// and a "not signed in" answer could be spurious.
type State struct {
	Identity  *domainauth.Identity
	Restoring bool
}

// Authenticated reports whether an identity is present.
func (s State) Authenticated() bool { return s.Identity != nil }

// Sessions is the capability interface consumers receive. Only the store
// mutates session state; consumers read snapshots and predicates.
type Sessions interface {
	// Snapshot returns the current session state.
	Snapshot() State
	// IsTeacher reports whether the current identity is a teacher.
	// False when nobody is signed in.
	IsTeacher() bool
	// IsStudent reports whether the current identity is a student.
	// False when nobody is signed in.
	IsStudent() bool
	// Login sets the identity and persists it to the identity slot.
	// The caller must have validated credentials already; a persistence
	// failure is logged, not surfaced.
	Login(ctx context.Context, identity domainauth.Identity)
	// Logout clears the identity and removes the persisted slot.
	Logout(ctx context.Context)
}

// Store is the single source of truth for "who is signed in".
// Mutations are serialized by a mutex, so no navigation evaluation can
// observe a partially updated identity.
type Store struct {
	mu        sync.RWMutex
	identity  *domainauth.Identity
	restoring bool
	restored  bool

	slot   IdentitySlot
	logger *slog.Logger
}

var _ Sessions = (*Store)(nil)

// NewStore creates a store in the restoring state. Callers must invoke
// Restore exactly once at startup; until then every snapshot reports
// Restoring=true.
func NewStore(slot IdentitySlot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		restoring: true,
		slot:      slot,
		logger:    logger,
	}
}

// Restore loads the persisted identity from the slot. It is invoked once
// at startup; later calls are no-ops. Whether the slot is empty, the
// backend unreachable, or the blob corrupted, Restore finishes with
// Restoring=false so the UI never wedges in the loading state. A blob
// that fails to decode or violates identity invariants is self-healed:
// the slot is cleared and the process proceeds signed out.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	s.mu.Unlock()

	identity := s.readPersisted(ctx)

	s.mu.Lock()
	s.identity = identity
	s.restoring = false
	s.mu.Unlock()
}

func (s *Store) readPersisted(ctx context.Context) *domainauth.Identity {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			s.logger.Warn("identity slot read failed, proceeding signed out", "error", err)
		}
		return nil
	}

	var identity domainauth.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		s.healSlot(ctx, err)
		return nil
	}
	if err := identity.Validate(); err != nil {
		s.healSlot(ctx, err)
		return nil
	}
	return &identity
}

// healSlot clears a corrupted slot so the next startup does not trip over
// it again. Corruption is a normal state here, never an error to callers.
func (s *Store) healSlot(ctx context.Context, cause error) {
	s.logger.Warn("persisted identity is corrupt, clearing slot", "error", cause)
	if err := s.slot.Clear(ctx); err != nil {
		s.logger.Warn("clear identity slot failed", "error", err)
	}
}

// Login implements Sessions.
func (s *Store) Login(ctx context.Context, identity domainauth.Identity) {
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	data, err := json.Marshal(identity)
	if err != nil {
		s.logger.Warn("marshal identity for slot failed", "error", err)
		return
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Warn("persist identity failed, session is memory only", "error", err)
	}
}

// Logout implements Sessions.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		s.logger.Warn("clear identity slot on logout failed", "error", err)
	}
}

// Snapshot implements Sessions.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Identity: s.identity, Restoring: s.restoring}
}

// IsTeacher implements Sessions.
func (s *Store) IsTeacher() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsTeacher()
}

// IsStudent implements Sessions.
func (s *Store) IsStudent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsStudent()
}
