package session

import (
	"context"
	"sync"
)

// IdentitySlot is the durable key-value slot holding the serialized
// identity of the signed-in user. The store is the only writer; no other
// component touches the slot directly.
//
// Read returns ErrSlotEmpty when no identity is persisted. Any other
// error means the backing store could not be reached.
type IdentitySlot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// ErrSlotEmpty is returned by IdentitySlot.Read when the slot holds nothing.
type slotEmptyError struct{}

func (slotEmptyError) Error() string { return "identity slot is empty" }

var ErrSlotEmpty error = slotEmptyError{}

// MemorySlot is an in-memory IdentitySlot for tests and ephemeral runs.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot { return &MemorySlot{} }

// Seed pre-populates the slot, simulating a value left by a previous run.
func (m *MemorySlot) Seed(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
}

func (m *MemorySlot) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
	return nil
}

func (m *MemorySlot) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}
