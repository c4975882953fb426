package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/campusbook/sections-ui/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func teacherIdentity() domainauth.Identity {
	return domainauth.Identity{
		ID:         "t-1",
		Email:      "ada@university.edu",
		Name:       "Ada Lovelace",
		Role:       domainauth.RoleTeacher,
		Department: "Mathematics",
	}
}

func studentIdentity() domainauth.Identity {
	return domainauth.Identity{
		ID:               "s-1",
		Email:            "carl@university.edu",
		Name:             "Carl Gauss",
		Role:             domainauth.RoleStudent,
		EnrollmentNumber: "2024-0017",
	}
}

// faultySlot fails selected operations to exercise resilience paths.
type faultySlot struct {
	MemorySlot
	readErr  error
	writeErr error
	clearErr error
}

func (f *faultySlot) Read(ctx context.Context) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.MemorySlot.Read(ctx)
}

func (f *faultySlot) Write(ctx context.Context, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.MemorySlot.Write(ctx, data)
}

func (f *faultySlot) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemorySlot.Clear(ctx)
}

func TestStoreStartsRestoring(t *testing.T) {
	store := NewStore(NewMemorySlot(), discardLogger())

	st := store.Snapshot()
	assert.True(t, st.Restoring)
	assert.Nil(t, st.Identity)
	assert.False(t, store.IsTeacher())
	assert.False(t, store.IsStudent())
}

func TestRestoreEmptySlot(t *testing.T) {
	store := NewStore(NewMemorySlot(), discardLogger())

	store.Restore(context.Background())

	st := store.Snapshot()
	assert.False(t, st.Restoring)
	assert.Nil(t, st.Identity)
}

func TestRestoreValidIdentity(t *testing.T) {
	slot := NewMemorySlot()
	data, err := json.Marshal(teacherIdentity())
	require.NoError(t, err)
	slot.Seed(data)

	store := NewStore(slot, discardLogger())
	store.Restore(context.Background())

	st := store.Snapshot()
	assert.False(t, st.Restoring)
	require.NotNil(t, st.Identity)
	assert.Equal(t, "t-1", st.Identity.ID)
	assert.True(t, store.IsTeacher())
	assert.False(t, store.IsStudent())
}

func TestRestoreMalformedSlotSelfHeals(t *testing.T) {
	malformed := [][]byte{
		[]byte("not json at all"),
		[]byte("{"),
		[]byte(`{"id":""}`),
		[]byte(`{"id":"x","userType":"ADMIN"}`),
		[]byte(`{"id":"t","userType":"TEACHER"}`),                                           // teacher without department
		[]byte(`{"id":"s","userType":"STUDENT","department":"Math"}`),                       // student with teacher attribute
		[]byte(`{"id":"t","userType":"TEACHER","department":"Math","enrollmentNumber":"1"}`), // both attributes
		[]byte(`null`),
		{0xff, 0xfe, 0x00},
	}

	for _, blob := range malformed {
		slot := NewMemorySlot()
		slot.Seed(blob)
		store := NewStore(slot, discardLogger())

		assert.NotPanics(t, func() { store.Restore(context.Background()) })

		st := store.Snapshot()
		assert.False(t, st.Restoring, "blob %q should end restoring", blob)
		assert.Nil(t, st.Identity, "blob %q should leave identity nil", blob)

		_, err := slot.Read(context.Background())
		assert.ErrorIs(t, err, ErrSlotEmpty, "blob %q should be cleared from the slot", blob)
	}
}

func TestRestoreUnreachableSlotProceedsSignedOut(t *testing.T) {
	slot := &faultySlot{readErr: errors.New("dial tcp: connection refused")}
	store := NewStore(slot, discardLogger())

	store.Restore(context.Background())

	st := store.Snapshot()
	assert.False(t, st.Restoring)
	assert.Nil(t, st.Identity)
}

func TestRestoreIdempotent(t *testing.T) {
	slot := NewMemorySlot()
	data, err := json.Marshal(studentIdentity())
	require.NoError(t, err)
	slot.Seed(data)

	store := NewStore(slot, discardLogger())
	store.Restore(context.Background())
	first := store.Snapshot()

	// A second call must not change identity or the restoring flag,
	// even if the slot contents changed underneath.
	slot.Seed([]byte("garbage"))
	store.Restore(context.Background())
	second := store.Snapshot()

	assert.Equal(t, first, second)
}

func TestLoginThenLogout(t *testing.T) {
	for _, identity := range []domainauth.Identity{teacherIdentity(), studentIdentity()} {
		slot := NewMemorySlot()
		store := NewStore(slot, discardLogger())
		store.Restore(context.Background())

		store.Login(context.Background(), identity)

		st := store.Snapshot()
		require.NotNil(t, st.Identity)
		assert.Equal(t, identity.ID, st.Identity.ID)

		persisted, err := slot.Read(context.Background())
		require.NoError(t, err)
		var roundTripped domainauth.Identity
		require.NoError(t, json.Unmarshal(persisted, &roundTripped))
		assert.Equal(t, identity, roundTripped)

		store.Logout(context.Background())

		st = store.Snapshot()
		assert.Nil(t, st.Identity)
		_, err = slot.Read(context.Background())
		assert.ErrorIs(t, err, ErrSlotEmpty)
	}
}

func TestLoginPersistFailureIsNonFatal(t *testing.T) {
	slot := &faultySlot{writeErr: errors.New("redis is down")}
	store := NewStore(slot, discardLogger())
	store.Restore(context.Background())

	assert.NotPanics(t, func() {
		store.Login(context.Background(), teacherIdentity())
	})

	// The in-memory session survives even though persistence failed.
	assert.True(t, store.IsTeacher())
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	slot := &faultySlot{clearErr: errors.New("redis is down")}
	store := NewStore(slot, discardLogger())
	store.Restore(context.Background())
	store.Login(context.Background(), studentIdentity())

	assert.NotPanics(t, func() { store.Logout(context.Background()) })
	assert.Nil(t, store.Snapshot().Identity)
}

func TestRolePredicatesNeverBothTrue(t *testing.T) {
	store := NewStore(NewMemorySlot(), discardLogger())
	store.Restore(context.Background())

	for _, identity := range []domainauth.Identity{teacherIdentity(), studentIdentity()} {
		store.Login(context.Background(), identity)
		assert.False(t, store.IsTeacher() && store.IsStudent())
		assert.True(t, store.IsTeacher() || store.IsStudent())
	}
}
