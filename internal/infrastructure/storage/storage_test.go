package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStorage(filepath.Join(dir, "bills.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSnapshot(t *testing.T, at time.Time) engine.Snapshot {
	t.Helper()
	e := engine.New()
	alice, err := e.AddPerson("Alice")
	require.NoError(t, err)
	_, err = e.SaveItem(engine.ItemDraft{
		Name:           "Pizza",
		UnitPrice:      20.00,
		Quantity:       1,
		AssignedPeople: []engine.PersonID{alice.ID},
	})
	require.NoError(t, err)
	require.NoError(t, e.DeriveSubtotalFromItems())
	return e.Snapshot(at)
}

func TestStorage_DraftLifecycle(t *testing.T) {
	s := newTestStorage(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty database has no draft", func(t *testing.T) {
		draft, err := s.GetDraft()
		require.NoError(t, err)
		assert.Nil(t, draft)
	})

	t.Run("save and reload round-trips the snapshot", func(t *testing.T) {
		snap := sampleSnapshot(t, now)
		require.NoError(t, s.SaveDraft(&Draft{Snapshot: snap, SavedAt: now}))

		draft, err := s.GetDraft()
		require.NoError(t, err)
		require.NotNil(t, draft)
		assert.Equal(t, snap, draft.Snapshot)
		assert.Equal(t, now, draft.SavedAt)

		restored := engine.New()
		restored.Restore(draft.Snapshot)
		assert.InDelta(t, 20.00, restored.Subtotal(), 1e-9)
	})

	t.Run("saving again replaces the draft", func(t *testing.T) {
		later := now.Add(5 * time.Second)
		snap := sampleSnapshot(t, later)
		require.NoError(t, s.SaveDraft(&Draft{Snapshot: snap, SavedAt: later}))

		draft, err := s.GetDraft()
		require.NoError(t, err)
		require.NotNil(t, draft)
		assert.Equal(t, later, draft.SavedAt)
	})

	t.Run("clear removes the draft", func(t *testing.T) {
		require.NoError(t, s.ClearDraft())
		draft, err := s.GetDraft()
		require.NoError(t, err)
		assert.Nil(t, draft)

		// Clearing again is fine.
		require.NoError(t, s.ClearDraft())
	})
}

func TestStorage_History(t *testing.T) {
	s := newTestStorage(t)
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	saveBill := func(t *testing.T, id string, at time.Time) {
		t.Helper()
		snap := sampleSnapshot(t, at)
		snap.Complete = true
		snap.Title = "Bill " + id
		require.NoError(t, s.SaveCompletedBill(&CompletedBill{
			ID:          id,
			Title:       snap.Title,
			PeopleCount: 1,
			ItemCount:   1,
			GrandTotal:  20.00,
			CreatedAt:   at,
			Snapshot:    snap,
		}))
	}

	saveBill(t, "bill-1", base)
	saveBill(t, "bill-2", base.Add(time.Hour))
	saveBill(t, "bill-3", base.Add(2*time.Hour))

	t.Run("lists newest first", func(t *testing.T) {
		bills, err := s.ListCompletedBills(0)
		require.NoError(t, err)
		require.Len(t, bills, 3)
		assert.Equal(t, "bill-3", bills[0].ID)
		assert.Equal(t, "bill-1", bills[2].ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		bills, err := s.ListCompletedBills(2)
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "bill-3", bills[0].ID)
	})

	t.Run("get returns full snapshot", func(t *testing.T) {
		bill, err := s.GetCompletedBill("bill-2")
		require.NoError(t, err)
		require.NotNil(t, bill)
		assert.True(t, bill.Snapshot.Complete)
		assert.Equal(t, "Bill bill-2", bill.Title)
	})

	t.Run("get unknown id returns nil", func(t *testing.T) {
		bill, err := s.GetCompletedBill("missing")
		require.NoError(t, err)
		assert.Nil(t, bill)
	})

	t.Run("prune keeps newest", func(t *testing.T) {
		require.NoError(t, s.PruneCompletedBills(2))
		bills, err := s.ListCompletedBills(0)
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "bill-3", bills[0].ID)
		assert.Equal(t, "bill-2", bills[1].ID)
	})

	t.Run("delete one", func(t *testing.T) {
		require.NoError(t, s.DeleteCompletedBill("bill-3"))
		bills, err := s.ListCompletedBills(0)
		require.NoError(t, err)
		require.Len(t, bills, 1)
	})

	t.Run("clear all", func(t *testing.T) {
		require.NoError(t, s.ClearCompletedBills())
		bills, err := s.ListCompletedBills(0)
		require.NoError(t, err)
		assert.Empty(t, bills)
	})
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bills.db")

	s1, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening runs migrations again; already-applied ones must be
	// skipped without error.
	s2, err := NewStorage(path)
	require.NoError(t, err)
	defer s2.Close()

	var count int
	require.NoError(t, s2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(allMigrations), count)
}

func TestNewStorage_CreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data", "bills.db")

	s, err := NewStorage(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
