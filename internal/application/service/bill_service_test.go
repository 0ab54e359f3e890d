package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/storage"
)

var testNow = time.Date(2025, 6, 15, 19, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*BillService, *storage.MockRepository) {
	t.Helper()
	mock := storage.NewMockRepository()
	svc, err := NewBillService(Config{
		Store: mock,
		Now:   func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return svc, mock
}

// addDinner puts a simple two-person bill on the service.
func addDinner(t *testing.T, svc *BillService) (engine.Person, engine.Person) {
	t.Helper()
	alice, err := svc.AddPerson("Alice")
	require.NoError(t, err)
	bob, err := svc.AddPerson("Bob")
	require.NoError(t, err)
	_, err = svc.SaveItem(engine.ItemDraft{
		Name:           "Pasta",
		UnitPrice:      30.00,
		Quantity:       1,
		AssignedPeople: []engine.PersonID{alice.ID, bob.ID},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetBillField(engine.FieldSubtotal, 30.00))
	require.NoError(t, svc.SetBillField(engine.FieldTax, 3.00))
	return alice, bob
}

func TestNewBillService_RequiresStoreAndClock(t *testing.T) {
	_, err := NewBillService(Config{Now: func() time.Time { return testNow }})
	assert.Error(t, err)

	_, err = NewBillService(Config{Store: storage.NewMockRepository()})
	assert.Error(t, err)
}

func TestNewBillService_DefaultsHistoryLimit(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, DefaultHistoryLimit, svc.conf.HistoryLimit)
}

func TestBillService_PassThroughAndSummary(t *testing.T) {
	svc, _ := newTestService(t)
	alice, bob := addDinner(t, svc)

	summary := svc.Summary()
	assert.InDelta(t, 33.00, summary.GrandTotal, 1e-9)

	breakdown := svc.Breakdown()
	require.Len(t, breakdown, 2)
	assert.InDelta(t, 16.50, breakdown[0].GrandTotal, 1e-9)

	svc.RemovePerson(bob.ID)
	breakdown = svc.Breakdown()
	require.Len(t, breakdown, 1)
	assert.Equal(t, alice.ID, breakdown[0].PersonID)
}

func TestBillService_SaveAndLoadDraft(t *testing.T) {
	svc, mock := newTestService(t)
	addDinner(t, svc)

	require.NoError(t, svc.SaveDraft())
	assert.True(t, mock.SaveDraftCalled)

	svc.Reset()
	assert.False(t, svc.HasData())

	require.NoError(t, svc.LoadDraft())
	assert.True(t, svc.HasData())
	assert.InDelta(t, 33.00, svc.Summary().GrandTotal, 1e-9)
}

func TestBillService_LoadDraft_NoneSaved(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.LoadDraft()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestBillService_SaveDraft_StorageError(t *testing.T) {
	svc, mock := newTestService(t)
	mock.SaveDraftErr = errors.New("disk full")

	err := svc.SaveDraft()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestBillService_Complete(t *testing.T) {
	svc, mock := newTestService(t)
	addDinner(t, svc)

	bill, err := svc.Complete()
	require.NoError(t, err)

	t.Run("stores the bill with a generated title", func(t *testing.T) {
		assert.True(t, mock.SaveCompletedCalled)
		assert.Equal(t, "Bill - $33.00 (2 people) - 6/15/2025", bill.Title)
		assert.Equal(t, 2, bill.PeopleCount)
		assert.Equal(t, 1, bill.ItemCount)
		assert.InDelta(t, 33.00, bill.GrandTotal, 1e-9)
		assert.True(t, bill.Snapshot.Complete)
	})

	t.Run("prunes history and clears the draft", func(t *testing.T) {
		assert.True(t, mock.PruneCalled)
		assert.True(t, mock.ClearDraftCalled)
	})

	t.Run("resets the live bill", func(t *testing.T) {
		assert.False(t, svc.HasData())
		assert.Empty(t, svc.Breakdown())
	})
}

func TestBillService_Complete_EmptyBill(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Complete()
	assert.ErrorIs(t, err, ErrNothingToComplete)

	// People but no items is still incomplete.
	_, err = svc.AddPerson("Alice")
	require.NoError(t, err)
	_, err = svc.Complete()
	assert.ErrorIs(t, err, ErrNothingToComplete)
}

func TestBillService_Complete_StorageError(t *testing.T) {
	svc, mock := newTestService(t)
	addDinner(t, svc)
	mock.SaveCompletedErr = errors.New("locked")

	_, err := svc.Complete()
	assert.Error(t, err)

	// The live bill must survive a failed completion.
	assert.True(t, svc.HasData())
}

func TestBillService_History(t *testing.T) {
	svc, mock := newTestService(t)
	addDinner(t, svc)

	completed, err := svc.Complete()
	require.NoError(t, err)

	bills, err := svc.History()
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, completed.ID, bills[0].ID)
	assert.Equal(t, 1, mock.BillCount())

	t.Run("load reopens as editable", func(t *testing.T) {
		require.NoError(t, svc.LoadFromHistory(completed.ID))
		assert.True(t, svc.HasData())
		assert.InDelta(t, 33.00, svc.Summary().GrandTotal, 1e-9)
		// Still in history after loading.
		assert.Equal(t, 1, mock.BillCount())
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := svc.HistoryBill("missing")
		assert.ErrorIs(t, err, ErrBillNotFound)
		assert.ErrorIs(t, svc.LoadFromHistory("missing"), ErrBillNotFound)
		assert.ErrorIs(t, svc.DeleteFromHistory("missing"), ErrBillNotFound)
	})

	t.Run("delete and clear", func(t *testing.T) {
		require.NoError(t, svc.DeleteFromHistory(completed.ID))
		assert.Equal(t, 0, mock.BillCount())

		require.NoError(t, svc.ClearHistory())
		bills, err := svc.History()
		require.NoError(t, err)
		assert.Empty(t, bills)
	})
}

func TestBillTitle(t *testing.T) {
	at := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Bill - $42.50 (3 people) - 1/3/2025", billTitle(42.50, 3, at))
}
