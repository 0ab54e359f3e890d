package service

import (
	"fmt"
	"sync"
	"time"

	validator "github.com/avrebarra/minivalidator"
	"github.com/google/uuid"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/storage"
)

// DefaultHistoryLimit caps how many completed bills are retained.
const DefaultHistoryLimit = 50

var (
	// ErrNothingToComplete is returned when completing a bill that has no
	// people or no items.
	ErrNothingToComplete = fmt.Errorf("bill needs at least one person and one item before completing")

	// ErrBillNotFound is returned for history operations on an unknown id.
	ErrBillNotFound = fmt.Errorf("bill not found")

	// ErrNoDraft is returned when loading a draft and none is saved.
	ErrNoDraft = fmt.Errorf("no saved draft")
)

// Config holds the dependencies of a BillService.
type Config struct {
	Store storage.Repository `validate:"required"`
	Now   func() time.Time   `validate:"required"`

	// HistoryLimit is how many completed bills to keep; zero means
	// DefaultHistoryLimit.
	HistoryLimit int
}

// BillService owns the live bill and serializes access to it. The engine
// itself does no locking; every entry point here takes the mutex.
type BillService struct {
	conf   Config
	mu     sync.Mutex
	engine *engine.Engine
}

// NewBillService builds a service around a fresh bill.
func NewBillService(conf Config) (*BillService, error) {
	if err := validator.Validate(conf); err != nil {
		return nil, fmt.Errorf("bad config: %w", err)
	}
	if conf.HistoryLimit <= 0 {
		conf.HistoryLimit = DefaultHistoryLimit
	}
	return &BillService{conf: conf, engine: engine.New()}, nil
}

// --- Bill fields ---

// SetBillField updates subtotal, tax or service fee on the live bill.
func (s *BillService) SetBillField(field engine.BillField, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetBillField(field, value)
}

// SetTipPercentage switches the tip to percentage mode.
func (s *BillService) SetTipPercentage(pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetTipPercentage(pct)
}

// SetTipAmount switches the tip to fixed-amount mode.
func (s *BillService) SetTipAmount(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetTipAmount(amount)
}

// DeriveSubtotalFromItems replaces the subtotal with the sum of item lines.
func (s *BillService) DeriveSubtotalFromItems() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DeriveSubtotalFromItems()
}

// --- Items and people ---

// SaveItem creates or updates an item on the live bill.
func (s *BillService) SaveItem(draft engine.ItemDraft) (engine.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SaveItem(draft)
}

// RemoveItem deletes an item; unknown ids are a no-op.
func (s *BillService) RemoveItem(id engine.ItemID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.RemoveItem(id)
}

// AddPerson adds a participant to the live bill.
func (s *BillService) AddPerson(name string) (engine.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AddPerson(name)
}

// RemovePerson deletes a participant and their item assignments.
func (s *BillService) RemovePerson(id engine.PersonID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.RemovePerson(id)
}

// Item looks up a single item on the live bill.
func (s *BillService) Item(id engine.ItemID) (engine.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Item(id)
}

// Person looks up a single participant on the live bill.
func (s *BillService) Person(id engine.PersonID) (engine.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Person(id)
}

// --- Queries ---

// State captures the full live bill as a snapshot, for the API layer.
func (s *BillService) State() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot(s.conf.Now())
}

// Summary returns the live bill totals.
func (s *BillService) Summary() engine.BillSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Summary()
}

// PerPersonAverage returns the grand total divided evenly.
func (s *BillService) PerPersonAverage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.PerPersonAverage()
}

// Breakdown returns the rounded per-person results.
func (s *BillService) Breakdown() []engine.PersonBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DetailedBreakdown()
}

// Export returns the shareable bill document.
func (s *BillService) Export() engine.Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Export()
}

// HasData reports whether the live bill holds anything worth saving.
// Autosave uses this to avoid persisting empty drafts.
func (s *BillService) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.HasData()
}

// Reset discards the live bill without touching history or the draft.
func (s *BillService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
}

// --- Draft ---

// SaveDraft persists the live bill so it survives a restart.
func (s *BillService) SaveDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.conf.Now()
	draft := &storage.Draft{Snapshot: s.engine.Snapshot(now), SavedAt: now}
	if err := s.conf.Store.SaveDraft(draft); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// LoadDraft replaces the live bill with the saved draft, if any.
func (s *BillService) LoadDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.conf.Store.GetDraft()
	if err != nil {
		return fmt.Errorf("loading draft: %w", err)
	}
	if draft == nil {
		return ErrNoDraft
	}
	s.engine.Restore(draft.Snapshot)
	return nil
}

// ClearDraft removes the persisted draft. The live bill is untouched.
func (s *BillService) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf.Store.ClearDraft()
}

// --- Completion and history ---

// Complete finalizes the live bill: it is snapshotted into history with a
// generated title, the history is pruned to the limit, and the live bill
// and draft are cleared. Returns the stored record.
func (s *BillService) Complete() (*storage.CompletedBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people := s.engine.People()
	items := s.engine.Items()
	if len(people) == 0 || len(items) == 0 {
		return nil, ErrNothingToComplete
	}

	now := s.conf.Now()
	summary := s.engine.Summary()

	snap := s.engine.Snapshot(now)
	snap.Complete = true
	snap.Title = billTitle(summary.GrandTotal, len(people), now)

	bill := &storage.CompletedBill{
		ID:          uuid.NewString(),
		Title:       snap.Title,
		PeopleCount: len(people),
		ItemCount:   len(items),
		GrandTotal:  summary.GrandTotal,
		CreatedAt:   now,
		Snapshot:    snap,
	}

	if err := s.conf.Store.SaveCompletedBill(bill); err != nil {
		return nil, fmt.Errorf("saving completed bill: %w", err)
	}
	if err := s.conf.Store.PruneCompletedBills(s.conf.HistoryLimit); err != nil {
		return nil, fmt.Errorf("pruning history: %w", err)
	}

	s.engine.Reset()
	if err := s.conf.Store.ClearDraft(); err != nil {
		return nil, fmt.Errorf("clearing draft: %w", err)
	}
	return bill, nil
}

// History lists completed bills, newest first.
func (s *BillService) History() ([]*storage.CompletedBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bills, err := s.conf.Store.ListCompletedBills(s.conf.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return bills, nil
}

// HistoryBill returns a single completed bill.
func (s *BillService) HistoryBill(id string) (*storage.CompletedBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, err := s.conf.Store.GetCompletedBill(id)
	if err != nil {
		return nil, fmt.Errorf("loading bill: %w", err)
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// LoadFromHistory reopens a completed bill as the editable live bill.
// The stored record stays in history.
func (s *BillService) LoadFromHistory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, err := s.conf.Store.GetCompletedBill(id)
	if err != nil {
		return fmt.Errorf("loading bill: %w", err)
	}
	if bill == nil {
		return ErrBillNotFound
	}
	s.engine.Restore(bill.Snapshot)
	return nil
}

// DeleteFromHistory removes one completed bill.
func (s *BillService) DeleteFromHistory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, err := s.conf.Store.GetCompletedBill(id)
	if err != nil {
		return fmt.Errorf("loading bill: %w", err)
	}
	if bill == nil {
		return ErrBillNotFound
	}
	return s.conf.Store.DeleteCompletedBill(id)
}

// ClearHistory removes every completed bill.
func (s *BillService) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf.Store.ClearCompletedBills()
}

func billTitle(grandTotal float64, peopleCount int, at time.Time) string {
	return fmt.Sprintf("Bill - $%.2f (%d people) - %s", grandTotal, peopleCount, at.Format("1/2/2006"))
}
