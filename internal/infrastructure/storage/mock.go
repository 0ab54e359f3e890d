package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	draft *Draft
	bills map[string]*CompletedBill

	// Hooks for test assertions
	SaveDraftCalled     bool
	ClearDraftCalled    bool
	SaveCompletedCalled bool
	PruneCalled         bool
	LastSavedBill       *CompletedBill

	// Error injection for testing error paths
	SaveDraftErr     error
	GetDraftErr      error
	SaveCompletedErr error
	ListErr          error
}

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		bills: make(map[string]*CompletedBill),
	}
}

// Close does nothing for the mock.
func (m *MockRepository) Close() error {
	return nil
}

// SaveDraft stores the draft in memory.
func (m *MockRepository) SaveDraft(draft *Draft) error {
	m.SaveDraftCalled = true
	if m.SaveDraftErr != nil {
		return m.SaveDraftErr
	}
	copied := *draft
	m.draft = &copied
	return nil
}

// GetDraft returns the stored draft, nil when none.
func (m *MockRepository) GetDraft() (*Draft, error) {
	if m.GetDraftErr != nil {
		return nil, m.GetDraftErr
	}
	if m.draft == nil {
		return nil, nil
	}
	copied := *m.draft
	return &copied, nil
}

// ClearDraft drops the stored draft.
func (m *MockRepository) ClearDraft() error {
	m.ClearDraftCalled = true
	m.draft = nil
	return nil
}

// SaveCompletedBill stores a bill in memory.
func (m *MockRepository) SaveCompletedBill(bill *CompletedBill) error {
	m.SaveCompletedCalled = true
	if m.SaveCompletedErr != nil {
		return m.SaveCompletedErr
	}
	copied := *bill
	m.bills[bill.ID] = &copied
	m.LastSavedBill = &copied
	return nil
}

// ListCompletedBills returns bills newest first.
func (m *MockRepository) ListCompletedBills(limit int) ([]*CompletedBill, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	bills := m.sortedBills()
	if limit > 0 && len(bills) > limit {
		bills = bills[:limit]
	}
	return bills, nil
}

// GetCompletedBill returns one bill, nil when absent.
func (m *MockRepository) GetCompletedBill(id string) (*CompletedBill, error) {
	bill, ok := m.bills[id]
	if !ok {
		return nil, nil
	}
	copied := *bill
	return &copied, nil
}

// DeleteCompletedBill removes one bill.
func (m *MockRepository) DeleteCompletedBill(id string) error {
	delete(m.bills, id)
	return nil
}

// ClearCompletedBills removes everything.
func (m *MockRepository) ClearCompletedBills() error {
	m.bills = make(map[string]*CompletedBill)
	return nil
}

// PruneCompletedBills keeps only the newest bills.
func (m *MockRepository) PruneCompletedBills(keep int) error {
	m.PruneCalled = true
	bills := m.sortedBills()
	for i, bill := range bills {
		if i >= keep {
			delete(m.bills, bill.ID)
		}
	}
	return nil
}

// BillCount reports how many bills are stored, for test assertions.
func (m *MockRepository) BillCount() int {
	return len(m.bills)
}

func (m *MockRepository) sortedBills() []*CompletedBill {
	bills := make([]*CompletedBill, 0, len(m.bills))
	for _, bill := range m.bills {
		copied := *bill
		bills = append(bills, &copied)
	}
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].CreatedAt.Equal(bills[j].CreatedAt) {
			return bills[i].ID > bills[j].ID
		}
		return bills[i].CreatedAt.After(bills[j].CreatedAt)
	})
	return bills
}
