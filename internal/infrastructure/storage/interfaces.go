package storage

// Repository defines the complete storage interface. The engine itself
// never touches storage; the service layer moves snapshots through this
// port. The split into draft and history stores keeps mocks small.
type Repository interface {
	DraftStore
	HistoryStore
	Close() error
}

// DraftStore persists the single in-progress bill.
type DraftStore interface {
	// SaveDraft stores or replaces the current draft.
	SaveDraft(draft *Draft) error

	// GetDraft returns the current draft, or nil when none is stored.
	GetDraft() (*Draft, error)

	// ClearDraft removes the stored draft. Clearing an absent draft is
	// not an error.
	ClearDraft() error
}

// HistoryStore persists completed bills.
type HistoryStore interface {
	// SaveCompletedBill inserts a finalized bill.
	SaveCompletedBill(bill *CompletedBill) error

	// ListCompletedBills returns bills newest first, up to limit
	// (0 = no limit).
	ListCompletedBills(limit int) ([]*CompletedBill, error)

	// GetCompletedBill retrieves one bill by id, or nil when absent.
	GetCompletedBill(id string) (*CompletedBill, error)

	// DeleteCompletedBill removes one bill. Unknown ids are not an error.
	DeleteCompletedBill(id string) error

	// ClearCompletedBills removes all history.
	ClearCompletedBills() error

	// PruneCompletedBills deletes the oldest bills beyond keep.
	PruneCompletedBills(keep int) error
}
