package storage

import (
	"time"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// Draft is the single editable bill a user can come back to. Only one
// draft exists at a time, mirroring the app's one-bill-in-progress model.
type Draft struct {
	Snapshot engine.Snapshot
	SavedAt  time.Time
}

// CompletedBill is a finalized bill kept in history. The full snapshot is
// stored so a bill can be reopened for editing; the summary columns exist
// for listing without unmarshaling every snapshot.
type CompletedBill struct {
	ID          string
	Title       string
	PeopleCount int
	ItemCount   int
	GrandTotal  float64
	CreatedAt   time.Time
	Snapshot    engine.Snapshot
}
