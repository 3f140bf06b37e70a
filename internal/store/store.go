package store

import (
	"context"

	"equipment-tracker-backend/internal/model"
)

// Store defines the persistence operations for equipment records.
// Implementations translate driver failures into ErrNotFound, ErrDuplicate
// and ErrUnavailable; context errors are passed through untouched.
type Store interface {
	// List returns every record, most recently created first.
	List(ctx context.Context) ([]model.Equipment, error)
	Get(ctx context.Context, id string) (*model.Equipment, error)
	// Insert persists e, assigning e.ID when it is empty.
	Insert(ctx context.Context, e *model.Equipment) error
	// Replace overwrites the business fields and UpdatedAt of the record with e.ID.
	Replace(ctx context.Context, e *model.Equipment) error
	// Delete removes the record and returns it as it was.
	Delete(ctx context.Context, id string) (*model.Equipment, error)
	Ping(ctx context.Context) error
}
