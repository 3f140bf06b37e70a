package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"equipment-tracker-backend/internal/model"
)

// gormStore implements the Store interface using GORM (postgres or sqlite).
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]model.Equipment, error) {
	items := make([]model.Equipment, 0)
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", translateGormError(err))
	}
	return items, nil
}

func (s *gormStore) Get(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get equipment %s: %w", id, translateGormError(err))
	}
	return &e, nil
}

func (s *gormStore) Insert(ctx context.Context, e *model.Equipment) error {
	if e.ID == "" {
		e.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to insert equipment: %w", translateGormError(err))
	}
	return nil
}

func (s *gormStore) Replace(ctx context.Context, e *model.Equipment) error {
	res := s.db.WithContext(ctx).
		Model(&model.Equipment{ID: e.ID}).
		Select("Name", "Type", "Status", "LastCleanedDate", "UpdatedAt").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("failed to update equipment %s: %w", e.ID, translateGormError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update equipment %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, id string) (*model.Equipment, error) {
	var removed model.Equipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Equipment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete equipment %s: %w", id, translateGormError(err))
	}
	return &removed, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", translateGormError(err))
	}
	return nil
}
