package service

import (
	"context"

	"equipment-tracker-backend/internal/model"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	ListFunc    func(ctx context.Context) ([]model.Equipment, error)
	GetFunc     func(ctx context.Context, id string) (*model.Equipment, error)
	InsertFunc  func(ctx context.Context, e *model.Equipment) error
	ReplaceFunc func(ctx context.Context, e *model.Equipment) error
	DeleteFunc  func(ctx context.Context, id string) (*model.Equipment, error)
	PingFunc    func(ctx context.Context) error
}

func (m *MockStore) List(ctx context.Context) ([]model.Equipment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []model.Equipment{}, nil
}

func (m *MockStore) Get(ctx context.Context, id string) (*model.Equipment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) Insert(ctx context.Context, e *model.Equipment) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, e)
	}
	if e.ID == "" {
		e.ID = model.NewID()
	}
	return nil
}

func (m *MockStore) Replace(ctx context.Context, e *model.Equipment) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, e)
	}
	return nil
}

func (m *MockStore) Delete(ctx context.Context, id string) (*model.Equipment, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
