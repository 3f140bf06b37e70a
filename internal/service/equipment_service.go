package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"equipment-tracker-backend/internal/metrics"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/response"
	"equipment-tracker-backend/internal/store"
)

const notFoundMessage = "Equipment record not found"

// EquipmentService defines the business operations on equipment records
type EquipmentService interface {
	List(ctx context.Context) ([]model.Equipment, error)
	Create(ctx context.Context, f model.Fields) (*model.Equipment, error)
	Update(ctx context.Context, id string, p model.Patch) (*model.Equipment, error)
	Delete(ctx context.Context, id string) (*model.Equipment, error)
	Ping(ctx context.Context) error
}

// Option configures an equipment service.
type Option func(*equipmentServiceImpl)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *equipmentServiceImpl) { s.now = now }
}

type equipmentServiceImpl struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewEquipmentService creates a new instance of EquipmentService
func NewEquipmentService(s store.Store, m *metrics.Metrics, logger *zap.Logger, opts ...Option) EquipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &equipmentServiceImpl{
		store:   s,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// timestamp is the current time at the precision every backend can store.
func (s *equipmentServiceImpl) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *equipmentServiceImpl) observe(operation string, start time.Time, err error) {
	if errors.Is(err, store.ErrNotFound) {
		err = nil
	}
	s.metrics.RecordStoreOperation(operation, time.Since(start), err)
}

// List returns every record, most recently created first.
func (s *equipmentServiceImpl) List(ctx context.Context) ([]model.Equipment, error) {
	start := time.Now()
	items, err := s.store.List(ctx)
	s.observe("list", start, err)
	if err != nil {
		return nil, err
	}

	s.metrics.SetEquipmentTotal(len(items))
	return items, nil
}

// Create stores a new record. CreatedAt and UpdatedAt are set to the same instant.
func (s *equipmentServiceImpl) Create(ctx context.Context, f model.Fields) (*model.Equipment, error) {
	now := s.timestamp()
	e := &model.Equipment{
		Name:            f.Name,
		Type:            f.Type,
		Status:          f.Status,
		LastCleanedDate: f.LastCleanedDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	start := time.Now()
	err := s.store.Insert(ctx, e)
	s.observe("insert", start, err)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementMutation("create")
	s.logger.Info("Equipment created", zap.String("equipment_id", e.ID), zap.String("type", string(e.Type)))
	return e, nil
}

// Update merges p into the stored record. Absent fields keep their values;
// UpdatedAt always moves forward.
func (s *equipmentServiceImpl) Update(ctx context.Context, id string, p model.Patch) (*model.Equipment, error) {
	if !model.ValidID(id) {
		return nil, response.InvalidID()
	}
	if p.Empty() {
		return nil, response.Validation([]response.FieldError{{
			Field:   "body",
			Message: "At least one field must be provided for update",
		}})
	}

	start := time.Now()
	current, err := s.store.Get(ctx, id)
	s.observe("get", start, err)
	if err != nil {
		return nil, s.notFound(err)
	}

	next := p.Apply(*current)
	next.UpdatedAt = s.timestamp()
	if !next.UpdatedAt.After(current.UpdatedAt) {
		next.UpdatedAt = current.UpdatedAt.Add(time.Millisecond)
	}

	start = time.Now()
	err = s.store.Replace(ctx, &next)
	s.observe("replace", start, err)
	if err != nil {
		return nil, s.notFound(err)
	}

	s.metrics.IncrementMutation("update")
	s.logger.Info("Equipment updated", zap.String("equipment_id", id))
	return &next, nil
}

// Delete removes a record and returns it as it was.
func (s *equipmentServiceImpl) Delete(ctx context.Context, id string) (*model.Equipment, error) {
	if !model.ValidID(id) {
		return nil, response.InvalidID()
	}

	start := time.Now()
	removed, err := s.store.Delete(ctx, id)
	s.observe("delete", start, err)
	if err != nil {
		return nil, s.notFound(err)
	}

	s.metrics.IncrementMutation("delete")
	s.logger.Info("Equipment deleted", zap.String("equipment_id", id))
	return removed, nil
}

// Ping checks that the record store is reachable.
func (s *equipmentServiceImpl) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (s *equipmentServiceImpl) notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return response.Wrap(err, http.StatusNotFound, response.CodeNotFound, notFoundMessage)
	}
	return err
}
