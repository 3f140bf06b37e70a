// Package tracker drives the list and form screens of the equipment client.
// Every successful mutation is followed by a full list reload; nothing is
// updated optimistically.
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"equipment-tracker-backend/internal/client"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/validate"
)

const (
	msgLoadFailed   = "Failed to load equipment"
	msgSaveFailed   = "Failed to save equipment"
	msgDeleteFailed = "Failed to delete equipment"
)

// ErrInvalidForm is returned by SubmitForm when client-side checks fail.
var ErrInvalidForm = errors.New("tracker: form has invalid fields")

// API is the part of the HTTP client the controller uses.
type API interface {
	List(ctx context.Context) ([]model.Equipment, error)
	Create(ctx context.Context, f model.Fields) (*model.Equipment, error)
	Update(ctx context.Context, id string, p model.Patch) (*model.Equipment, error)
	Delete(ctx context.Context, id string) (*model.Equipment, error)
}

// Controller owns the client state. Its methods are safe for concurrent use.
type Controller struct {
	api       API
	validator *validate.Validator
	logger    *zap.Logger
	onChange  func(State)

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnChange registers fn to receive a snapshot after every state change.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a Controller in the idle phase.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		validator: validate.New(),
		logger:    zap.NewNop(),
		state: State{
			Equipment: []model.Equipment{},
			View:      ViewList,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// update applies fn under the lock and notifies the listener.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state.clone()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(snapshot)
	}
}

// Mount marks the screen as shown and loads the list.
func (c *Controller) Mount(ctx context.Context) error {
	c.update(func(s *State) { s.Mounted = true })
	return c.Load(ctx)
}

// Load fetches the full list. On failure the list is emptied and the error
// is shown with a retry action.
func (c *Controller) Load(ctx context.Context) error {
	c.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})

	items, err := c.api.List(ctx)
	if err != nil {
		c.logger.Warn("Failed to load equipment", zap.Error(err))
		c.update(func(s *State) {
			s.Equipment = []model.Equipment{}
			s.Error = errorMessage(err, msgLoadFailed)
			s.Loading = false
		})
		return err
	}

	c.update(func(s *State) {
		s.Equipment = items
		s.Loading = false
	})
	return nil
}

// Retry reloads the list after a failure.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// StartCreate opens an empty form.
func (c *Controller) StartCreate() {
	c.update(func(s *State) {
		s.Editing = nil
		s.FormError = ""
		s.FieldErrors = nil
		s.FormValues = FormValues{}
		s.View = ViewForm
	})
}

// StartEdit opens the form pre-filled with e.
func (c *Controller) StartEdit(e model.Equipment) {
	c.update(func(s *State) {
		s.Editing = &e
		s.FormError = ""
		s.FieldErrors = nil
		s.FormValues = FormValuesOf(e)
		s.View = ViewForm
	})
}

// CancelForm returns to the list without saving.
func (c *Controller) CancelForm() {
	c.update(func(s *State) {
		s.View = ViewList
		s.Editing = nil
		s.FormError = ""
		s.FieldErrors = nil
	})
}

// SubmitForm checks values, then creates or updates the record being
// edited. On success the list is reloaded and the list view shown. On
// failure the form stays open with its values and an error message.
func (c *Controller) SubmitForm(ctx context.Context, values FormValues) error {
	fields, fieldErrors := c.checkForm(values)

	var editing *model.Equipment
	c.update(func(s *State) {
		s.FormValues = values
		s.FieldErrors = fieldErrors
		if fieldErrors == nil {
			s.FormLoading = true
			s.FormError = ""
		}
		if s.Editing != nil {
			e := *s.Editing
			editing = &e
		}
	})
	if fieldErrors != nil {
		return ErrInvalidForm
	}

	var err error
	if editing != nil {
		_, err = c.api.Update(ctx, editing.ID, model.PatchOf(fields))
	} else {
		_, err = c.api.Create(ctx, fields)
	}
	if err != nil {
		c.logger.Warn("Failed to save equipment", zap.Error(err))
		c.update(func(s *State) {
			s.FormError = errorMessage(err, msgSaveFailed)
			s.FormLoading = false
		})
		return err
	}

	_ = c.Load(ctx)

	c.update(func(s *State) {
		s.View = ViewList
		s.Editing = nil
		s.FormLoading = false
	})
	return nil
}

// checkForm runs the create rules over the form. Blank inputs count as
// missing so each reports its "required" message.
func (c *Controller) checkForm(values FormValues) (model.Fields, map[string]string) {
	body := map[string]any{}
	put := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			body[key] = value
		}
	}
	put(validate.FieldName, values.Name)
	put(validate.FieldType, values.Type)
	put(validate.FieldStatus, values.Status)
	put(validate.FieldLastCleanedDate, values.LastCleanedDate)

	fields, errs := c.validator.Create(body)
	if errs == nil {
		return fields, nil
	}
	fieldErrors := make(map[string]string, len(errs))
	for _, e := range errs {
		fieldErrors[e.Field] = e.Message
	}
	return model.Fields{}, fieldErrors
}

// RequestDelete asks for confirmation before deleting e.
func (c *Controller) RequestDelete(e model.Equipment) {
	c.update(func(s *State) { s.PendingDelete = &e })
}

// CancelDelete dismisses the confirmation.
func (c *Controller) CancelDelete() {
	c.update(func(s *State) { s.PendingDelete = nil })
}

// ConfirmDelete deletes the record awaiting confirmation. On failure the
// confirmation stays open and the error is shown on the list.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	var pending *model.Equipment
	c.update(func(s *State) {
		if s.PendingDelete != nil {
			e := *s.PendingDelete
			pending = &e
			s.Loading = true
		}
	})
	if pending == nil {
		return nil
	}

	if _, err := c.api.Delete(ctx, pending.ID); err != nil {
		c.logger.Warn("Failed to delete equipment", zap.String("equipment_id", pending.ID), zap.Error(err))
		c.update(func(s *State) {
			s.Error = errorMessage(err, msgDeleteFailed)
			s.Loading = false
		})
		return err
	}

	_ = c.Load(ctx)

	c.update(func(s *State) {
		s.PendingDelete = nil
		s.Loading = false
	})
	return nil
}

// errorMessage picks the server's message, then the transport error text,
// then fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
