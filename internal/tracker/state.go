package tracker

import (
	"equipment-tracker-backend/internal/model"
)

// View is the screen currently shown.
type View string

const (
	ViewList View = "list"
	ViewForm View = "form"
)

// Phase is the controller state derived from State.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLoading          Phase = "loading"
	PhaseViewingList      Phase = "viewingList"
	PhaseViewingForm      Phase = "viewingForm"
	PhaseConfirmingDelete Phase = "confirmingDelete"
)

// FormValues holds the raw form inputs. LastCleanedDate is YYYY-MM-DD.
type FormValues struct {
	Name            string
	Type            string
	Status          string
	LastCleanedDate string
}

// FormValuesOf pre-fills a form from a stored record.
func FormValuesOf(e model.Equipment) FormValues {
	v := FormValues{
		Name:   e.Name,
		Type:   string(e.Type),
		Status: string(e.Status),
	}
	if !e.LastCleanedDate.IsZero() {
		v.LastCleanedDate = e.LastCleanedDate.String()
	}
	return v
}

// State is everything the list and form screens render from.
type State struct {
	Mounted   bool
	Equipment []model.Equipment
	Loading   bool
	Error     string
	View      View

	Editing       *model.Equipment
	PendingDelete *model.Equipment

	FormLoading bool
	FormError   string
	FormValues  FormValues
	FieldErrors map[string]string
}

// Phase reports which of the controller phases s is in.
func (s State) Phase() Phase {
	switch {
	case s.View == ViewForm:
		return PhaseViewingForm
	case s.PendingDelete != nil:
		return PhaseConfirmingDelete
	case s.Loading:
		return PhaseLoading
	case !s.Mounted:
		return PhaseIdle
	default:
		return PhaseViewingList
	}
}

// clone returns a copy of s that shares no memory with it.
func (s State) clone() State {
	out := s
	out.Equipment = append([]model.Equipment(nil), s.Equipment...)
	if out.Equipment == nil {
		out.Equipment = []model.Equipment{}
	}
	if s.Editing != nil {
		e := *s.Editing
		out.Editing = &e
	}
	if s.PendingDelete != nil {
		e := *s.PendingDelete
		out.PendingDelete = &e
	}
	if s.FieldErrors != nil {
		out.FieldErrors = make(map[string]string, len(s.FieldErrors))
		for k, v := range s.FieldErrors {
			out.FieldErrors[k] = v
		}
	}
	return out
}
