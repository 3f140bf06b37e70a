// Package validate checks equipment request bodies against the create and
// update schemas. Every violated field is reported, unknown fields are
// dropped, and a successful check yields a typed field set.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/response"
)

// MaxNameLength is the longest accepted name, in characters, after trimming.
const MaxNameLength = 100

// Field names as they appear on the wire.
const (
	FieldName            = "name"
	FieldType            = "type"
	FieldStatus          = "status"
	FieldLastCleanedDate = "lastCleanedDate"
	FieldBody            = "body"
)

const (
	tagName   = "required,max=100"
	tagType   = "equipment_type"
	tagStatus = "equipment_status"
	tagDate   = "required,isodate"
)

var (
	msgNameRequired   = "Equipment name is required"
	msgNameEmpty      = "Equipment name cannot be empty"
	msgNameTooLong    = fmt.Sprintf("Equipment name cannot exceed %d characters", MaxNameLength)
	msgNameNotString  = "Equipment name must be a string"
	msgTypeRequired   = "Equipment type is required"
	msgTypeInvalid    = "Equipment type must be one of: " + model.TypeNames()
	msgStatusRequired = "Equipment status is required"
	msgStatusInvalid  = "Equipment status must be one of: " + model.StatusNames()
	msgDateRequired   = "Last cleaned date is required"
	msgDateInvalid    = "Last cleaned date must be a valid ISO date"
	msgNoFields       = "At least one field must be provided for update"
	msgNotObject      = "Request body must be a JSON object"
)

// Validator applies the equipment schemas. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the domain rules registered.
func New() *Validator {
	v := validator.New()
	if err := registerRules(v); err != nil {
		panic(fmt.Sprintf("validate: registering rules: %v", err))
	}
	return &Validator{v: v}
}

// failedTag returns the first tag of tags that value violates, or "".
func (v *Validator) failedTag(value any, tags string) string {
	var verrs validator.ValidationErrors
	if errors.As(v.v.Var(value, tags), &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

type collector []response.FieldError

func (c *collector) add(field, message string) {
	*c = append(*c, response.FieldError{Field: field, Message: message})
}

// Create checks a body against the create schema: all four fields required.
func (v *Validator) Create(body map[string]any) (model.Fields, []response.FieldError) {
	var (
		f    model.Fields
		errs collector
	)

	if raw, ok := body[FieldName]; !ok {
		errs.add(FieldName, msgNameRequired)
	} else if name, msg := v.name(raw, msgNameRequired); msg != "" {
		errs.add(FieldName, msg)
	} else {
		f.Name = name
	}

	if raw, ok := body[FieldType]; !ok {
		errs.add(FieldType, msgTypeRequired)
	} else if t, ok := v.equipmentType(raw); !ok {
		errs.add(FieldType, msgTypeInvalid)
	} else {
		f.Type = t
	}

	if raw, ok := body[FieldStatus]; !ok {
		errs.add(FieldStatus, msgStatusRequired)
	} else if s, ok := v.equipmentStatus(raw); !ok {
		errs.add(FieldStatus, msgStatusInvalid)
	} else {
		f.Status = s
	}

	if raw, ok := body[FieldLastCleanedDate]; !ok {
		errs.add(FieldLastCleanedDate, msgDateRequired)
	} else if d, ok := v.date(raw); !ok {
		errs.add(FieldLastCleanedDate, msgDateInvalid)
	} else {
		f.LastCleanedDate = d
	}

	if len(errs) > 0 {
		return model.Fields{}, errs
	}
	return f, nil
}

// Update checks a body against the update schema: every field optional, at
// least one known field present.
func (v *Validator) Update(body map[string]any) (model.Patch, []response.FieldError) {
	var (
		p    model.Patch
		errs collector
		seen bool
	)

	if raw, ok := body[FieldName]; ok {
		seen = true
		if name, msg := v.name(raw, msgNameEmpty); msg != "" {
			errs.add(FieldName, msg)
		} else {
			p.Name = &name
		}
	}

	if raw, ok := body[FieldType]; ok {
		seen = true
		if t, ok := v.equipmentType(raw); !ok {
			errs.add(FieldType, msgTypeInvalid)
		} else {
			p.Type = &t
		}
	}

	if raw, ok := body[FieldStatus]; ok {
		seen = true
		if s, ok := v.equipmentStatus(raw); !ok {
			errs.add(FieldStatus, msgStatusInvalid)
		} else {
			p.Status = &s
		}
	}

	if raw, ok := body[FieldLastCleanedDate]; ok {
		seen = true
		if d, ok := v.date(raw); !ok {
			errs.add(FieldLastCleanedDate, msgDateInvalid)
		} else {
			p.LastCleanedDate = &d
		}
	}

	if !seen {
		errs.add(FieldBody, msgNoFields)
	}
	if len(errs) > 0 {
		return model.Patch{}, errs
	}
	return p, nil
}

// name trims raw and checks it. emptyMsg is reported for a blank name.
func (v *Validator) name(raw any, emptyMsg string) (string, string) {
	s, ok := raw.(string)
	if !ok {
		return "", msgNameNotString
	}
	s = strings.TrimSpace(s)
	switch v.failedTag(s, tagName) {
	case "":
		return s, ""
	case "required":
		return "", emptyMsg
	default:
		return "", msgNameTooLong
	}
}

func (v *Validator) equipmentType(raw any) (model.EquipmentType, bool) {
	s, ok := raw.(string)
	if !ok || v.failedTag(s, tagType) != "" {
		return "", false
	}
	return model.EquipmentType(s), true
}

func (v *Validator) equipmentStatus(raw any) (model.EquipmentStatus, bool) {
	s, ok := raw.(string)
	if !ok || v.failedTag(s, tagStatus) != "" {
		return "", false
	}
	return model.EquipmentStatus(s), true
}

func (v *Validator) date(raw any) (model.Date, bool) {
	s, ok := raw.(string)
	if !ok || v.failedTag(s, tagDate) != "" {
		return model.Date{}, false
	}
	d, err := model.ParseDate(s)
	return d, err == nil
}

// DecodeBody reads a JSON request body into a field map. An empty body is
// an empty object. JSON syntax errors and read errors are returned as-is;
// a well-formed body that is not an object is a validation failure.
func DecodeBody(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	body, ok := decoded.(map[string]any)
	if !ok {
		return nil, response.Validation([]response.FieldError{{Field: FieldBody, Message: msgNotObject}})
	}
	return body, nil
}
