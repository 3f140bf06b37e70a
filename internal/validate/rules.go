package validate

import (
	"github.com/go-playground/validator/v10"

	"equipment-tracker-backend/internal/model"
)

// registerRules registers the domain tags used by the schemas.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_type", isEquipmentType); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return err
	}
	return nil
}

func isEquipmentType(fl validator.FieldLevel) bool {
	return model.EquipmentType(fl.Field().String()).Valid()
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return model.EquipmentStatus(fl.Field().String()).Valid()
}

// isISODate accepts a calendar date or an ISO-8601 date-time.
func isISODate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}
