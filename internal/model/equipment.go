package model

import (
	"strings"
	"time"
)

// EquipmentType is the kind of a tracked piece of equipment.
type EquipmentType string

const (
	TypeMachine EquipmentType = "Machine"
	TypeVessel  EquipmentType = "Vessel"
	TypeTank    EquipmentType = "Tank"
	TypeMixer   EquipmentType = "Mixer"
)

// EquipmentTypes lists every accepted EquipmentType in display order.
var EquipmentTypes = []EquipmentType{TypeMachine, TypeVessel, TypeTank, TypeMixer}

// Valid reports whether t is an exact member of EquipmentTypes.
func (t EquipmentType) Valid() bool {
	for _, v := range EquipmentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// EquipmentStatus is the operating status of a piece of equipment.
type EquipmentStatus string

const (
	StatusActive           EquipmentStatus = "Active"
	StatusInactive         EquipmentStatus = "Inactive"
	StatusUnderMaintenance EquipmentStatus = "Under Maintenance"
)

// EquipmentStatuses lists every accepted EquipmentStatus in display order.
var EquipmentStatuses = []EquipmentStatus{StatusActive, StatusInactive, StatusUnderMaintenance}

// Valid reports whether s is an exact member of EquipmentStatuses.
func (s EquipmentStatus) Valid() bool {
	for _, v := range EquipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TypeNames returns the accepted type values joined for messages.
func TypeNames() string {
	names := make([]string, len(EquipmentTypes))
	for i, t := range EquipmentTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// StatusNames returns the accepted status values joined for messages.
func StatusNames() string {
	names := make([]string, len(EquipmentStatuses))
	for i, s := range EquipmentStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Equipment is a single tracked equipment record.
type Equipment struct {
	ID              string          `json:"id" gorm:"primaryKey;size:24"`
	Name            string          `json:"name" gorm:"size:100;not null"`
	Type            EquipmentType   `json:"type" gorm:"size:32;not null"`
	Status          EquipmentStatus `json:"status" gorm:"size:32;not null"`
	LastCleanedDate Date            `json:"lastCleanedDate" gorm:"not null"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

// TableName pins the table name; the default pluralisation would give "equipments".
func (Equipment) TableName() string { return "equipment" }

// Fields is the complete set of business fields of a record.
type Fields struct {
	Name            string          `json:"name"`
	Type            EquipmentType   `json:"type"`
	Status          EquipmentStatus `json:"status"`
	LastCleanedDate Date            `json:"lastCleanedDate"`
}

// Patch is a partial update. Nil fields are left untouched when applied.
type Patch struct {
	Name            *string          `json:"name,omitempty"`
	Type            *EquipmentType   `json:"type,omitempty"`
	Status          *EquipmentStatus `json:"status,omitempty"`
	LastCleanedDate *Date            `json:"lastCleanedDate,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Status == nil && p.LastCleanedDate == nil
}

// Apply returns e with every field present in p overwritten.
func (p Patch) Apply(e Equipment) Equipment {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.LastCleanedDate != nil {
		e.LastCleanedDate = *p.LastCleanedDate
	}
	return e
}

// FieldsOf extracts the business fields of e.
func FieldsOf(e Equipment) Fields {
	return Fields{
		Name:            e.Name,
		Type:            e.Type,
		Status:          e.Status,
		LastCleanedDate: e.LastCleanedDate,
	}
}

// PatchOf turns a full field set into a patch that overwrites all four fields.
func PatchOf(f Fields) Patch {
	return Patch{
		Name:            &f.Name,
		Type:            &f.Type,
		Status:          &f.Status,
		LastCleanedDate: &f.LastCleanedDate,
	}
}
