package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh record identifier: the 24-char hex form of an ObjectID.
// Every store backend uses it, so identifiers look the same regardless of driver.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id is a well-formed record identifier.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
