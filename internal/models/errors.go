package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidStatus is returned when a title status is outside the
	// known lifecycle values
	ErrInvalidStatus = errors.New("invalid title status")

	// ErrNoFieldsToUpdate is returned when a bulk update carries no ids
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
