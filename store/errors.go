package store

import "errors"

var (
	// ErrNotFound is returned when a document doesn't exist.
	ErrNotFound = errors.New("store: document not found")

	// ErrAlreadyExists is returned when attempting to create a document
	// with an existing id.
	ErrAlreadyExists = errors.New("store: document already exists")

	// ErrUnknownCollection is returned when a logical collection name
	// has no registered table.
	ErrUnknownCollection = errors.New("store: unknown collection")
)
