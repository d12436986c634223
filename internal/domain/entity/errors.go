package entity

import "errors"

var (
	// Card errors
	ErrCardNotFound    = errors.New("card not found")
	ErrAmbiguousCardID = errors.New("card ID prefix is ambiguous")
	ErrEmptyCardID     = errors.New("card ID cannot be empty")
	ErrEmptyCardTitle  = errors.New("card title cannot be empty")

	// Column errors
	ErrEmptyColumnID       = errors.New("column ID cannot be empty")
	ErrColumnAlreadyExists = errors.New("column already exists")
	ErrTrashColumn         = errors.New("trash is not a board column")

	// Drop intent errors
	ErrNegativeIndex = errors.New("drop index cannot be negative")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot is corrupt")
)
