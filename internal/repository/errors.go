package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNotUnique is returned when a unique index rejects a write
	ErrNotUnique = errors.New("not unique")

	// ErrConflict is returned when a write raced a concurrent change
	ErrConflict = errors.New("conflict: entity was modified concurrently")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrSchemaBlocked is returned when a schema migration cannot proceed
	// because another connection holds the database
	ErrSchemaBlocked = errors.New("schema migration blocked by another connection")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
