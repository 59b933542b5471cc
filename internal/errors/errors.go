// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures; command handlers decide how
// each one is presented to the user.
//
// Callers should wrap these sentinels with fmt.Errorf("%w: ...") to add
// context, and branch on them with errors.Is.
package errors

import (
	"errors"
)

var (
	// ErrValidation indicates that a create or update was rejected because a
	// required field was missing or empty.
	// Never retried automatically, surfaced to the user verbatim.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates that a referenced entity id is absent from its map,
	// or present only as a soft-deleted record where an active one is required.
	// The operation is aborted and the store is left unchanged.
	ErrNotFound = errors.New("entity not found")

	// ErrImmutable indicates an attempted update or delete of a built-in
	// config target. Built-in targets reject mutation unconditionally.
	ErrImmutable = errors.New("built-in config target is immutable")

	// ErrCategoryNotFound indicates that materialization was requested for a
	// category that is missing or soft-deleted. Checked before any file write.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTargetPathNotConfigured indicates that the activation target does not
	// resolve to a config file path. Checked before any file write.
	ErrTargetPathNotConfigured = errors.New("target config path not configured")

	// ErrConfigWrite indicates an I/O failure while writing the materialized
	// config file. The store's active-category state must not be committed
	// when this is returned.
	ErrConfigWrite = errors.New("config write failed")

	// ErrStoreLoad indicates the persisted store document could not be read or
	// decoded. Loaders recover by falling back to a default store; this error
	// is only returned for failures that are not safe to recover from.
	ErrStoreLoad = errors.New("store load failed")
)
