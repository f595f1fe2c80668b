package models

import "errors"

// Sentinel errors surfaced to handlers for status mapping. Repositories
// and services wrap these with context via fmt.Errorf and %w.
var (
	ErrNotFound            = errors.New("not found")
	ErrCoupleNotFound      = errors.New("couple not found")
	ErrCoupleFull          = errors.New("couple already has two partners")
	ErrAlreadyPaired       = errors.New("user is already in a couple")
	ErrNotPaired           = errors.New("user is not in a couple")
	ErrForbidden           = errors.New("operation not permitted")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrValidation          = errors.New("validation failed")
	ErrOutfitNotFound      = errors.New("outfit not found")
	ErrOutfitNotOwned      = errors.New("outfit is not owned")
	ErrAlreadyOwned        = errors.New("outfit is already owned")
	ErrInsufficientBalance = errors.New("insufficient kiss balance")
)
