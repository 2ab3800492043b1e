// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the entity collides with an existing one
// (duplicate email, duplicate tenant slug).
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates no valid identity is attached to the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a valid identity lacking entitlement: the entity
// belongs to another tenant, or the caller's role does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates the request failed input validation.
var ErrValidation = errors.New("validation failed")
