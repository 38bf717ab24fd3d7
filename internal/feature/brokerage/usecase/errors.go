// Package usecase implements the business logic for brokerage authentication.
package usecase

import "errors"

var (
	// ErrTokenNotFound is returned by a CredentialRepository when no access
	// token has been persisted yet.
	ErrTokenNotFound = errors.New("access token not found")
)
