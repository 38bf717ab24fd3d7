// Package domain defines domain-level errors for brokerage authentication.
package domain

import "fmt"

// AuthError indicates that token issuance against the brokerage failed after
// the configured retry budget. It is fatal for the current request; callers
// must not retry beyond the TokenManager's own policy.
type AuthError struct {
	Attempts int
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("brokerage auth failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
