// Package entity defines the domain entities for brokerage authentication.
package entity

import "time"

// AccessToken is the bearer token issued by the brokerage open API.
// There is exactly one current token per process; a new issuance supersedes it.
type AccessToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Usable reports whether the token can still be attached to a request at the
// given instant, keeping the safety margin clear of the actual expiry so a
// request does not reach the brokerage with a token that dies in flight.
func (t AccessToken) Usable(now time.Time, margin time.Duration) bool {
	if t.Value == "" {
		return false
	}
	return now.Add(margin).Before(t.ExpiresAt)
}
