package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"invest_backend/internal/feature/brokerage/domain"
	"invest_backend/internal/feature/brokerage/domain/entity"
	"invest_backend/internal/platform/retry"
)

// DefaultExpiryMargin is how long before the actual expiry a token is already
// treated as expiring, so no request reaches the brokerage with a token that
// dies in flight.
const DefaultExpiryMargin = 60 * time.Second

// TokenIssuer requests a fresh access token from the brokerage.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TokenIssuer interface {
	Issue(ctx context.Context) (entity.AccessToken, error)
}

// CredentialRepository persists the current access token so a restarted
// process can reuse a still-valid token instead of issuing a new one.
type CredentialRepository interface {
	// Load returns the persisted token, or ErrTokenNotFound if none exists.
	Load(ctx context.Context) (entity.AccessToken, error)
	// Save replaces the persisted token.
	Save(ctx context.Context, token entity.AccessToken) error
}

// TokenManager owns the process-wide access token. Reads of a known-valid
// token never block; the refresh path is serialized through a single flight so
// concurrent callers racing on an expiring token converge on one issuance.
type TokenManager struct {
	issuer TokenIssuer
	creds  CredentialRepository
	margin time.Duration
	policy retry.Policy

	mu     sync.RWMutex
	token  entity.AccessToken
	loaded bool // whether the persisted token has been consulted

	group singleflight.Group
}

// NewTokenManager creates a TokenManager. A margin <= 0 falls back to
// DefaultExpiryMargin.
func NewTokenManager(issuer TokenIssuer, creds CredentialRepository, margin time.Duration, policy retry.Policy) *TokenManager {
	if margin <= 0 {
		margin = DefaultExpiryMargin
	}
	return &TokenManager{
		issuer: issuer,
		creds:  creds,
		margin: margin,
		policy: policy,
	}
}

// GetValidToken returns the current access token, refreshing it first when it
// is absent or within the expiry margin. All concurrent callers observing an
// expiring token share one issuance request and receive the same result.
// Issuance failure surfaces as *domain.AuthError.
func (m *TokenManager) GetValidToken(ctx context.Context) (entity.AccessToken, error) {
	m.mu.RLock()
	tok := m.token
	m.mu.RUnlock()
	if tok.Usable(time.Now(), m.margin) {
		return tok, nil
	}

	v, err, _ := m.group.Do("token", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return entity.AccessToken{}, err
	}
	return v.(entity.AccessToken), nil
}

// Invalidate drops the cached token if it still matches the value the caller
// just got rejected with. The value check prevents a slow 401 from discarding
// a token that has already been replaced.
func (m *TokenManager) Invalidate(value string) {
	m.mu.Lock()
	if m.token.Value == value {
		m.token = entity.AccessToken{}
	}
	m.mu.Unlock()
}

// refresh runs inside the single flight. The issuance call is detached from
// the first caller's cancellation so one navigating client cannot fail every
// waiter sharing the flight.
func (m *TokenManager) refresh(ctx context.Context) (entity.AccessToken, error) {
	ctx = context.WithoutCancel(ctx)

	// Re-check under the flight: a waiter queued behind a finished refresh
	// must not trigger another issuance.
	m.mu.RLock()
	tok, loaded := m.token, m.loaded
	m.mu.RUnlock()
	if tok.Usable(time.Now(), m.margin) {
		return tok, nil
	}

	// First refresh of the process: a still-valid persisted token is reused
	// rather than unconditionally re-issuing.
	if !loaded {
		m.mu.Lock()
		m.loaded = true
		m.mu.Unlock()

		saved, err := m.creds.Load(ctx)
		switch {
		case err == nil:
			if saved.Usable(time.Now(), m.margin) {
				m.store(saved)
				return saved, nil
			}
		case !errors.Is(err, ErrTokenNotFound):
			slog.Warn("failed to load persisted access token", "error", err)
		}
	}

	var issued entity.AccessToken
	err := m.policy.Do(ctx, func() error {
		t, err := m.issuer.Issue(ctx)
		if err != nil {
			return err
		}
		issued = t
		return nil
	})
	if err != nil {
		return entity.AccessToken{}, &domain.AuthError{Attempts: m.policy.MaxAttempts, Err: err}
	}

	// Persist before releasing waiters. Persistence is best effort: a broken
	// credential store costs an extra issuance after restart, not this request.
	if err := m.creds.Save(ctx, issued); err != nil {
		slog.Warn("failed to persist access token", "error", err)
	}

	m.store(issued)
	return issued, nil
}

func (m *TokenManager) store(tok entity.AccessToken) {
	m.mu.Lock()
	m.token = tok
	m.loaded = true
	m.mu.Unlock()
}
