package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"invest_backend/internal/feature/brokerage/domain"
	"invest_backend/internal/feature/brokerage/domain/entity"
	"invest_backend/internal/feature/brokerage/usecase"
	"invest_backend/internal/platform/retry"
)

// mockIssuer is a mock implementation of the TokenIssuer interface.
type mockIssuer struct {
	IssueFunc  func(ctx context.Context) (entity.AccessToken, error)
	IssueCalls int32
}

func (m *mockIssuer) Issue(ctx context.Context) (entity.AccessToken, error) {
	atomic.AddInt32(&m.IssueCalls, 1)
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx)
	}
	return entity.AccessToken{}, errors.New("IssueFunc is not implemented")
}

// mockCredentialRepo is an in-memory CredentialRepository.
type mockCredentialRepo struct {
	mu        sync.Mutex
	token     entity.AccessToken
	hasToken  bool
	SaveCalls int
	LoadCalls int
	SaveErr   error
}

func (m *mockCredentialRepo) Load(ctx context.Context) (entity.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if !m.hasToken {
		return entity.AccessToken{}, usecase.ErrTokenNotFound
	}
	return m.token, nil
}

func (m *mockCredentialRepo) Save(ctx context.Context, token entity.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	m.hasToken = true
	return nil
}

func freshToken(value string) entity.AccessToken {
	now := time.Now()
	return entity.AccessToken{Value: value, IssuedAt: now, ExpiresAt: now.Add(24 * time.Hour)}
}

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Sleep:       func(ctx context.Context, d time.Duration) error { return nil },
	}
}

func TestTokenManager_GetValidToken_IssuesOnce(t *testing.T) {
	t.Parallel()

	issuer := &mockIssuer{IssueFunc: func(ctx context.Context) (entity.AccessToken, error) {
		return freshToken("tok-1"), nil
	}}
	creds := &mockCredentialRepo{}
	tm := usecase.NewTokenManager(issuer, creds, 0, fastPolicy())

	ctx := context.Background()
	first, err := tm.GetValidToken(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second call within the safety margin must not reach the issuer.
	second, err := tm.GetValidToken(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Value != "tok-1" || second.Value != "tok-1" {
		t.Errorf("expected tok-1 from both calls, got %q and %q", first.Value, second.Value)
	}
	if n := atomic.LoadInt32(&issuer.IssueCalls); n != 1 {
		t.Errorf("expected 1 issuance, got %d", n)
	}
	if creds.SaveCalls != 1 {
		t.Errorf("expected token persisted once, got %d saves", creds.SaveCalls)
	}
}

func TestTokenManager_GetValidToken_SingleFlight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	issuer := &mockIssuer{IssueFunc: func(ctx context.Context) (entity.AccessToken, error) {
		<-release
		return freshToken("shared"), nil
	}}
	tm := usecase.NewTokenManager(issuer, &mockCredentialRepo{}, 0, fastPolicy())

	const callers = 20
	var wg sync.WaitGroup
	values := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := tm.GetValidToken(context.Background())
			values[i], errs[i] = tok.Value, err
		}(i)
	}

	// Give every goroutine a chance to observe the missing token before the
	// issuance completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if values[i] != "shared" {
			t.Errorf("caller %d: expected token %q, got %q", i, "shared", values[i])
		}
	}
	if n := atomic.LoadInt32(&issuer.IssueCalls); n != 1 {
		t.Errorf("expected exactly 1 upstream issuance, got %d", n)
	}
}

func TestTokenManager_GetValidToken_ReusesPersistedToken(t *testing.T) {
	t.Parallel()

	issuer := &mockIssuer{}
	creds := &mockCredentialRepo{}
	_ = creds.Save(context.Background(), freshToken("persisted"))
	creds.SaveCalls = 0

	tm := usecase.NewTokenManager(issuer, creds, 0, fastPolicy())

	tok, err := tm.GetValidToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "persisted" {
		t.Errorf("expected persisted token, got %q", tok.Value)
	}
	if n := atomic.LoadInt32(&issuer.IssueCalls); n != 0 {
		t.Errorf("expected no issuance with a valid persisted token, got %d", n)
	}
}

func TestTokenManager_GetValidToken_ExpiredPersistedTokenReissues(t *testing.T) {
	t.Parallel()

	issuer := &mockIssuer{IssueFunc: func(ctx context.Context) (entity.AccessToken, error) {
		return freshToken("reissued"), nil
	}}
	creds := &mockCredentialRepo{}
	expired := entity.AccessToken{
		Value:     "old",
		IssuedAt:  time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	_ = creds.Save(context.Background(), expired)

	tm := usecase.NewTokenManager(issuer, creds, 0, fastPolicy())

	tok, err := tm.GetValidToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "reissued" {
		t.Errorf("expected reissued token, got %q", tok.Value)
	}
}

func TestTokenManager_GetValidToken_IssuanceFailure(t *testing.T) {
	t.Parallel()

	errUpstream := errors.New("brokerage down")
	issuer := &mockIssuer{IssueFunc: func(ctx context.Context) (entity.AccessToken, error) {
		return entity.AccessToken{}, errUpstream
	}}
	creds := &mockCredentialRepo{}
	tm := usecase.NewTokenManager(issuer, creds, 0, fastPolicy())

	_, err := tm.GetValidToken(context.Background())

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *domain.AuthError, got %v", err)
	}
	if authErr.Attempts != 2 {
		t.Errorf("expected 2 attempts recorded, got %d", authErr.Attempts)
	}
	if !errors.Is(err, errUpstream) {
		t.Errorf("expected wrapped upstream error, got %v", err)
	}
	if creds.SaveCalls != 0 {
		t.Errorf("expected nothing persisted on failure, got %d saves", creds.SaveCalls)
	}
}

func TestTokenManager_Invalidate_ForcesReissue(t *testing.T) {
	t.Parallel()

	n := int32(0)
	issuer := &mockIssuer{IssueFunc: func(ctx context.Context) (entity.AccessToken, error) {
		seq := atomic.AddInt32(&n, 1)
		if seq == 1 {
			return freshToken("first"), nil
		}
		return freshToken("second"), nil
	}}
	tm := usecase.NewTokenManager(issuer, &mockCredentialRepo{}, 0, fastPolicy())

	ctx := context.Background()
	tok, err := tm.GetValidToken(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tm.Invalidate(tok.Value)

	tok, err = tm.GetValidToken(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "second" {
		t.Errorf("expected reissued token after invalidation, got %q", tok.Value)
	}

	// Invalidating with a superseded value must not drop the current token.
	tm.Invalidate("first")
	tok, err = tm.GetValidToken(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "second" {
		t.Errorf("expected current token untouched, got %q", tok.Value)
	}
	if got := atomic.LoadInt32(&issuer.IssueCalls); got != 2 {
		t.Errorf("expected 2 issuances, got %d", got)
	}
}
