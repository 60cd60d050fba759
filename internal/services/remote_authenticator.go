package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"expense-services/internal/config"
	"expense-services/internal/dto"
	"expense-services/internal/models"
)

// ErrUnauthorized is the single failure of an Authenticator.
var ErrUnauthorized = errors.New("unauthorized")

const (
	verifyPath      = "/api/verify"
	maxVerifyBody   = 64 << 10
	breakerService  = "auth"
	outcomeVerified = "verified"
	outcomeRejected = "rejected"
	outcomeFailed   = "unavailable"
	outcomeShorted  = "short_circuited"
)

type verifyTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *verifyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	return t.base.RoundTrip(req)
}

// RemoteAuthenticator resolves tokens by calling the auth service's verify
// endpoint once per request. It never retries and never caches.
type RemoteAuthenticator struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewRemoteAuthenticator creates an Authenticator backed by the auth service
func NewRemoteAuthenticator(
	cfg *config.AuthClientConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) *RemoteAuthenticator {
	transport := &verifyTransport{
		userAgent: "expense-services/verify",
		base:      http.DefaultTransport,
	}

	breakerConfig := DefaultCircuitBreakerConfig()
	if cfg.BreakerMaxFailures > 0 {
		breakerConfig.MaxFailures = cfg.BreakerMaxFailures
	}
	if cfg.BreakerResetTimeout > 0 {
		breakerConfig.ResetTimeout = cfg.BreakerResetTimeout
	}
	breakerConfig.OnStateChange = func(from, to models.CircuitBreakerState) {
		logger.Warn("auth service circuit breaker changed state",
			"from", from.String(),
			"to", to.String(),
			"url", cfg.ServiceURL+verifyPath)
		metrics.RecordGauge(MetricCircuitBreakerState, float64(to), map[string]string{"service": breakerService})
	}

	return &RemoteAuthenticator{
		baseURL: cfg.ServiceURL,
		timeout: cfg.VerifyTimeout,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.VerifyTimeout,
		},
		breaker: NewCircuitBreaker(breakerConfig),
		metrics: metrics,
		logger:  logger,
	}
}

// Resolve forwards the token to GET /api/verify. Only a 200 carrying a user
// id resolves; every other outcome is ErrUnauthorized.
func (a *RemoteAuthenticator) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	if a.breaker.IsOpen() {
		a.record(outcomeShorted, 0)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, ErrCircuitBreakerOpen)
	}

	start := time.Now()
	identity, outcome, err := a.verify(ctx, token)
	a.record(outcome, time.Since(start))

	switch outcome {
	case outcomeFailed:
		a.breaker.RecordFailure()
		a.logger.Warn("token verification unavailable",
			"url", a.baseURL+verifyPath,
			"failures", a.breaker.GetFailureCount(),
			"error", err)
	default:
		a.breaker.RecordSuccess()
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return identity, nil
}

func (a *RemoteAuthenticator) verify(ctx context.Context, token string) (*models.Identity, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+verifyPath, nil)
	if err != nil {
		return nil, outcomeFailed, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, outcomeFailed, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerifyBody))
	if err != nil {
		return nil, outcomeFailed, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var verified dto.VerifyResponse
		if err := json.Unmarshal(body, &verified); err != nil {
			return nil, outcomeRejected, fmt.Errorf("decode verify response: %w", err)
		}
		if !verified.Valid || verified.User.UserID == 0 {
			return nil, outcomeRejected, errors.New("verify response carries no identity")
		}
		return &models.Identity{
			UserID:   verified.User.UserID,
			Username: verified.User.Username,
		}, outcomeVerified, nil

	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, outcomeFailed, fmt.Errorf("auth service error (%d)", resp.StatusCode)

	default:
		return nil, outcomeRejected, fmt.Errorf("token rejected (%d)", resp.StatusCode)
	}
}

func (a *RemoteAuthenticator) record(outcome string, elapsed time.Duration) {
	a.metrics.IncrementCounter(MetricAuthVerification, map[string]string{"outcome": outcome})
	if elapsed > 0 {
		a.metrics.RecordProcessingTime(MetricAuthVerificationTime, elapsed)
	}
}

// StaticAuthenticator resolves tokens from a fixed table.
type StaticAuthenticator struct {
	mu     sync.RWMutex
	tokens map[string]models.Identity
}

func NewStaticAuthenticator(tokens map[string]models.Identity) *StaticAuthenticator {
	copied := make(map[string]models.Identity, len(tokens))
	for token, identity := range tokens {
		copied[token] = identity
	}
	return &StaticAuthenticator{tokens: copied}
}

func (a *StaticAuthenticator) Add(token string, identity models.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tokens[token] = identity
}

func (a *StaticAuthenticator) Resolve(_ context.Context, token string) (*models.Identity, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	identity, ok := a.tokens[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	return &identity, nil
}

// TokenAuthenticator validates tokens in process with the signing secret.
// The auth service uses it to protect its own endpoints.
type TokenAuthenticator struct {
	tokens TokenServiceInterface
}

func NewTokenAuthenticator(tokens TokenServiceInterface) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens}
}

func (a *TokenAuthenticator) Resolve(_ context.Context, token string) (*models.Identity, error) {
	claims, err := a.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	identity := claims.Identity()
	return &identity, nil
}
