package services

import (
	"errors"
	"sync"
	"time"

	"expense-services/internal/models"
)

var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int

	// OnStateChange is called with the breaker lock held; it must not call
	// back into the breaker.
	OnStateChange func(from, to models.CircuitBreakerState)
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:     5,
		ResetTimeout:    30 * time.Second,
		HalfOpenMaxSucc: 1,
	}
}

const (
	StateClosed   = models.CircuitClosed
	StateOpen     = models.CircuitOpen
	StateHalfOpen = models.CircuitHalfOpen
)

// CircuitBreaker stops calls to a failing dependency for ResetTimeout after
// MaxFailures consecutive failures, then lets probe calls through.
type CircuitBreaker struct {
	mu       sync.RWMutex
	config   CircuitBreakerConfig
	state    models.CircuitBreakerState
	failures int
	admitted int
	probes   int
	openedAt time.Time
	now      func() time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig) CircuitBreakerInterface {
	if config.MaxFailures <= 0 {
		config.MaxFailures = DefaultCircuitBreakerConfig().MaxFailures
	}
	if config.HalfOpenMaxSucc <= 0 {
		config.HalfOpenMaxSucc = 1
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// IsOpen reports whether calls must be short-circuited. An open breaker whose
// reset timeout has elapsed moves to half-open. While half-open at most
// HalfOpenMaxSucc calls are admitted until their outcomes are recorded.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) > cb.config.ResetTimeout {
		cb.setState(StateHalfOpen)
	}

	switch cb.state {
	case StateOpen:
		return true
	case StateHalfOpen:
		if cb.admitted >= cb.config.HalfOpenMaxSucc {
			return true
		}
		cb.admitted++
	}
	return false
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.probes++
		if cb.admitted > 0 {
			cb.admitted--
		}
		if cb.probes >= cb.config.HalfOpenMaxSucc {
			cb.setState(StateClosed)
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.setState(StateOpen)
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.setState(StateOpen)
		}
	}
}

// setState resets the counters belonging to the new state. Callers hold mu.
func (cb *CircuitBreaker) setState(to models.CircuitBreakerState) {
	from := cb.state
	cb.state = to
	cb.probes = 0
	cb.admitted = 0

	switch to {
	case StateClosed:
		cb.failures = 0
	case StateOpen:
		cb.openedAt = cb.now()
	}

	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

func (cb *CircuitBreaker) GetState() models.CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.setState(StateClosed)
}

func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}
