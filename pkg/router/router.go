package router

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// CircuitState is the state of a renderer's circuit breaker
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // healthy
	CircuitOpen                         // failing, skipped
	CircuitHalfOpen                     // probing
)

var ErrUnavailable = errors.New("all renderers are unavailable")

const (
	DefaultFailureThreshold = 5
	DefaultRecoveryTimeout  = 30 * time.Second
)

// RendererStats tracks health and latency of a single backend renderer
type RendererStats struct {
	mu sync.RWMutex

	avgLatency    time.Duration
	totalRequests int64
	totalFailures int64

	inflight atomic.Int64

	state               CircuitState
	probing             bool
	consecutiveFailures int
	lastFailure         time.Time
}

func NewRendererStats() *RendererStats {
	return &RendererStats{
		state:      CircuitClosed,
		avgLatency: time.Second,
	}
}

// IsAvailable reports whether the renderer may take a request. An open
// circuit turns half-open once the recovery timeout has passed.
func (s *RendererStats) IsAvailable(recoveryTimeout time.Duration) bool {
	s.mu.RLock()
	state := s.state
	probing := s.probing
	lastFailure := s.lastFailure
	s.mu.RUnlock()

	switch state {
	case CircuitOpen:
		if time.Since(lastFailure) < recoveryTimeout {
			return false
		}

		s.mu.Lock()

		if s.state == CircuitOpen {
			s.state = CircuitHalfOpen
		}

		s.mu.Unlock()

		return true

	case CircuitHalfOpen:
		return !probing

	default:
		return true
	}
}

func (s *RendererStats) Metrics() (state CircuitState, avgLatency time.Duration, totalRequests, totalFailures, inflight int64) {
	s.mu.RLock()
	state = s.state
	avgLatency = s.avgLatency
	totalRequests = s.totalRequests
	totalFailures = s.totalFailures
	s.mu.RUnlock()

	inflight = s.inflight.Load()
	return
}

// RecordSuccess closes the circuit and folds latency into the moving
// average using the given weight.
func (s *RendererStats) RecordSuccess(latency time.Duration, alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	s.consecutiveFailures = 0

	if s.totalRequests == 1 || alpha <= 0 {
		s.avgLatency = latency
	} else {
		s.avgLatency = time.Duration(float64(latency)*alpha + float64(s.avgLatency)*(1-alpha))
	}

	if s.state == CircuitHalfOpen {
		s.state = CircuitClosed
	}
}

func (s *RendererStats) RecordFailure(threshold int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	s.totalFailures++
	s.consecutiveFailures++
	s.lastFailure = time.Now()

	if s.state == CircuitHalfOpen || s.consecutiveFailures >= threshold {
		s.state = CircuitOpen
	}
}

func (s *RendererStats) LastFailure() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastFailure
}

func (s *RendererStats) SetHalfOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = CircuitHalfOpen
}

// Acquire admits a render and returns the func ending it. A half-open
// circuit admits a single probe at a time.
func (s *RendererStats) Acquire() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	probe := s.state == CircuitHalfOpen

	if probe {
		if s.probing {
			return nil, false
		}

		s.probing = true
	}

	s.inflight.Add(1)

	release := func() {
		s.inflight.Add(-1)

		if probe {
			s.mu.Lock()
			s.probing = false
			s.mu.Unlock()
		}
	}

	return release, true
}

// Fallback picks the least recently failed renderer when every circuit is
// open and moves it to half-open.
func Fallback(stats []*RendererStats) int {
	index := 0

	var oldest time.Time

	for i, s := range stats {
		last := s.LastFailure()

		if i == 0 || last.Before(oldest) {
			oldest = last
			index = i
		}
	}

	stats[index].SetHalfOpen()

	return index
}
