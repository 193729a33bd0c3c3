// Package payment provides the simulated payment provider the box office
// runs against. A real gateway integration would replace the Simulator
// behind the same domain.PaymentProvider interface.
package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/google/uuid"
)

// DefaultApprovalRate matches the reference behavior: 95% of payments
// succeed regardless of order contents.
const DefaultApprovalRate = 0.95

// Simulator approves or declines orders at a fixed rate, after an optional
// simulated gateway latency. It is safe for concurrent use.
type Simulator struct {
	approvalRate float64
	latency      time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

type Option func(*Simulator)

// WithApprovalRate overrides the default approval rate. Rate 1 always
// approves, 0 always declines.
func WithApprovalRate(rate float64) Option {
	return func(s *Simulator) { s.approvalRate = rate }
}

// WithLatency makes Authorize sleep before deciding, standing in for the
// round trip a real gateway would cost.
func WithLatency(d time.Duration) Option {
	return func(s *Simulator) { s.latency = d }
}

// WithRand injects the random source, pinning outcomes in tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rand = r }
}

func NewSimulator(opts ...Option) *Simulator {
	seed := uint64(time.Now().UnixNano())

	s := &Simulator{
		approvalRate: DefaultApprovalRate,
		rand:         rand.New(rand.NewPCG(seed, seed>>1)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authorize simulates authorizing and capturing the order total. Context
// cancellation during the simulated latency counts as a failed payment.
func (s *Simulator) Authorize(ctx context.Context, order *domain.Order) error {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	approved := s.rand.Float64() < s.approvalRate
	s.mu.Unlock()

	if !approved {
		return fmt.Errorf("%w (ref %s)", domain.ErrPaymentDeclined, uuid.NewString())
	}

	return nil
}
