package payment

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorApprovalRateBounds(t *testing.T) {
	ctx := context.Background()

	always := NewSimulator(WithApprovalRate(1))
	never := NewSimulator(WithApprovalRate(0))

	for range 100 {
		assert.NoError(t, always.Authorize(ctx, nil))
		assert.ErrorIs(t, never.Authorize(ctx, nil), domain.ErrPaymentDeclined)
	}
}

func TestSimulatorDeterministicUnderSeededRand(t *testing.T) {
	ctx := context.Background()

	outcomes := func() []bool {
		s := NewSimulator(
			WithApprovalRate(0.5),
			WithRand(rand.New(rand.NewPCG(7, 11))),
		)

		var out []bool
		for range 50 {
			out = append(out, s.Authorize(ctx, nil) == nil)
		}
		return out
	}

	assert.Equal(t, outcomes(), outcomes())
}

func TestSimulatorHonorsContextDuringLatency(t *testing.T) {
	s := NewSimulator(WithApprovalRate(1), WithLatency(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.Authorize(ctx, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimulatorRejectsCancelledContext(t *testing.T) {
	s := NewSimulator(WithApprovalRate(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Authorize(ctx, nil), context.Canceled)
}
