package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketCodeRgx = regexp.MustCompile(`^TKT-\d{14}-[A-Z0-9]{4}$`)

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestCodeGeneratorFormat(t *testing.T) {
	gen := newCodeGenerator(
		rand.New(rand.NewPCG(1, 2)),
		func() time.Time { return time.Date(2025, 3, 14, 20, 30, 0, 0, time.UTC) },
	)

	code := gen.Next()

	assert.Regexp(t, ticketCodeRgx, code)
	assert.Equal(t, "TKT-20250314203000", code[:18])
}

func TestCodeGeneratorDistinctness(t *testing.T) {
	// Within a single second the four random characters are the only
	// disambiguator, a probabilistic guarantee by design. Across seconds
	// the timestamp makes codes distinct regardless of the random suffix,
	// which is what this pins down.
	gen := newCodeGenerator(
		rand.New(rand.NewPCG(42, 1)),
		fixedClock(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), time.Second),
	)

	seen := make(map[string]struct{}, 10_000)
	for range 10_000 {
		code := gen.Next()
		_, dup := seen[code]
		require.False(t, dup, "duplicate ticket code %s", code)
		seen[code] = struct{}{}
	}
}

func TestIssueTicket(t *testing.T) {
	gen := NewCodeGenerator()
	auditorium := NewAuditorium(1, 30)
	showing := NewShowing("S001", "Il Padrino", "20:30", auditorium, decimal.NewFromFloat(9.00))
	customer := NewCustomer("c1", "Mario Rossi", "mario@example.com", "")

	t.Run("fails when the seat is not held", func(t *testing.T) {
		_, err := IssueTicket(gen, showing, "B3", customer)
		assert.ErrorIs(t, err, ErrSeatNotHeld)
	})

	t.Run("fails for an unknown seat", func(t *testing.T) {
		_, err := IssueTicket(gen, showing, "Z9", customer)
		assert.ErrorIs(t, err, ErrSeatNotHeld)
	})

	t.Run("records the sale of a held seat", func(t *testing.T) {
		require.NoError(t, auditorium.Hold("B3"))

		ticket, err := IssueTicket(gen, showing, "B3", customer)
		require.NoError(t, err)

		assert.Regexp(t, ticketCodeRgx, ticket.Code)
		assert.Equal(t, "B3", ticket.SeatID)
		assert.Same(t, showing, ticket.Showing)
		assert.Same(t, customer, ticket.Customer)
		assert.True(t, ticket.Price.Equal(decimal.NewFromFloat(9.00)),
			fmt.Sprintf("price snapshot = %s", ticket.Price))
		assert.False(t, ticket.IssuedAt.IsZero())
	})
}
