package domain

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const codeSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces ticket codes of the form
// TKT-<YYYYMMDDHHMMSS>-<4 uppercase alphanumerics>. Uniqueness is
// probabilistic: within one second there are 36^4 possible suffixes, which
// is plenty for a single box office.
type CodeGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

func NewCodeGenerator() *CodeGenerator {
	seed := uint64(time.Now().UnixNano())
	return newCodeGenerator(rand.New(rand.NewPCG(seed, seed>>1)), time.Now)
}

func newCodeGenerator(r *rand.Rand, now func() time.Time) *CodeGenerator {
	return &CodeGenerator{rand: r, now: now}
}

func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = codeSuffixAlphabet[g.rand.IntN(len(codeSuffixAlphabet))]
	}

	return fmt.Sprintf("TKT-%s-%s", g.now().Format("20060102150405"), suffix)
}

// Ticket is the immutable record of one seat sold for one showing to one
// customer. It borrows its showing and customer from the catalog and the
// caller; it owns nothing but its code and price snapshot.
type Ticket struct {
	Code     string
	Showing  *Showing
	SeatID   string
	Customer *Customer
	Price    decimal.Decimal
	IssuedAt time.Time
}

// IssueTicket records the sale of a held seat. The seat must already be
// held by the caller; issuing never claims the seat itself. A ticket for an
// unheld seat would break the no-double-booking guarantee, so that case is
// refused outright.
func IssueTicket(gen *CodeGenerator, showing *Showing, seatID string, customer *Customer) (*Ticket, error) {
	if !showing.Auditorium().IsHeld(seatID) {
		return nil, ErrSeatNotHeld
	}

	return &Ticket{
		Code:     gen.Next(),
		Showing:  showing,
		SeatID:   seatID,
		Customer: customer,
		Price:    showing.Price(),
		IssuedAt: time.Now(),
	}, nil
}
