package domain

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusConfirmed     OrderStatus = "confirmed"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
)

// OrderSequence hands out order ids of the form ORD-<YYYYMMDD>-<NNN>. The
// counter lives for the process and is shared by every order the service
// creates; it resets only on restart.
type OrderSequence struct {
	counter atomic.Int64
	now     func() time.Time
}

func NewOrderSequence() *OrderSequence {
	return &OrderSequence{now: time.Now}
}

func (s *OrderSequence) NextID() string {
	n := s.counter.Add(1)
	return fmt.Sprintf("ORD-%s-%03d", s.now().Format("20060102"), n)
}

// Order is a customer's bundle of tickets moving through a payment state
// machine: Pending, then exactly one of Confirmed or PaymentFailed. Both
// end states are terminal; a customer who wants to retry gets a new order.
type Order struct {
	id        string
	customer  *Customer
	createdAt time.Time

	mu      sync.Mutex
	tickets []*Ticket
	total   decimal.Decimal
	status  OrderStatus
}

func NewOrder(seq *OrderSequence, customer *Customer) *Order {
	return &Order{
		id:        seq.NextID(),
		customer:  customer,
		createdAt: time.Now(),
		total:     decimal.Zero,
		status:    OrderStatusPending,
	}
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Customer() *Customer  { return o.customer }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) Status() OrderStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.status
}

func (o *Order) Total() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.total
}

func (o *Order) Tickets() []*Ticket {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*Ticket, len(o.tickets))
	copy(out, o.tickets)

	return out
}

// AddTicket appends a ticket and recomputes the total from scratch. The
// total is always the sum of the ticket price snapshots, never an
// incrementally maintained figure that could drift.
func (o *Order) AddTicket(t *Ticket) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.tickets = append(o.tickets, t)

	total := decimal.Zero
	for _, ticket := range o.tickets {
		total = total.Add(ticket.Price)
	}
	o.total = total
}

// Confirm drives the order through payment. Only a pending order can be
// confirmed; anything else gets ErrOrderNotPending. The provider is called
// without the order lock held, since providers read order fields and the
// call may block on simulated (or real) gateway latency. A declined or
// timed-out authorization moves the order to PaymentFailed and returns
// ErrPaymentDeclined; releasing any held seats stays the caller's job,
// because orders know nothing about seat maps.
func (o *Order) Confirm(ctx context.Context, provider PaymentProvider) error {
	o.mu.Lock()
	if o.status != OrderStatusPending {
		o.mu.Unlock()
		return ErrOrderNotPending
	}
	o.mu.Unlock()

	err := provider.Authorize(ctx, o)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != OrderStatusPending {
		return ErrOrderNotPending
	}

	if err != nil {
		o.status = OrderStatusPaymentFailed

		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrPaymentDeclined, ctx.Err())
		}
		return err
	}

	o.status = OrderStatusConfirmed

	return nil
}
