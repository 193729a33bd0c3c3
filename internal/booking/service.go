// Package booking is the synchronous API the presentation shell drives: it
// orchestrates seat holds, ticket issuance, orders and payment, and owns
// the process-wide order sequence and ticket code generator.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/cinematorino/boxoffice/internal/mailer"
	appvalidator "github.com/cinematorino/boxoffice/internal/validator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrInvalidInput wraps validation failures on purchase requests. The shell
// recovers from it locally; it never reflects core state.
var ErrInvalidInput = errors.New("invalid input")

const confirmationTemplate = "order_confirmation.tmpl"

// DefaultPaymentTimeout bounds how long a payment authorization may block.
// Expiry counts as a declined payment and releases the seat.
const DefaultPaymentTimeout = 5 * time.Second

type Service struct {
	cinema   *domain.Cinema
	payments domain.PaymentProvider
	mailer   mailer.Mailer
	logger   *slog.Logger
	validate *validator.Validate

	orderSeq       *domain.OrderSequence
	codes          *domain.CodeGenerator
	paymentTimeout time.Duration

	mu     sync.Mutex
	orders []*domain.Order

	wg sync.WaitGroup
}

type Option func(*Service)

func WithPaymentTimeout(d time.Duration) Option {
	return func(s *Service) { s.paymentTimeout = d }
}

func New(cinema *domain.Cinema, payments domain.PaymentProvider, m mailer.Mailer, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cinema:         cinema,
		payments:       payments,
		mailer:         m,
		logger:         logger,
		validate:       appvalidator.New(),
		orderSeq:       domain.NewOrderSequence(),
		codes:          domain.NewCodeGenerator(),
		paymentTimeout: DefaultPaymentTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Cinema() *domain.Cinema { return s.cinema }

func (s *Service) AvailableShowings() []*domain.Showing {
	return s.cinema.AvailableShowings()
}

func (s *Service) FindShowing(id string) (*domain.Showing, error) {
	return s.cinema.FindShowing(id)
}

// SeatMap renders the seat layout for a showing's auditorium.
func (s *Service) SeatMap(showingID string) (string, error) {
	showing, err := s.cinema.FindShowing(showingID)
	if err != nil {
		return "", err
	}

	return showing.Auditorium().SeatMap(), nil
}

// Release frees a held seat, for cancellation paths driven by the shell.
func (s *Service) Release(showingID, seatID string) error {
	showing, err := s.cinema.FindShowing(showingID)
	if err != nil {
		return err
	}

	showing.Auditorium().Release(seatID)
	s.logger.Info("seat released", "showing", showingID, "seat", seatID)

	return nil
}

// Orders returns every order the service has created, insertion-ordered.
// Failed orders stay in the log with their terminal state.
func (s *Service) Orders() []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Order, len(s.orders))
	copy(out, s.orders)

	return out
}

// PurchaseRequest carries everything the shell collects for one sale.
type PurchaseRequest struct {
	ShowingID     string `validate:"required"`
	SeatID        string `validate:"required,seat_id"`
	CustomerName  string `validate:"required,min=2,max=100"`
	CustomerEmail string `validate:"required,email_shape"`
	CustomerPhone string `validate:"omitempty,min=5,max=20"`
}

// Purchase is the outcome of a successful sale.
type Purchase struct {
	Order  *domain.Order
	Ticket *domain.Ticket
}

// Purchase runs one sale end to end: validate the request, hold the seat,
// issue the ticket, create the order and confirm payment. The seat is held
// before payment starts and released here if payment fails, so inventory
// can never leak on the failure path. No seat lock is held while the
// provider call blocks.
func (s *Service) Purchase(ctx context.Context, req PurchaseRequest) (*Purchase, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	showing, err := s.cinema.FindShowing(req.ShowingID)
	if err != nil {
		return nil, err
	}

	customer := domain.NewCustomer(uuid.NewString(), req.CustomerName, req.CustomerEmail, req.CustomerPhone)

	auditorium := showing.Auditorium()
	if err := auditorium.Hold(req.SeatID); err != nil {
		return nil, err
	}

	ticket, err := domain.IssueTicket(s.codes, showing, req.SeatID, customer)
	if err != nil {
		auditorium.Release(req.SeatID)
		return nil, err
	}

	order := domain.NewOrder(s.orderSeq, customer)
	order.AddTicket(ticket)

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	confirmCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	if err := order.Confirm(confirmCtx, s.payments); err != nil {
		auditorium.Release(req.SeatID)
		s.logger.Warn("payment failed, seat released",
			"order", order.ID(), "showing", showing.ID(), "seat", req.SeatID, "error", err)

		return nil, err
	}

	s.logger.Info("order confirmed",
		"order", order.ID(), "showing", showing.ID(), "seat", req.SeatID, "total", order.Total())

	s.sendConfirmation(order)

	return &Purchase{Order: order, Ticket: ticket}, nil
}

func (s *Service) validateRequest(req PurchaseRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "CustomerEmail" {
				return domain.ErrInvalidEmail
			}
		}

		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s %s", ErrInvalidInput, fe.Field(), appvalidator.ValidationMessage(fe))
	}

	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

type confirmationData struct {
	CinemaName   string
	OrderID      string
	CustomerName string
	Tickets      []confirmationTicket
	Total        string
}

type confirmationTicket struct {
	Code     string
	Film     string
	StartsAt string
	Seat     string
	Price    string
}

// sendConfirmation mails the receipt in the background so a slow SMTP
// server never stalls the sale that already went through.
func (s *Service) sendConfirmation(order *domain.Order) {
	data := confirmationData{
		CinemaName:   s.cinema.Name(),
		OrderID:      order.ID(),
		CustomerName: order.Customer().Name,
		Total:        order.Total().StringFixed(2),
	}

	for _, t := range order.Tickets() {
		data.Tickets = append(data.Tickets, confirmationTicket{
			Code:     t.Code,
			Film:     t.Showing.Title(),
			StartsAt: t.Showing.StartsAt(),
			Seat:     t.SeatID,
			Price:    t.Price.StringFixed(2),
		})
	}

	recipient := order.Customer().Email

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("confirmation mail panicked", "order", data.OrderID, "panic", r)
			}
		}()

		if err := s.mailer.Send(recipient, confirmationTemplate, data); err != nil {
			s.logger.Error("failed to send confirmation mail", "order", data.OrderID, "error", err)
		}
	}()
}

// Wait blocks until background work (confirmation mail) has finished. The
// shell calls it on shutdown; tests use it to assert on sent mail.
func (s *Service) Wait() {
	s.wg.Wait()
}
