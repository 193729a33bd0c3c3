package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/cinematorino/boxoffice/internal/mailer"
	"github.com/cinematorino/boxoffice/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	svc      *Service
	cinema   *domain.Cinema
	hall     *domain.Auditorium
	showing  *domain.Showing
	provider *mocks.MockPaymentProvider
	mailer   *mailer.MockMailer
}

func (s *ServiceTestSuite) SetupTest() {
	s.cinema = domain.NewCinema("Cinema Torino")
	s.hall = domain.NewAuditorium(1, 30)
	s.cinema.AddAuditorium(s.hall)

	s.showing = domain.NewShowing("S001", "Il Padrino", "20:30", s.hall, decimal.NewFromFloat(9.00))
	s.Require().NoError(s.cinema.AddShowing(s.showing))

	s.provider = new(mocks.MockPaymentProvider)
	s.mailer = mailer.NewMockMailer()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(s.cinema, s.provider, s.mailer, logger)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) request() PurchaseRequest {
	return PurchaseRequest{
		ShowingID:     "S001",
		SeatID:        "B3",
		CustomerName:  "Mario Rossi",
		CustomerEmail: "mario.rossi@example.com",
		CustomerPhone: "+39 011 1234567",
	}
}

func (s *ServiceTestSuite) TestPurchaseSuccess() {
	s.provider.On("Authorize", mock.Anything, mock.Anything).Return(nil).Once()

	purchase, err := s.svc.Purchase(context.Background(), s.request())
	s.Require().NoError(err)

	s.Equal(domain.OrderStatusConfirmed, purchase.Order.Status())
	s.True(purchase.Order.Total().Equal(s.showing.Price()),
		"total = %s, want %s", purchase.Order.Total(), s.showing.Price())
	s.Equal("B3", purchase.Ticket.SeatID)
	s.False(s.hall.IsAvailable("B3"), "sold seat must stay held")
	s.Equal(29, s.showing.RemainingCapacity())

	s.svc.Wait()
	emails := s.mailer.SentEmails()
	s.Require().Len(emails, 1)
	s.Equal("mario.rossi@example.com", emails[0].Recipient)

	s.provider.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestPurchaseDeclinedReleasesSeat() {
	// While payment runs the seat must already be held.
	s.provider.On("Authorize", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			s.Equal(29, s.showing.RemainingCapacity())
			s.False(s.hall.IsAvailable("B3"))
		}).
		Return(domain.ErrPaymentDeclined).Once()

	_, err := s.svc.Purchase(context.Background(), s.request())
	s.Require().ErrorIs(err, domain.ErrPaymentDeclined)

	s.True(s.hall.IsAvailable("B3"), "failed payment must release the seat")
	s.Equal(30, s.showing.RemainingCapacity())

	orders := s.svc.Orders()
	s.Require().Len(orders, 1)
	s.Equal(domain.OrderStatusPaymentFailed, orders[0].Status())

	s.svc.Wait()
	s.Empty(s.mailer.SentEmails(), "no confirmation mail for a failed payment")

	s.provider.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestPurchaseSeatAlreadyHeld() {
	s.Require().NoError(s.hall.Hold("B3"))

	_, err := s.svc.Purchase(context.Background(), s.request())
	s.Require().ErrorIs(err, domain.ErrSeatUnavailable)

	s.Empty(s.svc.Orders())
	s.provider.AssertNotCalled(s.T(), "Authorize", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestPurchaseInvalidEmail() {
	req := s.request()
	req.CustomerEmail = "not-an-email"

	_, err := s.svc.Purchase(context.Background(), req)
	s.Require().ErrorIs(err, domain.ErrInvalidEmail)

	s.True(s.hall.IsAvailable("B3"), "validation failures must not hold seats")
	s.Empty(s.svc.Orders())
	s.provider.AssertNotCalled(s.T(), "Authorize", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestPurchaseValidation() {
	tests := []struct {
		name    string
		mutate  func(*PurchaseRequest)
		wantErr error
	}{
		{
			name:    "missing showing id",
			mutate:  func(r *PurchaseRequest) { r.ShowingID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed seat id",
			mutate:  func(r *PurchaseRequest) { r.SeatID = "3B" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing name",
			mutate:  func(r *PurchaseRequest) { r.CustomerName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "phone too short",
			mutate:  func(r *PurchaseRequest) { r.CustomerPhone = "12" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.request()
			tt.mutate(&req)

			_, err := s.svc.Purchase(context.Background(), req)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	s.provider.AssertNotCalled(s.T(), "Authorize", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestPurchaseUnknownShowing() {
	req := s.request()
	req.ShowingID = "S999"

	_, err := s.svc.Purchase(context.Background(), req)
	s.ErrorIs(err, domain.ErrShowingNotFound)
}

func (s *ServiceTestSuite) TestPurchaseTimeoutReleasesSeat() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(s.cinema, s.provider, s.mailer, logger, WithPaymentTimeout(20*time.Millisecond))

	s.provider.On("Authorize", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(context.DeadlineExceeded).Once()

	_, err := s.svc.Purchase(context.Background(), s.request())
	s.Require().ErrorIs(err, domain.ErrPaymentDeclined)

	s.True(s.hall.IsAvailable("B3"))

	orders := s.svc.Orders()
	s.Require().Len(orders, 1)
	s.Equal(domain.OrderStatusPaymentFailed, orders[0].Status())
}

func (s *ServiceTestSuite) TestRelease() {
	s.Require().NoError(s.hall.Hold("B3"))

	s.Require().NoError(s.svc.Release("S001", "B3"))
	s.True(s.hall.IsAvailable("B3"))

	// releasing an unheld seat is a no-op
	s.Require().NoError(s.svc.Release("S001", "B3"))

	s.ErrorIs(s.svc.Release("S999", "B3"), domain.ErrShowingNotFound)
}

func (s *ServiceTestSuite) TestSeatMap() {
	s.Require().NoError(s.hall.Hold("B3"))

	seatMap, err := s.svc.SeatMap("S001")
	s.Require().NoError(err)
	s.Contains(seatMap, domain.HeldMarker)
	s.NotContains(seatMap, "B3")

	_, err = s.svc.SeatMap("S999")
	s.ErrorIs(err, domain.ErrShowingNotFound)
}

func (s *ServiceTestSuite) TestOrderIDsAreSequential() {
	s.provider.On("Authorize", mock.Anything, mock.Anything).Return(nil).Times(2)

	first, err := s.svc.Purchase(context.Background(), s.request())
	s.Require().NoError(err)

	req := s.request()
	req.SeatID = "B4"
	second, err := s.svc.Purchase(context.Background(), req)
	s.Require().NoError(err)

	prefix := "ORD-" + time.Now().Format("20060102") + "-"
	s.Equal(prefix+"001", first.Order.ID())
	s.Equal(prefix+"002", second.Order.ID())
}
