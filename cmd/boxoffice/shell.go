package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cinematorino/boxoffice/internal/booking"
	"github.com/cinematorino/boxoffice/internal/domain"
)

const divider = "=================================================="

// shell is the interactive menu loop. All formatting and input parsing
// lives here; the booking service is the only thing it talks to.
type shell struct {
	svc *booking.Service
	in  *bufio.Scanner
	out io.Writer
}

func newShell(svc *booking.Service, in io.Reader, out io.Writer) *shell {
	return &shell{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (sh *shell) run() {
	for {
		sh.printf("\n%s\n  %s BOX OFFICE\n%s\n", divider, strings.ToUpper(sh.svc.Cinema().Name()), divider)
		sh.printf("\n1. List showings\n2. Buy a ticket\n3. List orders\n4. Quit\n\n")

		switch sh.prompt("Choice: ") {
		case "1":
			sh.listShowings()
		case "2":
			sh.buyTicket()
		case "3":
			sh.listOrders()
		case "4":
			sh.printf("\nThanks for visiting %s. Goodbye!\n", sh.svc.Cinema().Name())
			return
		default:
			sh.printf("\nInvalid choice, try again.\n")
		}
	}
}

func (sh *shell) listShowings() {
	showings := sh.svc.AvailableShowings()
	if len(showings) == 0 {
		sh.printf("\nNo showings available right now.\n")
		return
	}

	sh.printf("\nShowings:\n")
	for i, s := range showings {
		sh.printf("%d. %s\n   Seats available: %d/%d\n",
			i+1, formatShowing(s), s.RemainingCapacity(), s.Auditorium().Capacity())
	}
}

func (sh *shell) buyTicket() {
	showings := sh.svc.AvailableShowings()
	if len(showings) == 0 {
		sh.printf("\nNo showings available right now.\n")
		return
	}

	sh.printf("\nShowings:\n")
	for i, s := range showings {
		sh.printf("%d. %s\n", i+1, formatShowing(s))
	}

	choice, err := strconv.Atoi(sh.prompt("\nSelect a showing (number): "))
	if err != nil || choice < 1 || choice > len(showings) {
		sh.printf("Invalid selection.\n")
		return
	}
	showing := showings[choice-1]

	seatMap, err := sh.svc.SeatMap(showing.ID())
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}

	sh.printf("\nSeat map:\n%s\n", seatMap)
	sh.printf("\nAvailable seats: %s\n", previewSeats(showing.AvailableSeatIDs(), 10))

	seatID := strings.ToUpper(strings.TrimSpace(sh.prompt("\nSelect a seat (e.g. A1): ")))
	if !showing.Auditorium().IsAvailable(seatID) {
		sh.printf("Seat not available or unknown.\n")
		return
	}

	sh.printf("\n--- Customer details ---\n")
	name := sh.prompt("Full name: ")
	email := sh.prompt("Email: ")
	phone := sh.prompt("Phone (optional): ")

	sh.printf("\n%s\n  ORDER PREVIEW\n%s\n", divider, divider)
	sh.printf("%s\nSeat: %s\nTotal: EUR %s\n", formatShowing(showing), seatID, showing.Price().StringFixed(2))

	if !strings.EqualFold(sh.prompt("\nConfirm purchase? (y/n): "), "y") {
		sh.printf("Purchase cancelled.\n")
		return
	}

	sh.printf("\nProcessing payment...\n")

	purchase, err := sh.svc.Purchase(context.Background(), booking.PurchaseRequest{
		ShowingID:     showing.ID(),
		SeatID:        seatID,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
	})

	switch {
	case err == nil:
		sh.printf("\nPayment confirmed!\n%s", formatTicket(purchase.Ticket))
		sh.printf("A confirmation has been sent to %s\n", email)
	case errors.Is(err, domain.ErrPaymentDeclined):
		sh.printf("\nPayment failed, the seat has been released. Please try again.\n")
	case errors.Is(err, domain.ErrSeatUnavailable):
		sh.printf("\nSomeone got that seat first, pick another one.\n")
	case errors.Is(err, domain.ErrInvalidEmail):
		sh.printf("\nThat email address does not look valid.\n")
	case errors.Is(err, booking.ErrInvalidInput):
		sh.printf("\n%v\n", err)
	default:
		sh.printf("\nError: %v\n", err)
	}
}

func (sh *shell) listOrders() {
	orders := sh.svc.Orders()
	if len(orders) == 0 {
		sh.printf("\nNo orders yet.\n")
		return
	}

	for _, o := range orders {
		sh.printf("%s", formatOrder(o))
	}
}

func (sh *shell) prompt(label string) string {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		return ""
	}
	return strings.TrimSpace(sh.in.Text())
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func previewSeats(ids []string, limit int) string {
	if len(ids) <= limit {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:limit], ", ") + "..."
}
