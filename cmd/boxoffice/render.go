package main

import (
	"fmt"
	"strings"

	"github.com/cinematorino/boxoffice/internal/domain"
)

func formatShowing(s *domain.Showing) string {
	return fmt.Sprintf("%s - %s - Hall %d - EUR %s",
		s.Title(), s.StartsAt(), s.Auditorium().Number(), s.Price().StringFixed(2))
}

func formatTicket(t *domain.Ticket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n           CINEMA TICKET\n%s\n", divider, divider)
	fmt.Fprintf(&b, "Code: %s\n", t.Code)
	fmt.Fprintf(&b, "Film: %s\n", t.Showing.Title())
	fmt.Fprintf(&b, "Time: %s\n", t.Showing.StartsAt())
	fmt.Fprintf(&b, "Hall: %d\n", t.Showing.Auditorium().Number())
	fmt.Fprintf(&b, "Seat: %s\n", t.SeatID)
	fmt.Fprintf(&b, "Customer: %s\n", t.Customer.Name)
	fmt.Fprintf(&b, "Price: EUR %s\n", t.Price.StringFixed(2))
	fmt.Fprintf(&b, "Issued: %s\n", t.IssuedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "%s\n", divider)

	return b.String()
}

func formatOrder(o *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n           ORDER SUMMARY\n%s\n", divider, divider)
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID())
	fmt.Fprintf(&b, "Customer: %s\n", o.Customer().Name)
	fmt.Fprintf(&b, "Email: %s\n", o.Customer().Email)
	fmt.Fprintf(&b, "Date: %s\n", o.CreatedAt().Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Status: %s\n\nTickets:\n", o.Status())

	for i, t := range o.Tickets() {
		fmt.Fprintf(&b, "%d. %s - Seat %s - EUR %s\n", i+1, t.Showing.Title(), t.SeatID, t.Price.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTOTAL: EUR %s\n%s\n", o.Total().StringFixed(2), divider)

	return b.String()
}
