package domain

import (
	"github.com/shopspring/decimal"
)

// Showing is one scheduled screening of a film in one auditorium at one
// price. Identity and price are fixed at construction; tickets snapshot the
// price at issuance, so later showings of the same film can be repriced
// without touching sold tickets.
type Showing struct {
	id         string
	title      string
	startsAt   string
	price      decimal.Decimal
	auditorium *Auditorium
}

func NewShowing(id, title, startsAt string, auditorium *Auditorium, price decimal.Decimal) *Showing {
	return &Showing{
		id:         id,
		title:      title,
		startsAt:   startsAt,
		price:      price,
		auditorium: auditorium,
	}
}

func (s *Showing) ID() string              { return s.id }
func (s *Showing) Title() string           { return s.title }
func (s *Showing) StartsAt() string        { return s.startsAt }
func (s *Showing) Price() decimal.Decimal  { return s.price }
func (s *Showing) Auditorium() *Auditorium { return s.auditorium }

// RemainingCapacity is the number of seats still available in the
// auditorium hosting this showing.
func (s *Showing) RemainingCapacity() int {
	return s.auditorium.AvailableSeats()
}

func (s *Showing) AvailableSeatIDs() []string {
	return s.auditorium.AvailableSeatIDs()
}
