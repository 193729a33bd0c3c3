package domain

import (
	"fmt"
	"strings"
	"sync"
)

// HeldMarker is how a held seat shows up in a rendered seat map.
const HeldMarker = "[X]"

// auditoriumRows is the fixed set of row labels every auditorium uses.
var auditoriumRows = []string{"A", "B", "C", "D", "E"}

type seat struct {
	id     string
	row    string
	number int
	held   bool
}

// Auditorium owns the seats of one hall. All seat state is guarded by a
// single lock, so a hold observes exactly one winner per seat no matter how
// many callers race for it.
type Auditorium struct {
	number   int
	capacity int

	mu      sync.RWMutex
	seats   map[string]*seat
	ordered []string // seat ids, row-major, ascending number
}

// NewAuditorium creates an auditorium and distributes capacity evenly across
// the fixed rows using integer division. A capacity that does not divide
// evenly by the row count is truncated: the remainder seats are never
// created. This mirrors the behavior the box office has always had and is
// relied on by seat-map layouts.
func NewAuditorium(number, capacity int) *Auditorium {
	a := &Auditorium{
		number:   number,
		capacity: capacity,
		seats:    make(map[string]*seat),
	}

	perRow := capacity / len(auditoriumRows)

	for _, row := range auditoriumRows {
		for n := 1; n <= perRow; n++ {
			id := fmt.Sprintf("%s%d", row, n)
			a.seats[id] = &seat{id: id, row: row, number: n}
			a.ordered = append(a.ordered, id)
		}
	}

	return a
}

func (a *Auditorium) Number() int { return a.number }

// Capacity returns the requested capacity, which may exceed the number of
// seats that actually exist when truncation applied.
func (a *Auditorium) Capacity() int { return a.capacity }

// Seats returns the number of seats that actually exist.
func (a *Auditorium) Seats() int {
	return len(a.ordered)
}

// IsAvailable reports whether the seat exists and is not currently held.
func (a *Auditorium) IsAvailable(seatID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.seats[seatID]
	return ok && !s.held
}

// Hold claims the seat exclusively. It fails with ErrSeatUnavailable when
// the seat does not exist or is already held; on failure no state changes.
func (a *Auditorium) Hold(seatID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.seats[seatID]
	if !ok || s.held {
		return ErrSeatUnavailable
	}

	s.held = true

	return nil
}

// Release marks the seat unheld. It is idempotent and ignores unknown ids,
// so callers on failure paths can release unconditionally.
func (a *Auditorium) Release(seatID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.seats[seatID]; ok {
		s.held = false
	}
}

// IsHeld reports whether the seat exists and is currently held.
func (a *Auditorium) IsHeld(seatID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.seats[seatID]
	return ok && s.held
}

// AvailableSeatIDs lists unheld seats in row-major order, ascending number
// within each row.
func (a *Auditorium) AvailableSeatIDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var ids []string
	for _, id := range a.ordered {
		if !a.seats[id].held {
			ids = append(ids, id)
		}
	}

	return ids
}

// AvailableSeats returns the count of unheld seats.
func (a *Auditorium) AvailableSeats() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for _, s := range a.seats {
		if !s.held {
			count++
		}
	}

	return count
}

// SeatMap renders the seat layout, one line per row, rows sorted by label.
// Held seats appear as the held marker, free seats as their id.
func (a *Auditorium) SeatMap() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var b strings.Builder
	currentRow := ""

	for i, id := range a.ordered {
		s := a.seats[id]

		if s.row != currentRow {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(s.row + ":")
			currentRow = s.row
		}

		b.WriteString(" ")
		if s.held {
			b.WriteString(HeldMarker)
		} else {
			b.WriteString(s.id)
		}
	}

	return b.String()
}
