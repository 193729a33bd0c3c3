package domain

import "sync"

// Cinema is the catalog of auditoriums and showings for a single venue.
// Both collections are append-only and keep insertion order, which is the
// order listings are presented in.
type Cinema struct {
	name string

	mu          sync.RWMutex
	auditoriums []*Auditorium
	showings    []*Showing
	byID        map[string]*Showing
}

func NewCinema(name string) *Cinema {
	return &Cinema{
		name: name,
		byID: make(map[string]*Showing),
	}
}

func (c *Cinema) Name() string { return c.name }

func (c *Cinema) AddAuditorium(a *Auditorium) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.auditoriums = append(c.auditoriums, a)
}

// AddShowing appends a showing to the program. Showing ids are unique
// within the catalog; a duplicate is rejected so it can never shadow an
// existing showing in lookups.
func (c *Cinema) AddShowing(s *Showing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[s.ID()]; ok {
		return ErrDuplicateShowing
	}

	c.showings = append(c.showings, s)
	c.byID[s.ID()] = s

	return nil
}

func (c *Cinema) Auditoriums() []*Auditorium {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Auditorium, len(c.auditoriums))
	copy(out, c.auditoriums)

	return out
}

func (c *Cinema) Showings() []*Showing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Showing, len(c.showings))
	copy(out, c.showings)

	return out
}

// AvailableShowings filters the program to showings with at least one free
// seat, preserving catalog order.
func (c *Cinema) AvailableShowings() []*Showing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Showing
	for _, s := range c.showings {
		if s.RemainingCapacity() > 0 {
			out = append(out, s)
		}
	}

	return out
}

// FindShowing looks a showing up by id, returning ErrShowingNotFound for
// unknown ids rather than a nil that callers could mistake for a result.
func (c *Cinema) FindShowing(id string) (*Showing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byID[id]
	if !ok {
		return nil, ErrShowingNotFound
	}

	return s, nil
}
