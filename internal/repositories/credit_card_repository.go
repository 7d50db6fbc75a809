package repositories

import (
	"context"
	"io"

	"cardfolio/internal/models"
)

// CreditCardRepository owns the data file.
//
// Load and Save each hold the sidecar lock only for their own physical read or
// write. A Load followed by a Save is not atomic as a unit: another process may
// save in between and the later writer wins. Update holds the exclusive lock
// across the whole read-modify-write for callers that need it.
type CreditCardRepository interface {
	Load(ctx context.Context) (*RecordSet, error)
	Save(ctx context.Context, set *RecordSet) error
	Update(ctx context.Context, fn func(set *RecordSet) error) error
	Export(ctx context.Context, w io.Writer) error
}

// RecordSet is an in-memory snapshot of the data file.
type RecordSet struct {
	Cards    []models.CreditCard
	Warnings []Warning
}

// Find returns the card with the given id.
func (s *RecordSet) Find(id string) (*models.CreditCard, bool) {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i], true
		}
	}
	return nil, false
}

// Remove deletes the card with the given id and reports whether it existed.
func (s *RecordSet) Remove(id string) bool {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			s.Cards = append(s.Cards[:i], s.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns pointers to the cards that have not been cancelled.
func (s *RecordSet) Active() []*models.CreditCard {
	var out []*models.CreditCard
	for i := range s.Cards {
		if s.Cards[i].Active() {
			out = append(out, &s.Cards[i])
		}
	}
	return out
}

// MaxSortOrder is the highest sort order across every card, 0 when empty.
func (s *RecordSet) MaxSortOrder() int {
	max := 0
	for _, c := range s.Cards {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max
}
