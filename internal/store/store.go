package store

import (
	"time"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// Store is the in-memory reading table. It is populated once at startup and
// never mutated afterwards, so concurrent readers need no locking. Accessors
// return copies so callers can attach derived columns without touching the
// shared rows.
type Store struct {
	rows []domain.Reading
}

func New(rows []domain.Reading) *Store {
	return &Store{rows: rows}
}

func (s *Store) Len() int { return len(s.rows) }

// All returns every row in table order.
func (s *Store) All() []domain.Reading {
	out := make([]domain.Reading, len(s.rows))
	copy(out, s.rows)
	return out
}

// ByMachine returns the rows for one machine, in table order.
func (s *Store) ByMachine(machineID string) []domain.Reading {
	var out []domain.Reading
	for _, r := range s.rows {
		if r.MachineID == machineID {
			out = append(out, r)
		}
	}
	return out
}

// Tail returns the last n rows in table order, or all rows when the table is
// shorter than n.
func (s *Store) Tail(n int) []domain.Reading {
	if n <= 0 || n > len(s.rows) {
		n = len(s.rows)
	}
	out := make([]domain.Reading, n)
	copy(out, s.rows[len(s.rows)-n:])
	return out
}

// MaxTimestamp returns the latest timestamp present in the table. Rows with
// missing timestamps are ignored; the zero time is returned when no row has
// one.
func (s *Store) MaxTimestamp() time.Time {
	var max time.Time
	for _, r := range s.rows {
		if r.HasTimestamp() && r.Timestamp.After(max) {
			max = r.Timestamp
		}
	}
	return max
}
