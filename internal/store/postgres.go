package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// LoadPostgres pulls the full readings table into memory. The database is
// only touched at startup; after that the service runs entirely off the
// in-memory copy.
func LoadPostgres(db *sqlx.DB) (*Store, error) {
	var rows []domain.Reading
	err := db.Select(&rows, `SELECT machine_id, machine_type, timestamp, temperature, vibration, current, oil_particles, rpm, failure_next_24h FROM readings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load readings: %w", err)
	}
	return New(rows), nil
}
