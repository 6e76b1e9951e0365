package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// Raw dataset headers mapped onto the canonical column names the service
// uses everywhere else.
var columnAliases = map[string]string{
	"temp_mean":          "temperature",
	"vib_mean":           "vibration",
	"current_mean":       "current",
	"oil_particle_count": "oil_particles",
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads the dataset file into memory and returns the populated store.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return LoadCSVFrom(f)
}

// LoadCSVFrom parses CSV rows from r. Parsing is tolerant: unknown columns
// are ignored, numeric fields that fail to parse become 0, and unparseable
// timestamps are coerced to the zero time rather than rejecting the row.
func LoadCSVFrom(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		cols[name] = i
	}

	var rows []domain.Reading
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, domain.Reading{
			MachineID:      field(record, cols, "machine_id"),
			MachineType:    field(record, cols, "machine_type"),
			Timestamp:      parseTimestamp(field(record, cols, "timestamp")),
			Temperature:    parseFloat(field(record, cols, "temperature")),
			Vibration:      parseFloat(field(record, cols, "vibration")),
			Current:        parseFloat(field(record, cols, "current")),
			OilParticles:   parseFloat(field(record, cols, "oil_particles")),
			RPM:            parseFloat(field(record, cols, "rpm")),
			FailureNext24h: field(record, cols, "failure_next_24h"),
		})
	}
	return New(rows), nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
