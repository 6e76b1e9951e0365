package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

func flatHistory(machineID string, days int, temp, vib, current float64) []domain.Reading {
	rows := make([]domain.Reading, 0, days)
	for i := 1; i <= days; i++ {
		rows = append(rows, domain.Reading{
			MachineID:   machineID,
			MachineType: "Pump",
			Timestamp:   time.Date(2025, time.January, i, 0, 0, 0, 0, time.UTC),
			Temperature: temp,
			Vibration:   vib,
			Current:     current,
		})
	}
	return rows
}

func TestPredictFlatTrend(t *testing.T) {
	rows := flatHistory("M1", 10, 62.0, 4.0, 9.0)
	// Last observation Jan 10; 30 whole days out.
	target := time.Date(2025, time.February, 9, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)

	// No trend: prediction equals the window mean for every indicator.
	assert.Equal(t, "62.0 °C", fc.EstimatedTemperature)
	assert.Equal(t, "4.0 mm/s", fc.EstimatedVibration)
	assert.Equal(t, "9.0 A", fc.EstimatedCurrent)

	// Base confidence 95 for an active outlook, minus exactly 1 for the
	// 30-day horizon.
	assert.Equal(t, "Active", fc.EstimatedStatus)
	assert.Equal(t, "94%", fc.ConfidenceLevel)
}

func TestPredictRisingTrendScenario(t *testing.T) {
	// Temperature rises 70→78 over five days, slope 2/day.
	var rows []domain.Reading
	for i := 0; i < 5; i++ {
		rows = append(rows, domain.Reading{
			MachineID:   "M1",
			MachineType: "Pump",
			Timestamp:   time.Date(2025, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			Temperature: 70 + float64(i)*2,
		})
	}
	target := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)

	// mean(70..78) + 2*5 = 74 + 10 = 84.
	assert.Equal(t, "84.0 °C", fc.EstimatedTemperature)
	assert.Equal(t, "Moderate risk", fc.EstimatedStatus)
	// 5 projected days: no decay yet.
	assert.Equal(t, "87%", fc.ConfidenceLevel)
	assert.Equal(t, "10/01/2025", fc.Date)
	assert.Contains(t, fc.Message, "01/01/2025 – 05/01/2025")
	assert.Contains(t, fc.Equipment, "Pump M1")
}

func TestPredictHighRiskTier(t *testing.T) {
	rows := flatHistory("M1", 5, 92.0, 5.0, 10.0)
	target := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)
	assert.Equal(t, "High risk", fc.EstimatedStatus)
	assert.Equal(t, "75%", fc.ConfidenceLevel)
}

func TestPredictConfidenceFloor(t *testing.T) {
	rows := flatHistory("M1", 5, 62.0, 4.0, 9.0)
	// ~4000 days out: 95 - 133 would go far below the floor.
	target := time.Date(2036, time.January, 1, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)
	assert.Equal(t, "50%", fc.ConfidenceLevel)
}

func TestPredictClampsNegativeProjections(t *testing.T) {
	// Current falls 10→2 over five days; projecting far enough ahead drives
	// the raw estimate negative.
	var rows []domain.Reading
	for i := 0; i < 5; i++ {
		rows = append(rows, domain.Reading{
			MachineID:   "M1",
			MachineType: "Pump",
			Timestamp:   time.Date(2025, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			Temperature: 60,
			Current:     10 - float64(i)*2,
		})
	}
	target := time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)
	assert.Equal(t, "0.0 A", fc.EstimatedCurrent)
}

func TestPredictSinglePointHasFlatSlope(t *testing.T) {
	rows := flatHistory("M1", 1, 70.0, 5.0, 8.0)
	target := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)
	assert.Equal(t, "70.0 °C", fc.EstimatedTemperature)
}

func TestPredictUsesLast30Points(t *testing.T) {
	// 40 days of history: first 10 days burn hot, last 30 are a steady 60.
	var rows []domain.Reading
	for i := 0; i < 40; i++ {
		temp := 100.0
		if i >= 10 {
			temp = 60.0
		}
		rows = append(rows, domain.Reading{
			MachineID:   "M1",
			Timestamp:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Temperature: temp,
		})
	}
	target := rows[len(rows)-1].Timestamp.AddDate(0, 0, 10)

	fc, err := Predict("M1", "Pump", target, rows)
	require.NoError(t, err)
	// Only the flat tail is in the fit window.
	assert.Equal(t, "60.0 °C", fc.EstimatedTemperature)
}

func TestPredictErrors(t *testing.T) {
	rows := flatHistory("M1", 5, 62.0, 4.0, 9.0)

	t.Run("unknown machine", func(t *testing.T) {
		_, err := Predict("M9", "Pump", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), rows)
		assert.ErrorIs(t, err, ErrMachineNotFound)
	})

	t.Run("target before observed range", func(t *testing.T) {
		_, err := Predict("M1", "Pump", time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), rows)
		assert.ErrorIs(t, err, ErrInvalidProjection)
	})

	t.Run("target equal to max observed date", func(t *testing.T) {
		_, err := Predict("M1", "Pump", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), rows)
		assert.ErrorIs(t, err, ErrInvalidProjection)
	})
}
