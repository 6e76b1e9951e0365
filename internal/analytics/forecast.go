package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

var (
	// ErrMachineNotFound is returned when no rows exist for the requested
	// machine.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrInvalidProjection is returned when the target date does not fall
	// strictly after the machine's observed range; such requests belong on
	// the historical path.
	ErrInvalidProjection = errors.New("target date within observed range")
)

// Number of most-recent rows the trend is fitted over.
const fitWindow = 30

const dateLayout = "02/01/2006"

// Predict projects each tracked indicator of a machine to a future date:
// predicted = mean over the fit window + OLS slope × projected days, clamped
// at zero. Status and confidence derive from the projected temperature, with
// confidence decaying one point per 30 projected days down to a floor of 50.
func Predict(machineID, machineType string, targetDate time.Time, rows []domain.Reading) (*domain.Forecast, error) {
	history := make([]domain.Reading, 0, len(rows))
	for _, r := range rows {
		if r.MachineID == machineID && r.HasTimestamp() {
			history = append(history, r)
		}
	}
	if len(history) == 0 {
		return nil, ErrMachineNotFound
	}

	sort.SliceStable(history, func(i, j int) bool { return history[i].Timestamp.Before(history[j].Timestamp) })
	minDate := history[0].Timestamp
	maxDate := history[len(history)-1].Timestamp

	projectionDays := int(targetDate.Sub(maxDate).Hours() / 24)
	if projectionDays <= 0 {
		return nil, ErrInvalidProjection
	}

	window := history
	if len(window) > fitWindow {
		window = window[len(window)-fitWindow:]
	}

	temp := project(window, projectionDays, func(r domain.Reading) float64 { return r.Temperature })
	vib := project(window, projectionDays, func(r domain.Reading) float64 { return r.Vibration })
	current := project(window, projectionDays, func(r domain.Reading) float64 { return r.Current })

	var status string
	var confidence int
	switch {
	case temp > 90:
		status, confidence = "High risk", 75
	case temp > 75:
		status, confidence = "Moderate risk", 87
	default:
		status, confidence = "Active", 95
	}
	// The further out the projection, the less the trend is worth.
	confidence -= projectionDays / 30
	if confidence < 50 {
		confidence = 50
	}

	return &domain.Forecast{
		Date:                 targetDate.Format(dateLayout),
		DataType:             "Prediction (beyond historical dataset)",
		Equipment:            fmt.Sprintf("%s %s - ID: %s", machineType, machineID, machineID),
		EstimatedTemperature: fmt.Sprintf("%.1f °C", temp),
		EstimatedVibration:   fmt.Sprintf("%.1f mm/s", vib),
		EstimatedCurrent:     fmt.Sprintf("%.1f A", current),
		EstimatedStatus:      status,
		ConfidenceLevel:      fmt.Sprintf("%d%%", confidence),
		Message: fmt.Sprintf(
			"The requested date is beyond the available historical range (%s – %s). Values shown are a trend projection based on observed behaviour. Estimated confidence level: %d%%",
			minDate.Format(dateLayout), maxDate.Format(dateLayout), confidence),
	}, nil
}

// project extrapolates one indicator over the fit window.
func project(window []domain.Reading, projectionDays int, value func(domain.Reading) float64) float64 {
	var sum float64
	for _, r := range window {
		sum += value(r)
	}
	mean := sum / float64(len(window))

	slope := trendSlope(window, value)
	predicted := mean + slope*float64(projectionDays)
	return math.Max(0, predicted)
}

// trendSlope fits an ordinary least-squares line of indicator value against
// elapsed days since the start of the window. With fewer than two points the
// trend is flat.
func trendSlope(window []domain.Reading, value func(domain.Reading) float64) float64 {
	if len(window) < 2 {
		return 0
	}

	start := window[0].Timestamp
	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	var xMean, yMean float64
	for i, r := range window {
		xs[i] = r.Timestamp.Sub(start).Hours() / 24
		ys[i] = value(r)
		xMean += xs[i]
		yMean += ys[i]
	}
	xMean /= float64(len(window))
	yMean /= float64(len(window))

	var num, den float64
	for i := range xs {
		num += (xs[i] - xMean) * (ys[i] - yMean)
		den += (xs[i] - xMean) * (xs[i] - xMean)
	}
	if den == 0 {
		return 0
	}
	return num / den
}
