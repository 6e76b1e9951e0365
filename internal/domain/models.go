package domain

import "time"

// Reading is one row of the sensor table: a timestamped set of indicator
// values for a single machine.
type Reading struct {
	MachineID      string    `db:"machine_id" json:"machine_id"`
	MachineType    string    `db:"machine_type" json:"machine_type"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
	Temperature    float64   `db:"temperature" json:"temperature"`
	Vibration      float64   `db:"vibration" json:"vibration"`
	Current        float64   `db:"current" json:"current"`
	OilParticles   float64   `db:"oil_particles" json:"oil_particles"`
	RPM            float64   `db:"rpm" json:"rpm"`
	FailureNext24h string    `db:"failure_next_24h" json:"failure_next_24h,omitempty"`
}

// HasTimestamp reports whether the row carries a usable timestamp. Rows whose
// source timestamp could not be parsed keep the zero time and are skipped by
// time-ordered derivations.
func (r Reading) HasTimestamp() bool { return !r.Timestamp.IsZero() }

type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
}

// MachineAlerts groups the alerts raised by a single reading.
type MachineAlerts struct {
	MachineID string    `json:"machine_id"`
	Timestamp time.Time `json:"timestamp"`
	Alerts    []Alert   `json:"alerts"`
}

// KPIs is the fleet health summary computed over the latest reading of each
// machine. Active + Maintenance + Failure always equals TotalMachines.
type KPIs struct {
	TotalMachines       int     `json:"total_machines"`
	Active              int     `json:"active"`
	Maintenance         int     `json:"maintenance"`
	Failure             int     `json:"failure"`
	AverageTemperature  float64 `json:"average_temperature"`
	MostCriticalMachine string  `json:"most_critical_machine"`
}

type CriticalMachine struct {
	MachineID     string  `json:"machine_id"`
	CriticalScore float64 `json:"critical_score"`
	MachineType   string  `json:"machine_type"`
}

// HeatmapSeries is one machine-type group of normalized heat values, shaped
// for an ApexCharts heatmap.
type HeatmapSeries struct {
	Name string         `json:"name"`
	Data []HeatmapPoint `json:"data"`
}

type HeatmapPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

type TimeseriesPoint struct {
	Time string  `json:"time"`
	Temp float64 `json:"temp"`
	Vib  float64 `json:"vib"`
}

// Forecast is the trend projection returned when a requested date falls
// beyond the observed history of a machine. Values are pre-formatted for
// display, matching the shape the dashboard consumes.
type Forecast struct {
	Date                 string `json:"date"`
	DataType             string `json:"data_type"`
	Equipment            string `json:"equipment"`
	EstimatedTemperature string `json:"estimated_temperature"`
	EstimatedVibration   string `json:"estimated_vibration"`
	EstimatedCurrent     string `json:"estimated_current"`
	EstimatedStatus      string `json:"estimated_status"`
	ConfidenceLevel      string `json:"confidence_level"`
	Message              string `json:"message"`
}

// Snapshot is a reading decorated with its operational status, served by the
// realtime snapshot endpoint.
type Snapshot struct {
	Reading
	Status string `json:"status"`
}
