package analytics

import "github.com/ai4bmi/factory-pulse/internal/domain"

const (
	AlertTempCritical = "TEMPERATURE CRITICAL"
	AlertTempElevated = "TEMPERATURE ELEVATED"
	AlertVibCritical  = "VIBRATION CRITICAL"
	AlertVibElevated  = "VIBRATION ELEVATED"
	AlertOilCritical  = "OIL CONTAMINATION"
	AlertOilWarning   = "OIL WARNING"
)

// Classify maps one reading to zero or more alerts. Per indicator the
// critical tier is checked first, so critical and elevated are mutually
// exclusive and a reading yields at most three alerts.
func Classify(r domain.Reading) []domain.Alert {
	var alerts []domain.Alert

	if r.Temperature > TempCritical {
		alerts = append(alerts, domain.Alert{Type: AlertTempCritical, Severity: SeverityHigh})
	} else if r.Temperature > TempWarning {
		alerts = append(alerts, domain.Alert{Type: AlertTempElevated, Severity: SeverityMedium})
	}

	if r.Vibration > VibCritical {
		alerts = append(alerts, domain.Alert{Type: AlertVibCritical, Severity: SeverityHigh})
	} else if r.Vibration > VibWarning {
		alerts = append(alerts, domain.Alert{Type: AlertVibElevated, Severity: SeverityMedium})
	}

	if r.OilParticles > OilCritical {
		alerts = append(alerts, domain.Alert{Type: AlertOilCritical, Severity: SeverityHigh})
	} else if r.OilParticles > OilWarning {
		alerts = append(alerts, domain.Alert{Type: AlertOilWarning, Severity: SeverityMedium})
	}

	return alerts
}

const (
	StatusFailure     = "FAILURE"
	StatusMaintenance = "MAINTENANCE"
	StatusIdle        = "IDLE"
	StatusActive      = "ACTIVE"
)

// OperationalStatus buckets a reading into a coarse machine state for the
// snapshot view. Legacy: its thresholds predate the calibrated table above
// and were never recalibrated against the dataset; do not reuse them for KPI
// counts or alerting.
func OperationalStatus(r domain.Reading) string {
	switch {
	case r.Temperature > 90 && r.Vibration > 80:
		return StatusFailure
	case r.Temperature > 75:
		return StatusMaintenance
	case r.RPM == 0:
		return StatusIdle
	default:
		return StatusActive
	}
}
