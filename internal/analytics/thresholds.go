package analytics

// Thresholds calibrated on the real distribution of the BMI dataset.
// Temperature: p75 ≈ 63.3°C, p90 ≈ 75.7°C, max ≈ 82°C.
// Vibration:   p75 ≈ 5.7,    p90 ≈ 6.3,    max ≈ 9.3.
// Oil:         p75 ≈ 64,     p90 ≈ 76,     max ≈ 144.
// Single source of truth: both the alert classifier and the fleet KPIs read
// these constants.
const (
	TempWarning  = 65.0
	TempCritical = 75.0

	VibWarning  = 5.5
	VibCritical = 6.5

	OilWarning  = 60.0
	OilCritical = 80.0
)

const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
)

// Critical-score weights for the top-critical ranking. Temperature dominates;
// weights sum to 100 so the score lands on a 0-100-ish scale.
const (
	tempWeight = 60.0
	vibWeight  = 40.0
)
