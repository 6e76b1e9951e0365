package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// LatestPerMachine reduces a window of readings to one row per machine: the
// row with the greatest timestamp. Rows without a timestamp cannot be ordered
// and are skipped. The result is sorted by machine_id so every aggregate
// built on it is deterministic.
func LatestPerMachine(rows []domain.Reading) []domain.Reading {
	latest := make(map[string]domain.Reading)
	for _, r := range rows {
		if !r.HasTimestamp() {
			continue
		}
		prev, ok := latest[r.MachineID]
		// Ties on timestamp keep the later row in window order, matching a
		// stable sort-then-take-last.
		if !ok || !r.Timestamp.Before(prev.Timestamp) {
			latest[r.MachineID] = r
		}
	}

	out := make([]domain.Reading, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out
}

// ComputeKPIs summarizes fleet health over the latest reading of each machine
// in the window. An empty window yields the zero-valued summary, never an
// error.
func ComputeKPIs(rows []domain.Reading) domain.KPIs {
	view := LatestPerMachine(rows)
	if len(view) == 0 {
		return domain.KPIs{}
	}

	var kpis domain.KPIs
	kpis.TotalMachines = len(view)

	var tempSum float64
	mostCritical := view[0]
	for _, r := range view {
		tempSum += r.Temperature
		switch {
		case r.Temperature > TempCritical:
			kpis.Failure++
		case r.Temperature > TempWarning:
			kpis.Maintenance++
		default:
			kpis.Active++
		}
		if moreCritical(r, mostCritical) {
			mostCritical = r
		}
	}

	kpis.AverageTemperature = round2(tempSum / float64(len(view)))
	kpis.MostCriticalMachine = mostCritical.MachineID
	return kpis
}

// moreCritical orders by descending (temperature, vibration); the view's
// machine_id order settles full ties.
func moreCritical(a, b domain.Reading) bool {
	if a.Temperature != b.Temperature {
		return a.Temperature > b.Temperature
	}
	return a.Vibration > b.Vibration
}

// CriticalScore is the 0-100-ish instability composite used for ranking:
// temperature and vibration normalized against their critical thresholds and
// weighted 60/40.
func CriticalScore(r domain.Reading) float64 {
	return r.Temperature/TempCritical*tempWeight + r.Vibration/VibCritical*vibWeight
}

// ComputeTopCritical ranks machines by critical score over their latest
// readings and returns at most n entries, most critical first. The sort is
// stable so equal scores keep view order.
func ComputeTopCritical(rows []domain.Reading, n int) []domain.CriticalMachine {
	view := LatestPerMachine(rows)

	ranked := make([]domain.CriticalMachine, 0, len(view))
	for _, r := range view {
		ranked = append(ranked, domain.CriticalMachine{
			MachineID:     r.MachineID,
			CriticalScore: CriticalScore(r),
			MachineType:   r.MachineType,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].CriticalScore > ranked[j].CriticalScore })

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Heat value normalization bounds: 30°C reads as cold, 80°C as critical.
const (
	heatFloor   = 30.0
	heatCeiling = 80.0
)

// ComputeHeatmap groups the latest-per-machine view by machine type and maps
// each machine's temperature onto a 0-100 heat scale. Groups appear in
// first-encounter order over the view.
func ComputeHeatmap(rows []domain.Reading) []domain.HeatmapSeries {
	view := LatestPerMachine(rows)

	var series []domain.HeatmapSeries
	index := make(map[string]int)
	for _, r := range view {
		i, ok := index[r.MachineType]
		if !ok {
			i = len(series)
			index[r.MachineType] = i
			series = append(series, domain.HeatmapSeries{Name: r.MachineType})
		}
		heat := (r.Temperature - heatFloor) / (heatCeiling - heatFloor) * 100
		heat = math.Max(0, math.Min(100, heat))
		series[i].Data = append(series[i].Data, domain.HeatmapPoint{
			X: r.MachineID,
			Y: round1(heat),
		})
	}
	return series
}

// MachineTimeseries maps one machine's rows to an ascending (time, temp, vib)
// sequence. Rows without timestamps are dropped; same-timestamp rows are all
// kept.
func MachineTimeseries(rows []domain.Reading) []domain.TimeseriesPoint {
	ordered := make([]domain.Reading, 0, len(rows))
	for _, r := range rows {
		if r.HasTimestamp() {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestamp.Before(ordered[j].Timestamp) })

	points := make([]domain.TimeseriesPoint, 0, len(ordered))
	for _, r := range ordered {
		points = append(points, domain.TimeseriesPoint{
			Time: r.Timestamp.Format(time.RFC3339),
			Temp: round1(r.Temperature),
			Vib:  round2(r.Vibration),
		})
	}
	return points
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
