package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ai4bmi/factory-pulse/internal/analytics"
	"github.com/ai4bmi/factory-pulse/internal/domain"
)

const queryDateLayout = "2006-01-02"

// Rows returned at most for a single-machine historical day.
const historyWindow = 100

// historyHandler is the historical/predictive orchestrator. Without a date it
// returns the latest state of each machine. With a date inside the observed
// range it filters that day. With a date beyond the observed range it
// dispatches to the forecaster, which needs a machine_id to work on.
func historyHandler(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateParam := c.Query("date")
		machineID := c.Query("machine_id")

		if dateParam == "" {
			view := analytics.LatestPerMachine(deps.Store.All())
			if machineID != "" {
				view = filterMachine(view, machineID)
			}
			return c.JSON(view)
		}

		selected, err := time.Parse(queryDateLayout, dateParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date format, expected YYYY-MM-DD"})
		}

		maxDate := deps.Store.MaxTimestamp()
		if selected.After(maxDate) {
			if machineID == "" {
				return c.JSON(fiber.Map{
					"message":          "The requested date is beyond the dataset. Provide a machine_id to get a per-machine forecast.",
					"max_dataset_date": maxDate.Format(queryDateLayout),
				})
			}

			rows := deps.Store.ByMachine(machineID)
			if len(rows) == 0 {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": fmt.Sprintf("machine %s not found", machineID)})
			}

			forecast, err := analytics.Predict(machineID, rows[0].MachineType, selected, rows)
			switch {
			case err == nil:
				return c.JSON(forecast)
			case errors.Is(err, analytics.ErrMachineNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": fmt.Sprintf("machine %s not found", machineID)})
			case errors.Is(err, analytics.ErrInvalidProjection):
				// Less than a whole day beyond this machine's history; treat
				// as a historical query.
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
		}

		return historicalDay(c, deps, selected, machineID)
	}
}

// historicalDay serves the rows recorded on one calendar day.
func historicalDay(c *fiber.Ctx, deps *Deps, selected time.Time, machineID string) error {
	var filtered []domain.Reading
	for _, r := range deps.Store.All() {
		if r.HasTimestamp() && sameDay(r.Timestamp, selected) {
			filtered = append(filtered, r)
		}
	}

	if machineID != "" {
		filtered = filterMachine(filtered, machineID)
		if len(filtered) == 0 {
			return c.JSON(fiber.Map{"message": fmt.Sprintf("No data found for machine '%s' on this date.", machineID)})
		}
		if len(filtered) > historyWindow {
			filtered = filtered[:historyWindow]
		}
		return c.JSON(filtered)
	}

	if len(filtered) == 0 {
		return c.JSON(fiber.Map{"message": "No data found for this date."})
	}

	// One line per machine: the last value of the day.
	return c.JSON(analytics.LatestPerMachine(filtered))
}

func filterMachine(rows []domain.Reading, machineID string) []domain.Reading {
	out := rows[:0]
	for _, r := range rows {
		if r.MachineID == machineID {
			out = append(out, r)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
