package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/analytics"
	"github.com/ai4bmi/factory-pulse/internal/domain"
	"github.com/ai4bmi/factory-pulse/internal/notify"
	"github.com/ai4bmi/factory-pulse/internal/store"
)

// Request windows, fixed to the sizes the dashboard was built against.
const (
	listWindow    = 100
	machineWindow = 50
	alertWindow   = 50
	kpiWindow     = 500
	heatmapWindow = 200
)

type Deps struct {
	Store    *store.Store
	Notifier *notify.SNSClient // nil when cloud services are disabled
}

func Register(app *fiber.App, deps *Deps) {
	machines := app.Group("/machines")
	machines.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(deps.Store.Tail(listWindow))
	})
	machines.Get("/:id", func(c *fiber.Ctx) error {
		rows := deps.Store.ByMachine(c.Params("id"))
		if len(rows) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "machine not found"})
		}
		if len(rows) > machineWindow {
			rows = rows[len(rows)-machineWindow:]
		}
		return c.JSON(rows)
	})

	app.Get("/alerts", func(c *fiber.Ctx) error {
		return c.JSON(scanAlerts(deps))
	})

	an := app.Group("/analytics")
	an.Get("/kpis", func(c *fiber.Ctx) error {
		return c.JSON(analytics.ComputeKPIs(deps.Store.Tail(kpiWindow)))
	})
	an.Get("/top-critical", func(c *fiber.Ctx) error {
		return c.JSON(analytics.ComputeTopCritical(deps.Store.Tail(kpiWindow), 5))
	})
	an.Get("/heatmap", func(c *fiber.Ctx) error {
		return c.JSON(analytics.ComputeHeatmap(deps.Store.Tail(heatmapWindow)))
	})
	an.Get("/machine-timeseries/:id", func(c *fiber.Ctx) error {
		rows := deps.Store.ByMachine(c.Params("id"))
		if len(rows) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "machine not found"})
		}
		return c.JSON(analytics.MachineTimeseries(rows))
	})

	factory := app.Group("/factory")
	factory.Get("/realtime", func(c *fiber.Ctx) error {
		rows := deps.Store.Tail(1)
		snapshots := make([]domain.Snapshot, 0, len(rows))
		for _, r := range rows {
			snapshots = append(snapshots, domain.Snapshot{Reading: r, Status: analytics.OperationalStatus(r)})
		}
		return c.JSON(snapshots)
	})
	factory.Get("/history", historyHandler(deps))
}

// scanAlerts classifies the most recent readings and groups the resulting
// alerts per row. Rows within normal range produce no entry.
func scanAlerts(deps *Deps) []domain.MachineAlerts {
	rows := deps.Store.Tail(alertWindow)

	groups := make([]domain.MachineAlerts, 0)
	var critical []domain.MachineAlerts
	for _, r := range rows {
		alerts := analytics.Classify(r)
		if len(alerts) == 0 {
			continue
		}
		group := domain.MachineAlerts{
			MachineID: r.MachineID,
			Timestamp: r.Timestamp,
			Alerts:    alerts,
		}
		groups = append(groups, group)
		for _, a := range alerts {
			if a.Severity == analytics.SeverityHigh {
				critical = append(critical, group)
				break
			}
		}
	}

	if deps.Notifier != nil && len(critical) > 0 {
		go func() {
			if err := deps.Notifier.PublishCriticalAlerts(context.Background(), critical); err != nil {
				log.Error().Err(err).Msg("alert notification failed")
			}
		}()
	}
	return groups
}
