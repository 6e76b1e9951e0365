package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/config"
	"github.com/ai4bmi/factory-pulse/internal/database"
	httpHandlers "github.com/ai4bmi/factory-pulse/internal/http"
	"github.com/ai4bmi/factory-pulse/internal/ingest"
	"github.com/ai4bmi/factory-pulse/internal/notify"
	"github.com/ai4bmi/factory-pulse/internal/realtime"
	"github.com/ai4bmi/factory-pulse/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	st, err := loadStore()
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().Int("rows", st.Len()).Msg("reading table loaded")

	deps := &httpHandlers.Deps{Store: st}
	if config.UseCloudServices() && config.SNSTopicArn() != "" {
		notifier, err := notify.NewSNSClient(config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client failed")
		}
		deps.Notifier = notifier
	}

	hub := realtime.NewHub()
	go hub.Run()

	if config.UseLiveIngest() {
		client, err := ingest.Subscribe(config.MQTTBroker(), config.MQTTTopic(), hub)
		if err != nil {
			log.Fatal().Err(err).Msg("live ingest failed")
		}
		defer client.Disconnect(250)
	}

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, deps)
	realtime.Register(app, hub, config.RealtimeInterval())

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}

func loadStore() (*store.Store, error) {
	if config.UseDatabase() {
		db, err := database.Connect()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return store.LoadPostgres(db)
	}
	return store.LoadCSV(config.DataPath())
}
