package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/config"
	"github.com/ai4bmi/factory-pulse/internal/domain"
)

var machineTypes = []string{"Pump", "Compressor", "Conveyor", "CNC", "Robot"}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	for i := 0; i < 100; i++ {
		n := rand.Intn(5)
		r := domain.Reading{
			MachineID:    fmt.Sprintf("M-%03d", n+1),
			MachineType:  machineTypes[n],
			Timestamp:    time.Now().UTC(),
			Temperature:  55 + rand.Float64()*30,
			Vibration:    3 + rand.Float64()*5,
			Current:      8 + rand.Float64()*4,
			OilParticles: 30 + rand.Float64()*60,
			RPM:          1200 + rand.Float64()*600,
		}
		payload, _ := json.Marshal(r)
		token := client.Publish(config.MQTTTopic(), 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
