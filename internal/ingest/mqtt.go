package ingest

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/domain"
	"github.com/ai4bmi/factory-pulse/internal/realtime"
)

// Subscribe connects to the broker and forwards every reading published on
// topic to the live hub. Readings received here never enter the historical
// table; the table is immutable after load.
func Subscribe(broker, topic string, hub *realtime.Hub) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var r domain.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("bad live reading payload")
			return
		}
		hub.BroadcastReading(r)
	}

	if token := client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("mqtt subscribe: %w", token.Error())
	}

	log.Info().Str("broker", broker).Str("topic", topic).Msg("live ingest running")
	return client, nil
}
