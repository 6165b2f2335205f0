// Package mqtt ingests courier pings published to an MQTT broker. Payloads share the
// JSON shape of POST /api/couriers/location.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"couriertracking/internal/core/application/usecases/commands"
	"couriertracking/internal/pkg/errs"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	qos            = 1
	handleTimeout  = 5 * time.Second
	connectTimeout = 10 * time.Second
)

// LocationHandler records a validated ping.
type LocationHandler interface {
	Handle(ctx context.Context, cmd commands.RecordCourierLocationCommand) error
}

type locationMessage struct {
	CourierID string   `json:"courierId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Time      *int64   `json:"time"`
}

// LocationSubscriber feeds MQTT location messages to the tracking engine.
type LocationSubscriber struct {
	client  paho.Client
	topic   string
	handler LocationHandler
	logger  *slog.Logger
}

// NewClient connects to broker and fails when the connection is not up within ten seconds.
func NewClient(broker, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetCleanSession(false)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect: timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return client, nil
}

// NewLocationSubscriber creates a subscriber for topic. A single-level wildcard in the
// topic may carry the courier id, e.g. couriers/+/location.
func NewLocationSubscriber(client paho.Client, topic string, handler LocationHandler, logger *slog.Logger) *LocationSubscriber {
	return &LocationSubscriber{
		client:  client,
		topic:   topic,
		handler: handler,
		logger:  logger.With("component", "mqtt-subscriber", "topic", topic),
	}
}

// Start subscribes with QoS 1.
func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(s.topic, qos, s.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.topic, err)
	}
	s.logger.Info("subscribed")
	return nil
}

// Stop unsubscribes and disconnects.
func (s *LocationSubscriber) Stop() {
	s.client.Unsubscribe(s.topic).WaitTimeout(time.Second)
	s.client.Disconnect(250)
}

func (s *LocationSubscriber) handleMessage(_ paho.Client, msg paho.Message) {
	cmd, err := s.decode(msg)
	if err != nil {
		s.logger.Warn("dropping invalid location message", "msg_topic", msg.Topic(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err = s.handler.Handle(ctx, cmd); err != nil {
		s.logger.Error("record location failed", "courier_id", cmd.CourierID(), "error", err)
	}
}

func (s *LocationSubscriber) decode(msg paho.Message) (commands.RecordCourierLocationCommand, error) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		return commands.RecordCourierLocationCommand{}, fmt.Errorf("decode payload: %w", err)
	}

	courierID := raw.CourierID
	if courierID == "" {
		courierID = courierFromTopic(s.topic, msg.Topic())
	}
	var missing []error
	if raw.Latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("latitude"))
	}
	if raw.Longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("longitude"))
	}
	if raw.Time == nil {
		missing = append(missing, errs.NewValueIsRequiredError("time"))
	}
	if err := errors.Join(missing...); err != nil {
		return commands.RecordCourierLocationCommand{}, err
	}

	return commands.NewRecordCourierLocationCommand(courierID, *raw.Latitude, *raw.Longitude, *raw.Time)
}

// courierFromTopic returns the topic level matched by the first "+" of pattern.
func courierFromTopic(pattern, topic string) string {
	p := strings.Split(pattern, "/")
	t := strings.Split(topic, "/")
	for i, level := range p {
		if level == "+" && i < len(t) {
			return t[i]
		}
	}
	return ""
}
