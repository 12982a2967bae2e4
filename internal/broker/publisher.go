package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smart_plant/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes resolved actuator states to the devices.
type Publisher interface {
	PublishActuatorState(ctx context.Context, plantID string, state models.ActuatorState) error
	Close()
}

type Config struct {
	BrokerURL      string
	ClientID       string
	TopicPrefix    string
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

const (
	defaultConnectTimeout = 5 * time.Second
	defaultPublishTimeout = 2 * time.Second
	disconnectQuiesceMs   = 250
)

var ErrNotConnected = errors.New("mqtt client not connected")

// MQTTPublisher publishes retained QoS 0 messages to <prefix>/<plant_id>/actuators.
type MQTTPublisher struct {
	client         mqtt.Client
	prefix         string
	publishTimeout time.Duration
}

// Connect dials the broker and returns a ready publisher.
func Connect(cfg Config) (*MQTTPublisher, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timed out after %s", cfg.BrokerURL, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.BrokerURL, err)
	}
	return NewMQTTPublisher(client, cfg.TopicPrefix, cfg.PublishTimeout), nil
}

// NewMQTTPublisher wraps an already configured client.
func NewMQTTPublisher(client mqtt.Client, prefix string, publishTimeout time.Duration) *MQTTPublisher {
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &MQTTPublisher{client: client, prefix: prefix, publishTimeout: publishTimeout}
}

func ActuatorTopic(prefix, plantID string) string {
	if prefix == "" {
		return plantID + "/actuators"
	}
	return prefix + "/" + plantID + "/actuators"
}

func (p *MQTTPublisher) PublishActuatorState(ctx context.Context, plantID string, state models.ActuatorState) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}

	topic := ActuatorTopic(p.prefix, plantID)
	token := p.client.Publish(topic, 0, true, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.publishTimeout):
		return fmt.Errorf("publish to %s: timed out after %s", topic, p.publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesceMs)
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishActuatorState(context.Context, string, models.ActuatorState) error {
	return nil
}

func (NoopPublisher) Close() {}
