package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"smart_plant/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient implements only what the publisher calls.
type fakeClient struct {
	mqtt.Client
	connected    bool
	token        *fakeToken
	sent         []published
	disconnected bool
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestActuatorTopic(t *testing.T) {
	if got := ActuatorTopic("smart_plant", "p1"); got != "smart_plant/p1/actuators" {
		t.Fatalf("topic = %q", got)
	}
	if got := ActuatorTopic("", "p1"); got != "p1/actuators" {
		t.Fatalf("topic = %q", got)
	}
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{connected: true, token: newFakeToken(nil, true)}
	p := NewMQTTPublisher(client, "sp", time.Second)

	state := models.ActuatorState{Overridden: true, LampIntensity: 75, WaterPump: true}
	if err := p.PublishActuatorState(context.Background(), "p1", state); err != nil {
		t.Fatalf("PublishActuatorState: %v", err)
	}
	if len(client.sent) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(client.sent))
	}
	msg := client.sent[0]
	if msg.topic != "sp/p1/actuators" || msg.qos != 0 || !msg.retained {
		t.Fatalf("unexpected publish: %+v", msg)
	}
	var got models.ActuatorState
	if err := json.Unmarshal(msg.payload, &got); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if got != state {
		t.Fatalf("payload = %+v, want %+v", got, state)
	}
}

func TestMQTTPublisher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		ctx    func() context.Context
	}{
		{
			name:   "not connected",
			client: &fakeClient{connected: false},
			ctx:    context.Background,
		},
		{
			name:   "token error",
			client: &fakeClient{connected: true, token: newFakeToken(errors.New("broker gone"), true)},
			ctx:    context.Background,
		},
		{
			name:   "timeout",
			client: &fakeClient{connected: true, token: newFakeToken(nil, false)},
			ctx:    context.Background,
		},
		{
			name:   "cancelled",
			client: &fakeClient{connected: true, token: newFakeToken(nil, false)},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMQTTPublisher(tt.client, "sp", 20*time.Millisecond)
			if err := p.PublishActuatorState(tt.ctx(), "p1", models.ActuatorState{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMQTTPublisher_Close(t *testing.T) {
	client := &fakeClient{connected: true}
	NewMQTTPublisher(client, "", 0).Close()
	if !client.disconnected {
		t.Fatalf("expected Disconnect")
	}
}
