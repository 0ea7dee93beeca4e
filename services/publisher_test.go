package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityflow/simulator/models"
	"cityflow/simulator/simulation"
)

type fakeToken struct {
	err     error
	timeout bool
}

func (t fakeToken) Wait() bool                     { return !t.timeout }
func (t fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t fakeToken) Error() error                   { return t.err }

func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	payload []byte
}

type fakeMQTT struct {
	token fakeToken
	msgs  []published
}

func (f *fakeMQTT) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	f.msgs = append(f.msgs, published{topic: topic, payload: payload.([]byte)})
	return f.token
}

func testUpdate() simulation.RouteUpdate {
	return simulation.RouteUpdate{
		ScenarioID: "april-2025-am",
		Reason:     simulation.ReasonSelect,
		Clock:      time.Date(2025, 4, 23, 6, 0, 0, 0, time.FixedZone("EDT", -4*3600)),
		Routes: []models.Route{
			{ID: 1, PathNodes: []int{1, 2}, Count: 60},
			{ID: 2, PathNodes: []int{2, 3}, Count: 200},
			{ID: 3, PathNodes: []int{3, 4}, Count: 30, Live: &models.LiveFlow{CurrentSpeed: 33.5, FreeFlowSpeed: 40}},
		},
	}
}

func TestBuildTrafficPayloads(t *testing.T) {
	payloads := BuildTrafficPayloads(testUpdate())
	require.Len(t, payloads, 3)

	first := payloads[0]
	assert.Equal(t, "2025-04-23T10:00:00Z", first.TS)
	assert.Equal(t, "SIM-APRIL-2025-AM-1", first.SensorID)
	assert.Equal(t, "ROUTE-1", first.RoadID)
	assert.Equal(t, 60.0, first.FlowRate)
	assert.InDelta(t, 0.5, first.Occupancy, 1e-9)
	assert.InDelta(t, 45.0, first.SpeedKMH, 1e-9)

	assert.Equal(t, 1.0, payloads[1].Occupancy, "occupancy saturates")
	assert.Equal(t, 0.0, payloads[1].SpeedKMH)

	assert.Equal(t, 33.5, payloads[2].SpeedKMH, "live speed wins")
}

func TestMQTTPublisherPublishesPerRoute(t *testing.T) {
	client := &fakeMQTT{}
	p := &MQTTPublisher{client: client, topicPrefix: "cityflow/traffic"}

	require.NoError(t, p.PublishRoutes(context.Background(), testUpdate()))
	require.Len(t, client.msgs, 3)
	assert.Equal(t, "cityflow/traffic/ROUTE-1", client.msgs[0].topic)

	var got TrafficPayload
	require.NoError(t, json.Unmarshal(client.msgs[2].payload, &got))
	assert.Equal(t, "ROUTE-3", got.RoadID)
	assert.Equal(t, 30.0, got.FlowRate)
}

func TestMQTTPublisherReportsFailures(t *testing.T) {
	for name, token := range map[string]fakeToken{
		"broker error": {err: errors.New("not connected")},
		"timeout":      {timeout: true},
	} {
		t.Run(name, func(t *testing.T) {
			client := &fakeMQTT{token: token}
			p := &MQTTPublisher{client: client, topicPrefix: "cityflow/traffic"}
			err := p.PublishRoutes(context.Background(), testUpdate())
			assert.ErrorContains(t, err, "ROUTE-2")
			assert.Len(t, client.msgs, 3, "every route is attempted")
		})
	}
}

func TestMQTTPublisherStopsOnCancelledContext(t *testing.T) {
	client := &fakeMQTT{}
	p := &MQTTPublisher{client: client, topicPrefix: "cityflow/traffic"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.PublishRoutes(ctx, testUpdate()), context.Canceled)
	assert.Empty(t, client.msgs)
}

func TestRedisRouteSinkWithoutRedis(t *testing.T) {
	sink := NewRedisRouteSink(&CacheService{}, "cityflow:sim")
	assert.Equal(t, "redis", sink.Name())
	assert.NoError(t, sink.PublishRoutes(context.Background(), testUpdate()))
}
