package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"cityflow/simulator/config"
	"cityflow/simulator/log"
	"cityflow/simulator/simulation"
)

const (
	// freeFlowKMH is the speed reported for an empty route without live data.
	freeFlowKMH = 90.0
	// saturationFlow is the route count at which occupancy reaches 1.
	saturationFlow = 120.0

	publishTimeout = 5 * time.Second
)

// TrafficPayload is the sensor reading schema consumed by the cityflow
// collector.
type TrafficPayload struct {
	TS        string  `json:"ts"`
	SensorID  string  `json:"sensor_id"`
	RoadID    string  `json:"road_id"`
	SpeedKMH  float64 `json:"speed_kmh"`
	FlowRate  float64 `json:"flow_rate"`
	Occupancy float64 `json:"occupancy"`
}

// BuildTrafficPayloads renders one sensor reading per route of the update.
func BuildTrafficPayloads(u simulation.RouteUpdate) []TrafficPayload {
	ts := u.Clock.UTC().Format(time.RFC3339)
	out := make([]TrafficPayload, 0, len(u.Routes))
	for _, r := range u.Routes {
		occupancy := math.Min(1, float64(r.Count)/saturationFlow)
		speed := freeFlowKMH * (1 - occupancy)
		if r.Live != nil {
			speed = r.Live.CurrentSpeed
		}
		out = append(out, TrafficPayload{
			TS:        ts,
			SensorID:  fmt.Sprintf("SIM-%s-%d", strings.ToUpper(u.ScenarioID), r.ID),
			RoadID:    fmt.Sprintf("ROUTE-%d", r.ID),
			SpeedKMH:  speed,
			FlowRate:  float64(r.Count),
			Occupancy: occupancy,
		})
	}
	return out
}

type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher feeds route volumes to the broker as sensor readings.
type MQTTPublisher struct {
	client      mqttPublisher
	disconnect  func()
	topicPrefix string
}

func NewMQTTPublisher(cfg config.MQTTConfig) (*MQTTPublisher, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "simulator-" + time.Now().Format("20060102150405")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.URL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.OnConnect = func(mqtt.Client) {
		log.Info("mqtt connected", log.String("broker", cfg.URL))
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn("mqtt connection lost", log.ErrorField(err))
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		// keeps retrying in the background
		log.Warn("mqtt broker not reachable yet", log.String("broker", cfg.URL))
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connection failed: %w", err)
	}

	return &MQTTPublisher{
		client:      client,
		disconnect:  func() { client.Disconnect(250) },
		topicPrefix: strings.TrimRight(cfg.TopicPrefix, "/"),
	}, nil
}

func (p *MQTTPublisher) Name() string { return "mqtt" }

func (p *MQTTPublisher) Topic(roadID string) string {
	return p.topicPrefix + "/" + roadID
}

func (p *MQTTPublisher) PublishRoutes(ctx context.Context, u simulation.RouteUpdate) error {
	var errs []error
	for _, payload := range BuildTrafficPayloads(u) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(payload)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		token := p.client.Publish(p.Topic(payload.RoadID), 0, false, data)
		if !token.WaitTimeout(publishTimeout) {
			errs = append(errs, fmt.Errorf("publish %s: timeout", payload.RoadID))
			continue
		}
		if err := token.Error(); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", payload.RoadID, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	routeUpdatesPublished.WithLabelValues(p.Name()).Inc()
	return nil
}

func (p *MQTTPublisher) Close() {
	if p.disconnect != nil {
		p.disconnect()
	}
}

// RedisRouteSink publishes every route update as JSON on a pub/sub channel.
type RedisRouteSink struct {
	cache   *CacheService
	channel string
}

func NewRedisRouteSink(cache *CacheService, channel string) *RedisRouteSink {
	return &RedisRouteSink{cache: cache, channel: channel}
}

func (s *RedisRouteSink) Name() string { return "redis" }

func (s *RedisRouteSink) PublishRoutes(ctx context.Context, u simulation.RouteUpdate) error {
	if !s.cache.Available() {
		return nil
	}
	if err := s.cache.Publish(ctx, s.channel, u); err != nil {
		return fmt.Errorf("redis publish %s: %w", s.channel, err)
	}
	routeUpdatesPublished.WithLabelValues(s.Name()).Inc()
	return nil
}
