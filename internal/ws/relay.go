package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sharedesk/internal/models"
)

const DefaultChannel = "sharedesk:availability"

type localPublisher interface {
	Publish(event models.AvailabilityEvent)
}

// Relay shares availability events between API instances over Redis pub/sub,
// so a browser connected to one instance hears about updates made on another.
type Relay struct {
	rdb     *redis.Client
	local   localPublisher
	channel string
	logger  Logger
}

func NewRelay(rdb *redis.Client, local localPublisher, channel string, logger Logger) *Relay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Relay{rdb: rdb, local: local, channel: channel, logger: logger}
}

// Publish sends the event to every instance, this one included through Run.
// When Redis is unreachable the event is still delivered locally.
func (r *Relay) Publish(event models.AvailabilityEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Errorf("relay: marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Errorf("relay: publish to %s: %v", r.channel, err)
		r.local.Publish(event)
	}
}

// Run forwards relayed events to the local hub until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.logger.Infof("relay: subscribed to %s", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver(msg.Payload)
		}
	}
}

func (r *Relay) deliver(payload string) {
	var event models.AvailabilityEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.SpaceID <= 0 {
		r.logger.Errorf("relay: drop malformed event %q", payload)
		return
	}
	r.local.Publish(event)
}
