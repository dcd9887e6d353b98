package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sharedesk/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []models.AvailabilityEvent
}

func (r *recorder) Publish(e models.AvailabilityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRelayFallsBackToLocalDelivery(t *testing.T) {
	local := &recorder{}
	relay := NewRelay(unreachableRedis(t), local, "", zap.NewNop().Sugar())
	assert.Equal(t, DefaultChannel, relay.channel)

	event := models.AvailabilityEvent{Type: "availability", SpaceID: 3, AvailableCapacity: 2}
	relay.Publish(event)

	require.Len(t, local.events, 1)
	assert.Equal(t, event, local.events[0])
}

func TestRelayDeliverDecodesPayload(t *testing.T) {
	local := &recorder{}
	relay := NewRelay(unreachableRedis(t), local, "desk", zap.NewNop().Sugar())

	relay.deliver(`{"type":"availability","spaceId":9,"availableCapacity":1}`)
	relay.deliver(`not json`)
	relay.deliver(`{"type":"availability","spaceId":0}`)

	require.Len(t, local.events, 1)
	assert.Equal(t, 9, local.events[0].SpaceID)
}
