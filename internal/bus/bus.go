package bus

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Broadcast channels consumed by the UI and the WebSocket bridge.
const (
	ChannelUsersState  = "users-state"
	ChannelActiveCalls = "active-calls"
	ChannelContacts    = "contacts"
)

const (
	stateKeyPrefix = "softphone:state:"
	channelPrefix  = "softphone:"
)

// Broker fans a payload out to channel subscribers and retains the latest
// value for late joiners.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Latest(ctx context.Context, channel string) ([]byte, error)
}

// RedisBroker implements Broker over Redis PUBLISH plus a latest-value key.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps an existing client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish stores the payload and broadcasts it.
func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	pipe := b.client.Pipeline()
	pipe.Set(ctx, stateKeyPrefix+channel, payload, 0)
	pipe.Publish(ctx, channelPrefix+channel, payload)
	_, err := pipe.Exec(ctx)
	return err
}

// Latest returns the most recent payload, or nil when none was published.
func (b *RedisBroker) Latest(ctx context.Context, channel string) ([]byte, error) {
	val, err := b.client.Get(ctx, stateKeyPrefix+channel).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}
