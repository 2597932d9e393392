package realtime

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Broker routes events to live clients. Without redis every event goes
// straight to the local hub; with redis events are published to channels
// and delivered by the subscription loop, so instances behind a load
// balancer all see them. Publish failures are logged and swallowed; the
// live channel is never a system of record.
type Broker struct {
	hub   *Hub
	redis *redis.Client
}

func NewBroker(hub *Hub, redisClient *redis.Client) *Broker {
	return &Broker{hub: hub, redis: redisClient}
}

func userChannel(userID int64) string {
	return "rt:user:" + strconv.FormatInt(userID, 10)
}

func conversationChannel(conversationID int64) string {
	return "rt:conv:" + strconv.FormatInt(conversationID, 10)
}

// SendToUser delivers an event on the user's personal channel.
func (b *Broker) SendToUser(ctx context.Context, userID int64, event *Event) {
	if b.redis != nil {
		if b.publish(ctx, userChannel(userID), event) {
			return
		}
		// redis down: degrade to local delivery
	}
	b.hub.SendToUser(userID, event)
}

// BroadcastToConversation delivers an event to the conversation's
// subscribers, excluding the sender.
func (b *Broker) BroadcastToConversation(ctx context.Context, conversationID int64, event *Event) {
	if b.redis != nil {
		if b.publish(ctx, conversationChannel(conversationID), event) {
			return
		}
	}
	b.hub.BroadcastToConversation(conversationID, event)
}

func (b *Broker) publish(ctx context.Context, channel string, event *Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		return false
	}
	if err := b.redis.Publish(ctx, channel, data).Err(); err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("realtime publish failed")
		return false
	}
	return true
}

// Run consumes the redis channels and forwards events into the local hub.
// Blocks until ctx is cancelled; no-op when redis is not configured.
func (b *Broker) Run(ctx context.Context) {
	if b.redis == nil {
		return
	}

	pubsub := b.redis.PSubscribe(ctx, "rt:*")
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			b.dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (b *Broker) dispatch(channel string, payload []byte) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return
	}

	switch {
	case strings.HasPrefix(channel, "rt:user:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(channel, "rt:user:"), 10, 64)
		if err != nil {
			return
		}
		b.hub.SendToUser(id, &event)
	case strings.HasPrefix(channel, "rt:conv:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(channel, "rt:conv:"), 10, 64)
		if err != nil {
			return
		}
		b.hub.BroadcastToConversation(id, &event)
	}
}
