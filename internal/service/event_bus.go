package service

import (
	"encoding/json"
	"time"

	"ai-usecase-explorer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SessionEventsTopic carries explorer session events from the core to the
// websocket fan-out consumer.
const SessionEventsTopic = "SESSION_EVENTS"

type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// busPublisher adapts the watermill gochannel pubsub to the
// events.Publisher contract the session manager depends on.
type busPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewEventPublisher(pubSub *gochannel.GoChannel) events.Publisher {
	return &busPublisher{pubSub: pubSub, topic: SessionEventsTopic}
}

func (p *busPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}
	return p.pubSub.Publish(p.topic, message.NewMessage(watermill.NewUUID(), payload))
}
