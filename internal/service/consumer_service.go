package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-usecase-explorer-be/internal/websocket"
	"ai-usecase-explorer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService forwards session events from the internal bus to the
// websocket hub so open browser tabs re-render when async generation
// lands.
type consumerService struct {
	pubSub *gochannel.GoChannel
	topic  string
	hub    *websocket.Hub
}

func NewConsumerService(pubSub *gochannel.GoChannel, hub *websocket.Hub) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		topic:  SessionEventsTopic,
		hub:    hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.hub.Broadcast(events.BaseEvent{
		Type:       envelope.Type,
		Data:       envelope.Data,
		OccurredAt: envelope.OccurredAt,
	})
	msg.Ack()
}
