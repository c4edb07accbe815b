package service

import (
	"context"
	"encoding/json"

	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IBroadcastService interface {
	Consume(ctx context.Context) error
}

// BroadcastService bridges the in-process pipeline bus to the websocket hub.
// Every pipeline event is pushed, as-is, to the clients of its conversation.
type BroadcastService struct {
	subscriber message.Subscriber
	topicName  string
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewBroadcastService(
	subscriber message.Subscriber,
	topicName string,
	hub *websocket.Hub,
	logger logger.ILogger,
) IBroadcastService {
	return &BroadcastService{
		subscriber: subscriber,
		topicName:  topicName,
		hub:        hub,
		logger:     logger,
	}
}

func (s *BroadcastService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go s.process(messages)

	s.logger.Info("Broadcast", "Consumer started", map[string]interface{}{
		"topic": s.topicName,
	})
	return nil
}

func (s *BroadcastService) process(messages <-chan *message.Message) {
	for msg := range messages {
		var event dto.PipelineEventMessage
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			s.logger.Error("Broadcast", "Malformed pipeline event", map[string]interface{}{
				"message_id": msg.UUID,
				"error":      err.Error(),
			})
			msg.Ack()
			continue
		}

		s.hub.Broadcast(event.ConversationId, msg.Payload)
		msg.Ack()
	}
}
