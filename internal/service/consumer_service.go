package service

import (
	"context"
	"encoding/json"
	"log"

	"living-resume-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the exchange topic into the usage recorder.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	recorder  *UsageRecorder
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	recorder *UsageRecorder,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		recorder:  recorder,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload dto.PublishChatExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal exchange message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.recorder.Record(payload.SessionId)
	msg.Ack()
}
