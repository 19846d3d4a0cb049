package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ashabelnikov/file-pipeline/pkg/kafka/producer"
	"github.com/segmentio/kafka-go"
)

// EventProducer publishes synthetic object-created notifications in the
// same S3-style shape the bucket itself emits, so the dispatcher consumes
// both identically.
type EventProducer struct {
	*producer.Producer
	topic string
}

func NewEventProducer(p *producer.Producer, topic string) *EventProducer {
	return &EventProducer{
		Producer: p,
		topic:    topic,
	}
}

func (ep *EventProducer) PublishObjectCreated(ctx context.Context, bucket, key string) error {
	payload := map[string]any{
		"Records": []map[string]any{
			{
				"eventName": "s3:ObjectCreated:Put",
				"s3": map[string]any{
					"bucket": map[string]any{"name": bucket},
					"object": map[string]any{"key": key},
				},
			},
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("EventProducer - PublishObjectCreated - json.Marshal: %w", err)
	}

	err = ep.Writer.WriteMessages(ctx, kafka.Message{
		Topic: ep.topic,
		Key:   []byte(key),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("EventProducer - PublishObjectCreated - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()
	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
