package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aryaman-sowilo/spine-attendance/pkg/metrics"
)

// Producer publishes notification events to the notify queue through a
// MessageSender.
type Producer struct {
	sender         MessageSender
	notifyQueueURL string
}

func NewProducer(sender MessageSender, notifyQueueURL string) *Producer {
	return &Producer{
		sender:         sender,
		notifyQueueURL: notifyQueueURL,
	}
}

// NewSQSProducer creates a Producer backed by an AWS SQS sender.
func NewSQSProducer(client SQSClient, notifyQueueURL string) *Producer {
	return NewProducer(&SQSSender{client: client}, notifyQueueURL)
}

// PublishNotification sends one notification event to the notify queue.
func (p *Producer) PublishNotification(ctx context.Context, event NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String("app.notificationKind", event.Kind))
	}

	if err := p.sender.SendMessage(ctx, p.notifyQueueURL, body); err != nil {
		return fmt.Errorf("failed to send message to notify queue: %w", err)
	}
	metrics.NotificationsPublished.WithLabelValues(event.Kind).Inc()
	return nil
}
