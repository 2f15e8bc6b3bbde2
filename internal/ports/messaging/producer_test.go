package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	destination string
	body        []byte
	err         error
}

func (s *captureSender) SendMessage(_ context.Context, destination string, body []byte) error {
	s.destination = destination
	s.body = body
	return s.err
}

func TestProducer_PublishNotification(t *testing.T) {
	sender := &captureSender{}
	p := NewProducer(sender, "http://localstack:4566/000000000000/notify-queue")

	err := p.PublishNotification(context.Background(), NotificationEvent{
		Kind:       KindReminder,
		Message:    "Reminder: clock-out is coming up at 18:25.",
		OccurredAt: time.Date(2024, time.March, 15, 18, 20, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "http://localstack:4566/000000000000/notify-queue", sender.destination)

	var decoded NotificationEvent
	require.NoError(t, json.Unmarshal(sender.body, &decoded))
	assert.Equal(t, KindReminder, decoded.Kind)
	assert.Contains(t, decoded.Message, "18:25")
}

func TestProducer_SendFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("queue unavailable")}
	p := NewProducer(sender, "q")

	err := p.PublishNotification(context.Background(), NotificationEvent{Kind: KindWarning})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send message")
}
