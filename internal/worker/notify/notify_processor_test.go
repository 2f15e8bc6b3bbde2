package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman-sowilo/spine-attendance/internal/ports/messaging"
)

type captureMailer struct {
	sent []messaging.NotificationEvent
	err  error
}

func (m *captureMailer) SendNotification(_ context.Context, event messaging.NotificationEvent) error {
	m.sent = append(m.sent, event)
	return m.err
}

func message(body string, receiveCount string) types.Message {
	msg := types.Message{Body: aws.String(body)}
	if receiveCount != "" {
		msg.Attributes = map[string]string{
			string(types.MessageSystemAttributeNameApproximateReceiveCount): receiveCount,
		}
	}
	return msg
}

func TestProcessor_Delivers(t *testing.T) {
	mailer := &captureMailer{}
	p := NewProcessor(mailer)

	retry, delay, err := p.Process(context.Background(),
		message(`{"kind":"reminder","message":"Reminder: clock-out is coming up at 18:25."}`, "1"))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Zero(t, delay)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "reminder", mailer.sent[0].Kind)
}

func TestProcessor_MalformedMessageNotRetried(t *testing.T) {
	mailer := &captureMailer{}
	p := NewProcessor(mailer)

	retry, _, err := p.Process(context.Background(), message(`not json`, "1"))

	require.Error(t, err)
	assert.False(t, retry)
	assert.Empty(t, mailer.sent)
}

func TestProcessor_DeliveryFailureBacksOff(t *testing.T) {
	mailer := &captureMailer{err: errors.New("ses throttled")}
	p := NewProcessor(mailer)

	retry, delay, err := p.Process(context.Background(),
		message(`{"kind":"warning","message":"x"}`, "3"))

	require.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(80), delay, "2^3 * 10 seconds")
}

func TestCalculateBackoff_Caps(t *testing.T) {
	assert.Equal(t, int32(20), calculateBackoff(1))
	assert.Equal(t, int32(3600), calculateBackoff(12))
}
