// Package notify processes notification events off the notify queue and
// delivers them by email.
package notify

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/ports/messaging"
)

// Mailer delivers one rendered notification.
type Mailer interface {
	SendNotification(ctx context.Context, event messaging.NotificationEvent) error
}

type Processor struct {
	mailer Mailer
}

// NewProcessor sets up a processor for handling notification jobs.
func NewProcessor(mailer Mailer) *Processor {
	return &Processor{mailer: mailer}
}

// Process handles one message from the notify queue. Delivery failures are
// retried with exponential backoff; malformed messages are dropped.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.NotificationEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal notification event")
		return false, 0, err // Do not retry on malformed message
	}

	log.Ctx(ctx).Info().Str("kind", event.Kind).Msg("Delivering notification")

	if err := p.mailer.SendNotification(ctx, event); err != nil {
		delay := calculateBackoff(receiveCount(msg))
		return true, delay, err
	}
	return false, 0, nil
}

// receiveCount reads how many times SQS has handed out this message. The
// queue is the only place this count lives; there is no database behind it.
func receiveCount(msg types.Message) int {
	raw, ok := msg.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)]
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry to avoid overwhelming a struggling service.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
