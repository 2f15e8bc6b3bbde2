package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aryaman-sowilo/spine-attendance/internal/ports/messaging"
)

// SESMailer delivers notifications as plain-text email through AWS SES.
type SESMailer struct {
	client    *ses.Client
	sender    string
	recipient string
}

func NewSESMailer(client *ses.Client, sender, recipient string) *SESMailer {
	return &SESMailer{client: client, sender: sender, recipient: recipient}
}

func (m *SESMailer) SendNotification(ctx context.Context, event messaging.NotificationEvent) error {
	tracer := otel.Tracer("ses-mailer")
	ctx, span := tracer.Start(ctx, "send_notification", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("app.notificationKind", event.Kind))

	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{m.recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(fmt.Sprintf("Attendance Assistant: %s", event.Kind)),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(event.Message),
				},
			},
		},
	}

	_, err := m.client.SendEmail(ctx, input)
	return err
}
