package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"github.com/reenamhotel/site/internal/domain"
)

const charset = "UTF-8"

// SESNotifier sends booking notifications through Amazon SES.
type SESNotifier struct {
	client sesiface.SESAPI
	from   string
	to     string
}

// NewSESClient builds an SES client for region using the default
// credential chain.
func NewSESClient(region string) (sesiface.SESAPI, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("notify.NewSESClient: %w", err)
	}
	return ses.New(sess), nil
}

// NewSESNotifier returns a notifier sending from the verified sender to the
// staff address.
func NewSESNotifier(client sesiface.SESAPI, from, to string) *SESNotifier {
	return &SESNotifier{client: client, from: from, to: to}
}

// Send delivers one notification.
func (n *SESNotifier) Send(ctx context.Context, b domain.Booking) error {
	msg := Compose(b)

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(n.to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Charset: aws.String(charset), Data: aws.String(msg.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Charset: aws.String(charset), Data: aws.String(msg.Text)},
			},
		},
		Source: aws.String(n.from),
	}

	if _, err := n.client.SendEmailWithContext(ctx, input); err != nil {
		return fmt.Errorf("notify.SESNotifier.Send: %w", err)
	}
	return nil
}
