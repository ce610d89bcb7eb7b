// services/channels.go
package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Message is the rendered content handed to a channel. Subject is empty
// for SMS.
type Message struct {
	Subject string
	Body    string
}

// Notifier delivers one message to one address over a single channel.
// Implementations can be swapped (Twilio, SendGrid, simulated) without
// changing the scheduler.
type Notifier interface {
	Send(ctx context.Context, address string, msg Message) error
}

// TwilioNotifier sends SMS through the Twilio REST API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioNotifier builds an SMS notifier from TWILIO_* environment
// variables.
func NewTwilioNotifier() *TwilioNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (n *TwilioNotifier) Send(ctx context.Context, address string, msg Message) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(address)
	params.SetFrom(n.from)
	params.SetBody(msg.Body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", address, err)
	}
	if resp.Sid != nil {
		logrus.Infof("SMS sent to %s, SID: %s", address, *resp.Sid)
	} else {
		logrus.Infof("SMS sent to %s, but no SID returned", address)
	}
	return nil
}

// SendGridNotifier sends email through the SendGrid API.
type SendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridNotifier builds an email notifier from SENDGRID_* environment
// variables.
func NewSendGridNotifier() *SendGridNotifier {
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "MediFlow Pro"
	}
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY")),
		fromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		fromName:  fromName,
	}
}

func (n *SendGridNotifier) Send(ctx context.Context, address string, msg Message) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail("", address)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	resp, err := n.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", address, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send to %s: status %d: %s", address, resp.StatusCode, resp.Body)
	}
	logrus.Infof("Email sent to %s, subject: %s", address, msg.Subject)
	return nil
}

// SimulatedNotifier logs the message and resolves after a fixed latency.
// Used when no transport credentials are configured and in development.
type SimulatedNotifier struct {
	Channel Channel
	Latency time.Duration
}

func (n *SimulatedNotifier) Send(ctx context.Context, address string, msg Message) error {
	logrus.WithFields(logrus.Fields{
		"channel": n.Channel,
		"to":      address,
		"subject": msg.Subject,
	}).Infof("simulated %s delivery: %s", n.Channel, msg.Body)

	select {
	case <-time.After(n.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifiersFromEnv wires one notifier per channel: real transports when
// credentials are present, simulated delivery otherwise.
func NotifiersFromEnv() map[Channel]Notifier {
	notifiers := map[Channel]Notifier{}

	if os.Getenv("SENDGRID_API_KEY") != "" {
		notifiers[ChannelEmail] = NewSendGridNotifier()
	} else {
		logrus.Info("SENDGRID_API_KEY not set, email delivery is simulated")
		notifiers[ChannelEmail] = &SimulatedNotifier{Channel: ChannelEmail, Latency: time.Second}
	}

	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		notifiers[ChannelSMS] = NewTwilioNotifier()
	} else {
		logrus.Info("TWILIO_ACCOUNT_SID not set, SMS delivery is simulated")
		notifiers[ChannelSMS] = &SimulatedNotifier{Channel: ChannelSMS, Latency: 500 * time.Millisecond}
	}

	return notifiers
}

var _ Notifier = (*TwilioNotifier)(nil)
var _ Notifier = (*SendGridNotifier)(nil)
var _ Notifier = (*SimulatedNotifier)(nil)
