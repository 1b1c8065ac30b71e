package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/reenamhotel/site/internal/domain"
)

// SMTPConfig is the SMTP transport configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// To receives every booking notification.
	To string
}

// SMTPNotifier sends booking notifications over authenticated SMTP.
// Port 465 uses implicit TLS; any other port upgrades with STARTTLS when the
// server offers it.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier returns an SMTP notifier for cfg.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send composes and delivers one notification. Address errors are permanent.
func (n *SMTPNotifier) Send(ctx context.Context, b domain.Booking) error {
	m, err := n.message(b)
	if err != nil {
		return Permanent(fmt.Errorf("notify.SMTPNotifier.Send: %w", err))
	}

	c, err := mail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return Permanent(fmt.Errorf("notify.SMTPNotifier.Send: %w", err))
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify.SMTPNotifier.Send: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) message(b domain.Booking) (*mail.Msg, error) {
	msg := Compose(b)

	m := mail.NewMsg()
	if err := m.FromFormat("Reenam Website", n.cfg.User); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(n.cfg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	return m, nil
}

func (n *SMTPNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.User),
		mail.WithPassword(n.cfg.Password),
	}
	if n.cfg.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	// The TLS options pick a default port; the configured one wins.
	return append(opts, mail.WithPort(n.cfg.Port))
}
