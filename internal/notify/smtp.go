package notify

import (
	"context"
	"time"

	"github.com/contactform/backend/internal/model"
	"github.com/wneessen/go-mail"
)

// defaultTimeout bounds a whole dial+auth+send round trip when SMTPConfig.Timeout is unset.
const defaultTimeout = 15 * time.Second

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Company  string
	Timeout  time.Duration
}

// SMTPNotifier delivers notifications over an authenticated STARTTLS
// submission connection. A new connection is opened per message.
type SMTPNotifier struct {
	cfg SMTPConfig
	now func() time.Time
}

// NewSMTPNotifier creates an SMTPNotifier with the given relay settings.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &SMTPNotifier{cfg: cfg, now: time.Now}
}

var _ Notifier = (*SMTPNotifier)(nil)

// Message builds the mail for sub without sending it.
func (n *SMTPNotifier) Message(sub *model.Submission) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(n.cfg.From); err != nil {
		return nil, err
	}
	if err := m.To(n.cfg.To); err != nil {
		return nil, err
	}
	m.Subject(Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextPlain, ComposeBody(n.cfg.Company, sub, n.now()))
	return m, nil
}

// Notify sends the notification synchronously. It fails with *Error when the
// relay is unreachable, rejects the credentials or refuses the message.
func (n *SMTPNotifier) Notify(ctx context.Context, sub *model.Submission) error {
	m, err := n.Message(sub)
	if err != nil {
		return &Error{Op: "compose", Err: err}
	}

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTimeout(n.cfg.Timeout),
	)
	if err != nil {
		return &Error{Op: "send", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &Error{Op: "send", Err: err}
	}
	return nil
}
