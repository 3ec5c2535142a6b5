// Package mail delivers enquiry notifications.
package mail

import (
	"bytes"
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"html/template"
)

var enquiryTemplate = template.Must(template.New("enquiry").Parse(`<h2>New analytics query</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Query:</strong></p>
<p>{{.Query}}</p>
`))

type Sender interface {
	SendEnquiry(ctx context.Context, enquiry *model.Enquiry) error
}

func Subject(enquiry *model.Enquiry) string {
	return "New Analytics Query from " + enquiry.Name
}

// RenderEnquiry renders the HTML body. Every field is escaped.
func RenderEnquiry(enquiry *model.Enquiry) (string, error) {
	var buf bytes.Buffer
	if err := enquiryTemplate.Execute(&buf, enquiry); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Recipient string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) message(enquiry *model.Enquiry) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Username); err != nil {
		return nil, errors.Wrap(err, "set from")
	}
	if err := msg.To(s.cfg.Recipient); err != nil {
		return nil, errors.Wrap(err, "set recipient")
	}
	if err := msg.ReplyTo(enquiry.Email); err != nil {
		return nil, errors.Wrap(err, "set reply-to")
	}
	msg.Subject(Subject(enquiry))

	if err := msg.SetBodyHTMLTemplate(enquiryTemplate, enquiry); err != nil {
		return nil, errors.Wrap(err, "render body")
	}
	return msg, nil
}

func (s *SMTPSender) SendEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	msg, err := s.message(enquiry)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return errors.Wrap(err, "create smtp client")
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "send enquiry")
	}
	return nil
}

// LogSender writes enquiries to the request logger instead of sending them.
type LogSender struct{}

func (LogSender) SendEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	body, err := RenderEnquiry(enquiry)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("enquiry received",
		zap.String("subject", Subject(enquiry)),
		zap.String("from", enquiry.Email),
		zap.String("body", body),
	)
	return nil
}
