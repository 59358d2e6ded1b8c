package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.Mailer = (*Mailer)(nil)

// sender is the part of the Resend client used to deliver messages.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Mailer delivers messages through Resend.
type Mailer struct {
	emails sender
	from   string
	bcc    []string
}

// NewMailer creates a Resend mailer. bcc is optional.
func NewMailer(apiKey, from, bcc string) *Mailer {
	return newMailer(resend.NewClient(apiKey).Emails, from, bcc)
}

func newMailer(emails sender, from, bcc string) *Mailer {
	m := &Mailer{emails: emails, from: from}
	if bcc != "" {
		m.bcc = []string{bcc}
	}
	return m
}

// Send hands msg to Resend once and returns the provider message id.
func (m *Mailer) Send(ctx context.Context, msg model.Message) (string, error) {
	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Bcc:     m.bcc,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := m.emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "", errors.New("provider returned no message id")
	}
	return sent.Id, nil
}
