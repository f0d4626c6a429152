package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Mailer delivers account emails.
type Mailer interface {
	SendOTP(ctx context.Context, to, otp string) error
}

// logMailer writes outgoing mail to the log instead of an SMTP relay.
type logMailer struct {
	from string
	log  *logrus.Logger
}

func NewLogMailer(from string, log *logrus.Logger) Mailer {
	return &logMailer{from: from, log: log}
}

func (m *logMailer) SendOTP(ctx context.Context, to, otp string) error {
	m.log.WithFields(logrus.Fields{
		"from":    m.from,
		"to":      to,
		"subject": "Your verification code",
		"otp":     otp,
	}).Info("Mail sent")
	return nil
}
