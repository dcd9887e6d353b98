// Package mail delivers notification emails.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"sharedesk/internal/models"
)

type Sender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogSender only records the message; used in development.
type LogSender struct {
	Logger Logger
}

func (s *LogSender) Send(_ context.Context, msg models.EmailMessage) error {
	if err := validate(msg); err != nil {
		return err
	}
	s.Logger.Infof("mail to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

type SESSender struct {
	Client sesiface.SESAPI
	From   string
}

func NewSESSender(sess *session.Session, from string) *SESSender {
	return &SESSender{Client: ses.New(sess), From: from}
}

func (s *SESSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if err := validate(msg); err != nil {
		return err
	}
	_, err := s.Client.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source: aws.String(s.From),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(msg.To)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}

func validate(msg models.EmailMessage) error {
	to := strings.TrimSpace(msg.To)
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("mail: invalid recipient %q", msg.To)
	}
	return nil
}
