package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/ekklesia/ekklesia/pkg/google"
	"github.com/ekklesia/ekklesia/pkg/user"
)

// Mailer sends plain-text emails.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// GmailMailer sends mail through the Gmail account of the staff user who
// triggered the action, using the stored Google OAuth token.
type GmailMailer struct {
	auth *google.GoogleAuth
	from string
}

func NewGmailMailer(auth *google.GoogleAuth, from string) *GmailMailer {
	return &GmailMailer{auth: auth, from: from}
}

func (m *GmailMailer) Send(ctx context.Context, to []string, subject, body string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	client, err := m.auth.HTTPClient(ctx, userId)
	if err != nil {
		return err
	}
	if client == nil {
		return google.ErrUnauthenticated
	}
	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, strings.Join(to, ", "), subject, body)
	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(message)),
	}
	if _, err := service.Users.Messages.Send("me", gmailMessage).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopMailer is used when mail is disabled in the configuration.
type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, to []string, subject, _ string) error {
	log.Debugf("Mail disabled, skipping email %q to %d recipient(s)", subject, len(to))
	return nil
}
