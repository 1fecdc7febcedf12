package ses

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"mscp/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendWelcomeEmail(ctx context.Context, toEmail, toName, tempPassword string) error {
	subject := "Your coordination platform account"
	textBody := fmt.Sprintf(
		"Hi %s,\n\nAn account has been created for you on the ministry coordination platform.\n\nSign in at %s with this email address and the temporary password below, then change it from your profile.\n\nTemporary password: %s\n\nMinistry Coordination Team",
		toName, s.frontendURL, tempPassword)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>An account has been created for you on the ministry coordination platform.</p><p>Sign in at <a href=%q>%s</a> with this email address and the temporary password below, then change it from your profile.</p><p><strong>Temporary password:</strong> %s</p><p>Ministry Coordination Team</p>",
		toName, s.frontendURL, s.frontendURL, tempPassword)

	return s.send(ctx, toEmail, subject, textBody, htmlBody)
}

func (s *sesSender) SendReportDueReminder(ctx context.Context, toEmail, toName, quarterName string, dueDate time.Time, daysLeft int) error {
	due := dueDate.Format("2 January 2006")

	var subject, lead string
	switch {
	case daysLeft > 0:
		subject = fmt.Sprintf("Reminder: %s progress report due in %d day(s)", quarterName, daysLeft)
		lead = fmt.Sprintf("Your %s progress report is due on %s.", quarterName, due)
	case daysLeft == 0:
		subject = fmt.Sprintf("Reminder: %s progress report due today", quarterName)
		lead = fmt.Sprintf("Your %s progress report is due today (%s).", quarterName, due)
	default:
		subject = fmt.Sprintf("Overdue: %s progress report", quarterName)
		lead = fmt.Sprintf("Your %s progress report was due on %s and is now %d day(s) overdue.", quarterName, due, -daysLeft)
	}

	textBody := fmt.Sprintf("Hi %s,\n\n%s\n\nSubmit it at %s.\n\nMinistry Coordination Team", toName, lead, s.frontendURL)
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>%s</p><p>Submit it at <a href=%q>%s</a>.</p><p>Ministry Coordination Team</p>",
		toName, lead, s.frontendURL, s.frontendURL)

	return s.send(ctx, toEmail, subject, textBody, htmlBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, textBody, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
