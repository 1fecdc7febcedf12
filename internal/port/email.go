package port

import (
	"context"
	"time"
)

// EmailSender defines the contract for outbound notification email.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName, tempPassword string) error
	SendReportDueReminder(ctx context.Context, toEmail, toName, quarterName string, dueDate time.Time, daysLeft int) error
}
