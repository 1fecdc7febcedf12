package noop

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"mscp/internal/port"
)

type noopSender struct {
	log *logrus.Logger
}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender(log *logrus.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendWelcomeEmail(_ context.Context, toEmail, toName, tempPassword string) error {
	s.log.WithFields(logrus.Fields{
		"to":    toEmail,
		"name":  toName,
		"email": "welcome",
	}).Infof("noop email: temporary password %s", tempPassword)
	return nil
}

func (s *noopSender) SendReportDueReminder(_ context.Context, toEmail, toName, quarterName string, dueDate time.Time, daysLeft int) error {
	s.log.WithFields(logrus.Fields{
		"to":        toEmail,
		"name":      toName,
		"quarter":   quarterName,
		"due":       dueDate.Format(time.RFC3339),
		"days_left": daysLeft,
		"email":     "report_due_reminder",
	}).Info("noop email: report due reminder")
	return nil
}
