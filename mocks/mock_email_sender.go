package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendWelcomeEmail(ctx context.Context, toEmail, toName, tempPassword string) error {
	args := m.Called(ctx, toEmail, toName, tempPassword)
	return args.Error(0)
}

func (m *MockEmailSender) SendReportDueReminder(ctx context.Context, toEmail, toName, quarterName string, dueDate time.Time, daysLeft int) error {
	args := m.Called(ctx, toEmail, toName, quarterName, dueDate, daysLeft)
	return args.Error(0)
}
