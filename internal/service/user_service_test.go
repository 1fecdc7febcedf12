package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"mscp/internal/domain"
	"mscp/internal/service"
	"mscp/mocks"
)

func setupUsers() (*mocks.MockUserRepo, *mocks.MockStakeholderRepo, *mocks.MockEmailSender, service.UserService) {
	userRepo := new(mocks.MockUserRepo)
	stakeholderRepo := new(mocks.MockStakeholderRepo)
	emailSender := new(mocks.MockEmailSender)
	log := logrus.New()
	svc := service.NewUserService(userRepo, stakeholderRepo, emailSender, log)
	return userRepo, stakeholderRepo, emailSender, svc
}

func TestCreateUser_DerivesUsernameAndLowercasesEmail(t *testing.T) {
	userRepo, _, _, svc := setupUsers()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "Amina.K@Coordination.Gov",
		FullName: "Amina K",
		Role:     domain.RoleAdmin,
		Password: "chosen-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "amina.k@coordination.gov", user.Email)
	assert.Equal(t, "amina.k", user.Username)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	userRepo.AssertExpectations(t)
}

func TestCreateUser_EmailWithoutAtRejected(t *testing.T) {
	_, _, _, svc := setupUsers()

	for _, bad := range []string{"not-an-email", "@coordination.gov"} {
		_, err := svc.Create(context.Background(), service.CreateUserInput{
			Email:    bad,
			FullName: "X",
			Role:     domain.RoleAdmin,
		})

		verr, ok := domain.AsValidationError(err)
		assert.True(t, ok, "expected validation error for %q", bad)
		assert.Equal(t, "email", verr.Field)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	_, _, _, svc := setupUsers()

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "x@coordination.gov",
		FullName: "X",
		Role:     domain.UserRole("superuser"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUser_StakeholderRoleRequiresStakeholder(t *testing.T) {
	_, _, _, svc := setupUsers()

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "partner@ngo.org",
		FullName: "Partner",
		Role:     domain.RoleStakeholderAdmin,
	})

	verr, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "stakeholder_id", verr.Field)
}

func TestCreateUser_GeneratedPasswordSendsWelcomeEmail(t *testing.T) {
	userRepo, _, emailSender, svc := setupUsers()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	emailSender.On("SendWelcomeEmail", mock.Anything, "new@coordination.gov", "New User", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "new@coordination.gov",
		FullName: "New User",
		Role:     domain.RoleFocalPerson,
	})

	assert.NoError(t, err)
	emailSender.AssertExpectations(t)
}

func TestDeleteUser_SelfDeletionBlocked(t *testing.T) {
	_, _, _, svc := setupUsers()
	id := uuid.New()

	err := svc.Delete(context.Background(), id, id)

	assert.ErrorIs(t, err, domain.ErrSelfDeletion)
}

func TestDeleteUser_OtherUser(t *testing.T) {
	userRepo, _, _, svc := setupUsers()
	viewerID := uuid.New()
	targetID := uuid.New()

	userRepo.On("Delete", mock.Anything, targetID).Return(nil)

	err := svc.Delete(context.Background(), viewerID, targetID)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	userRepo, _, _, svc := setupUsers()
	user := activeUser(t, "current-password")

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func importWorkbook(t *testing.T, rows [][]string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	return f
}

func TestBulkImport_MixedRows(t *testing.T) {
	userRepo, stakeholderRepo, emailSender, svc := setupUsers()
	stakeholderID := uuid.New()

	stakeholderRepo.On("List", mock.Anything).Return([]domain.Stakeholder{
		{ID: stakeholderID, Name: "Health Partners", Status: domain.StakeholderActive},
	}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	emailSender.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f := importWorkbook(t, [][]string{
		{"Username", "Email", "Full Name", "Role", "Stakeholder"},
		{"", "partner@ngo.org", "Partner One", "", "Health Partners"},
		{"", "", "No Email", "stakeholder_user", "Health Partners"},
		{"", "ghost@ngo.org", "Ghost", "stakeholder_user", "Unknown Org"},
	})
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	summary, err := svc.BulkImport(context.Background(), buf)

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, summary.Errors, 2)
	assert.Equal(t, 3, summary.Errors[0].Row)
	assert.Equal(t, 4, summary.Errors[1].Row)
}

func TestBulkImport_NotAWorkbook(t *testing.T) {
	_, _, _, svc := setupUsers()

	_, err := svc.BulkImport(context.Background(), strings.NewReader("this is not an xlsx file"))

	verr, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "file", verr.Field)
}
