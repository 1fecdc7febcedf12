package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"mscp/internal/directory"
	"mscp/internal/domain"
	"mscp/internal/port"
)

// CreateUserInput is the DTO for creating a user.
type CreateUserInput struct {
	Username      string          `json:"username"`
	Email         string          `json:"email" binding:"required,email"`
	FullName      string          `json:"full_name" binding:"required"`
	Role          domain.UserRole `json:"role" binding:"required"`
	Password      string          `json:"password" binding:"omitempty,min=8"`
	StakeholderID *uuid.UUID      `json:"stakeholder_id"`
	SubClusterIDs []uuid.UUID     `json:"sub_cluster_ids"`
}

// UpdateUserInput is the DTO for updating a user.
type UpdateUserInput struct {
	Email         *string            `json:"email"`
	FullName      *string            `json:"full_name"`
	Role          *domain.UserRole   `json:"role"`
	Status        *domain.UserStatus `json:"status"`
	StakeholderID *uuid.UUID         `json:"stakeholder_id"`
	SubClusterIDs *[]uuid.UUID       `json:"sub_cluster_ids"`
}

// ChangePasswordInput is the DTO for password changes.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserService defines the user management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, viewer *domain.User, query string) ([]domain.User, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, viewerID, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
	BulkImport(ctx context.Context, file io.Reader) (*domain.ImportSummary, error)
}

type userService struct {
	userRepo        port.UserRepository
	stakeholderRepo port.StakeholderRepository
	emailSender     port.EmailSender
	log             *logrus.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(
	userRepo port.UserRepository,
	stakeholderRepo port.StakeholderRepository,
	emailSender port.EmailSender,
	log *logrus.Logger,
) UserService {
	return &userService{
		userRepo:        userRepo,
		stakeholderRepo: stakeholderRepo,
		emailSender:     emailSender,
		log:             log,
	}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, domain.ErrInvalidRole
	}
	if isStakeholderRole(input.Role) && input.StakeholderID == nil {
		return nil, domain.NewValidationError("stakeholder_id", "is required for stakeholder roles")
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)
	if username == "" {
		at := strings.Index(email, "@")
		if at <= 0 {
			return nil, domain.NewValidationError("email", "is not a valid address")
		}
		username = email[:at]
	}

	password := input.Password
	generated := password == ""
	if generated {
		var err error
		password, err = generateTempPassword()
		if err != nil {
			return nil, fmt.Errorf("generating temporary password: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hash),
		FullName:      input.FullName,
		Role:          input.Role,
		Status:        domain.UserStatusActive,
		StakeholderID: input.StakeholderID,
		SubClusterIDs: input.SubClusterIDs,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(input.SubClusterIDs) > 0 {
		if err := s.userRepo.SetSubClusters(ctx, user.ID, input.SubClusterIDs); err != nil {
			return nil, err
		}
	}

	if generated {
		if err := s.emailSender.SendWelcomeEmail(ctx, user.Email, user.FullName, password); err != nil {
			s.log.WithError(err).WithField("email", user.Email).Warn("failed to send welcome email")
		}
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, viewer *domain.User, query string) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stakeholders, err := s.stakeholderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := directory.NewStakeholderIndex(stakeholders)
	visible := directory.VisibleUsers(*viewer, users, idx)
	return directory.SearchUsers(visible, query, idx), nil
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if !domain.ValidUserRoles[*input.Role] {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.StakeholderID != nil {
		user.StakeholderID = input.StakeholderID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if input.SubClusterIDs != nil {
		if err := s.userRepo.SetSubClusters(ctx, user.ID, *input.SubClusterIDs); err != nil {
			return nil, err
		}
		user.SubClusterIDs = *input.SubClusterIDs
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, viewerID, userID uuid.UUID) error {
	if viewerID == userID {
		return domain.ErrSelfDeletion
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// Expected bulk-import sheet layout:
// Username | Email | Full Name | Role | Stakeholder.
const importHeaderRows = 1

func (s *userService) BulkImport(ctx context.Context, file io.Reader) (*domain.ImportSummary, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, domain.NewValidationError("file", "is not a readable xlsx workbook")
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading import sheet: %w", err)
	}

	stakeholders, err := s.stakeholderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(stakeholders))
	for _, st := range stakeholders {
		byName[strings.ToLower(strings.TrimSpace(st.Name))] = st.ID
	}

	summary := &domain.ImportSummary{}
	for i := importHeaderRows; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		summary.Total++

		candidate, err := directory.ValidateImportRow(directory.ImportRow{
			Username:        cell(row, 0),
			Email:           cell(row, 1),
			FullName:        cell(row, 2),
			Role:            domain.UserRole(strings.TrimSpace(cell(row, 3))),
			StakeholderName: cell(row, 4),
		})
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, domain.ImportRowError{Row: i + 1, Reason: err.Error()})
			continue
		}

		var stakeholderID *uuid.UUID
		if candidate.StakeholderName != "" {
			id, ok := byName[strings.ToLower(strings.TrimSpace(candidate.StakeholderName))]
			if !ok {
				summary.Skipped++
				summary.Errors = append(summary.Errors, domain.ImportRowError{
					Row:    i + 1,
					Reason: fmt.Sprintf("unknown stakeholder %q", candidate.StakeholderName),
				})
				continue
			}
			stakeholderID = &id
		}
		if isStakeholderRole(candidate.Role) && stakeholderID == nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, domain.ImportRowError{
				Row:    i + 1,
				Reason: "stakeholder is required for stakeholder roles",
			})
			continue
		}

		_, err = s.Create(ctx, CreateUserInput{
			Username:      candidate.Username,
			Email:         candidate.Email,
			FullName:      candidate.FullName,
			Role:          candidate.Role,
			StakeholderID: stakeholderID,
		})
		if err != nil {
			summary.Skipped++
			reason := "could not create user"
			if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
				reason = err.Error()
			} else {
				s.log.WithError(err).WithField("row", i+1).Warn("bulk import row failed")
			}
			summary.Errors = append(summary.Errors, domain.ImportRowError{Row: i + 1, Reason: reason})
			continue
		}
		summary.Created++
	}

	return summary, nil
}

func isStakeholderRole(role domain.UserRole) bool {
	return role == domain.RoleStakeholderAdmin || role == domain.RoleStakeholderUser
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
