package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const (
	MsgUserExists        = "User already exists"
	MsgAdminNotFound     = "Admin user not found"
	MsgPasswordsMismatch = "Passwords do not match"
	minPasswordLength    = 6
)

type userRepository interface {
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error)
	FindAdminByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (*models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// CreateAdminInput is collected by the operator CLI.
type CreateAdminInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// Service bootstraps and recovers administrator accounts outside the HTTP surface.
type Service struct {
	repo   userRepository
	hasher passwordHasher
	logg   *logger.Logger
}

func NewService(repo userRepository, hasher passwordHasher, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{repo: repo, hasher: hasher, logg: logg}, nil
}

// CreateAdmin inserts an active admin unless the email or phone is already registered.
func (s *Service) CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.PhoneNumber)
	if len(name) < 2 || len(name) > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must be between 2 and 100 characters")
	}
	if len(phone) < 8 || len(phone) > 20 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must be between 8 and 20 characters")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.repo.FindByEmailOrPhone(ctx, email, phone)
	switch {
	case err == nil && existing != nil:
		return nil, pkgerrors.New(pkgerrors.CodeConflict, MsgUserExists)
	case err != nil && !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup existing user")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:        name,
		PhoneNumber: phone,
		Password:    hash,
		Role:        enums.RoleAdmin,
		IsActive:    true,
	}
	if email != "" {
		user.Email = &email
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, MsgUserExists)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
	}
	s.logg.Info(s.logg.WithUserID(ctx, created.ID.String()), "admin.created")
	return created, nil
}

// LookupAdmin returns the admin registered with phone; regular users never match.
func (s *Service) LookupAdmin(ctx context.Context, phone string) (*models.User, error) {
	admin, err := s.repo.FindAdminByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgAdminNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}
	return admin, nil
}

// ResetAdminPassword replaces the password of the admin registered with phone.
func (s *Service) ResetAdminPassword(ctx context.Context, phone, newPassword, confirmPassword string) error {
	admin, err := s.LookupAdmin(ctx, phone)
	if err != nil {
		return err
	}
	if newPassword != confirmPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgPasswordsMismatch)
	}
	if len(newPassword) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if _, err := s.repo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update admin password")
	}
	s.logg.Warn(s.logg.WithUserID(ctx, admin.ID.String()), "admin.password_reset")
	return nil
}
