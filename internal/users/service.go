package users

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
	msgUserNotFound      = "User not found"
	msgPhoneExists       = "User with this phone number already exists"
	msgUserCreated       = "User created successfully"
	msgRoleUpdated       = "User role updated successfully"
	msgRoleAlreadySet    = "User role already set"
	msgPasswordUpdated   = "Password updated successfully"
	msgUserDeleted       = "User deleted successfully"
	msgAlreadyDeleted    = "User already deactivated"
	msgCannotDeleteSelf  = "Admin cannot delete themselves"
	msgInactiveUser      = "Inactive user"
	phoneUniqueIndexHint = "phone_number"
)

// Service is the user lifecycle surface used by the users controller.
type Service interface {
	List(ctx context.Context) (*ListResult, error)
	Create(ctx context.Context, input CreateUserInput) (*CreateResult, error)
	UpdateRole(ctx context.Context, targetID uuid.UUID, role enums.Role) (*RoleResult, error)
	ResetPassword(ctx context.Context, targetID uuid.UUID, newPassword string) (*MutationResult, error)
	Deactivate(ctx context.Context, actorID, targetID uuid.UUID) (*MutationResult, error)
	GetSelf(ctx context.Context, subjectID uuid.UUID) (*ProfileDTO, error)
}

type userRepository interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo   userRepository
	Hasher passwordHasher
	Logger *logger.Logger
}

type service struct {
	repo   userRepository
	hasher passwordHasher
	logg   *logger.Logger
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:   params.Repo,
		hasher: params.Hasher,
		logg:   logg,
	}, nil
}

func (s *service) List(ctx context.Context) (*ListResult, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(out)), "users.listed")
	return &ListResult{Users: out, Total: len(out)}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*CreateResult, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	role := input.Role
	if role == "" {
		role = enums.RoleUser
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}

	existing, err := s.repo.FindByPhone(ctx, phone)
	switch {
	case err == nil && existing != nil:
		s.logg.Warn(s.logg.WithField(ctx, "reason", "phone_exists"), "users.create.rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgPhoneExists)
	case err != nil && !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user by phone")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	created, err := s.repo.Create(ctx, &models.User{
		Name:        strings.TrimSpace(input.Name),
		PhoneNumber: phone,
		Password:    hash,
		Role:        role,
		IsActive:    true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			s.logg.Warn(s.logg.WithField(ctx, "reason", "unique_violation"), "users.create.rejected")
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, conflictMessage(err))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"target_user_id": created.ID.String(),
		"role":           created.Role.String(),
	}), "users.created")

	return &CreateResult{Message: msgUserCreated, User: FromModel(created)}, nil
}

func (s *service) UpdateRole(ctx context.Context, targetID uuid.UUID, role enums.Role) (*RoleResult, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	user, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.Role == role {
		return &RoleResult{Message: msgRoleAlreadySet, Role: user.Role}, nil
	}

	previous := user.Role
	updated, err := s.repo.UpdateRole(ctx, user.ID, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user role")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"target_user_id": updated.ID.String(),
		"from_role":      previous.String(),
		"to_role":        updated.Role.String(),
	}), "users.role_updated")

	return &RoleResult{Message: msgRoleUpdated, User: SummaryFromModel(updated)}, nil
}

func (s *service) ResetPassword(ctx context.Context, targetID uuid.UUID, newPassword string) (*MutationResult, error) {
	user, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	updated, err := s.repo.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user password")
	}

	s.logg.Warn(s.logg.WithField(ctx, "target_user_id", updated.ID.String()), "users.password_reset")
	return &MutationResult{Message: msgPasswordUpdated, User: SummaryFromModel(updated)}, nil
}

func (s *service) Deactivate(ctx context.Context, actorID, targetID uuid.UUID) (*MutationResult, error) {
	user, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return &MutationResult{Message: msgAlreadyDeleted}, nil
	}
	if user.ID == actorID {
		s.logg.Warn(s.logg.WithField(ctx, "reason", "self_delete"), "users.deactivate.rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgCannotDeleteSelf)
	}

	updated, err := s.repo.Deactivate(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate user")
	}

	s.logg.Warn(s.logg.WithField(ctx, "target_user_id", updated.ID.String()), "users.deactivated")
	return &MutationResult{Message: msgUserDeleted, User: SummaryFromModel(updated)}, nil
}

func (s *service) GetSelf(ctx context.Context, subjectID uuid.UUID) (*ProfileDTO, error) {
	user, err := s.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		s.logg.Warn(ctx, "users.me.inactive")
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgInactiveUser)
	}
	return ProfileFromModel(user), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Warn(s.logg.WithField(ctx, "target_user_id", id.String()), "users.not_found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgUserNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

func conflictMessage(err error) string {
	if strings.Contains(err.Error(), phoneUniqueIndexHint) {
		return msgPhoneExists
	}
	return "User already exists"
}
