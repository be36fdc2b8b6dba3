package users

import (
	"github.com/google/uuid"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

// UserDTO is the listing projection; it never carries the password hash.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Role        enums.Role `json:"role"`
	IsActive    bool       `json:"is_active"`
}

// UserSummary is returned by the mutating admin operations.
type UserSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	Role        enums.Role `json:"role"`
}

// ProfileDTO is the self view returned by GET /users/me.
type ProfileDTO struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	PhoneNumber    string     `json:"phone_number"`
	Email          *string    `json:"email"`
	Role           enums.Role `json:"role"`
	IsActive       bool       `json:"is_active"`
	ProfilePicture *string    `json:"profile_picture"`
}

type ListResult struct {
	Users []UserDTO `json:"users"`
	Total int       `json:"total"`
}

type CreateResult struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// MutationResult carries a message and, when state changed, the affected user.
type MutationResult struct {
	Message string       `json:"message"`
	User    *UserSummary `json:"user,omitempty"`
}

// RoleResult is MutationResult plus the unchanged role on the no-op path.
type RoleResult struct {
	Message string       `json:"message"`
	User    *UserSummary `json:"user,omitempty"`
	Role    enums.Role   `json:"role,omitempty"`
}

// CreateUserInput is the validated payload for Create.
type CreateUserInput struct {
	Name        string
	PhoneNumber string
	Password    string
	Role        enums.Role
}

func FromModel(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

func SummaryFromModel(u *models.User) *UserSummary {
	return &UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}

func ProfileFromModel(u *models.User) *ProfileDTO {
	return &ProfileDTO{
		ID:             u.ID,
		Name:           u.Name,
		PhoneNumber:    u.PhoneNumber,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
	}
}

// CreateUserRequest is the body accepted by POST /users/. Role defaults to user.
type CreateUserRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber string     `json:"phone_number" validate:"required,min=8,max=20"`
	Password    string     `json:"password" validate:"required,min=6,max=72"`
	Role        enums.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

func (r CreateUserRequest) ToInput() CreateUserInput {
	return CreateUserInput{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Password:    r.Password,
		Role:        r.Role,
	}
}

type UpdateRoleRequest struct {
	Role enums.Role `json:"role" validate:"required,oneof=admin user"`
}

// ChangePasswordRequest requires both fields to match before the service is called.
type ChangePasswordRequest struct {
	NewPassword        string `json:"new_password" validate:"required,min=6,max=72"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,min=6,max=72,eqfield=NewPassword"`
}
