package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgAuth "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/metrics"
)

const (
	MsgInvalidCredentials = "Invalid Credentials"
	MsgInactiveUser       = "Inactive user"
	MsgIncorrectPassword  = "Incorrect password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgInvalidTokenType   = "Invalid token type"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type userRepository interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenService interface {
	IssueAccess(subject string, role enums.Role) (string, error)
	IssueRefresh(subject string) (string, error)
	Decode(token string) (*pkgAuth.Claims, error)
}

type passwordVerifier interface {
	Verify(password, encoded string) bool
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo userRepository
	Tokens   tokenService
	Hasher   passwordVerifier
	Metrics  *metrics.AuthMetrics
	Logger   *logger.Logger
	// UnifyLoginErrors answers "Invalid Credentials" for both unknown phone numbers and wrong passwords.
	UnifyLoginErrors bool
}

type service struct {
	users   userRepository
	tokens  tokenService
	hasher  passwordVerifier
	metrics *metrics.AuthMetrics
	logg    *logger.Logger
	unify   bool
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		users:   params.UserRepo,
		tokens:  params.Tokens,
		hasher:  params.Hasher,
		metrics: params.Metrics,
		logg:    logg,
		unify:   params.UnifyLoginErrors,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	s.logg.Info(ctx, "auth.login.attempt")

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, s.reject(ctx, metrics.LoginNotFound, "user_not_found", MsgInvalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	ctx = s.logg.WithUserID(ctx, user.ID.String())
	if !user.IsActive {
		return nil, s.reject(ctx, metrics.LoginInactive, "inactive_user", MsgInactiveUser)
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		msg := MsgIncorrectPassword
		if s.unify {
			msg = MsgInvalidCredentials
		}
		return nil, s.reject(ctx, metrics.LoginBadPassword, "incorrect_password", msg)
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	s.logg.Info(s.logg.WithActorRole(ctx, user.Role.String()), "auth.login.succeeded")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The role is reloaded from storage.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", "invalid_token"), "auth.refresh.failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidToken)
	}
	if !claims.IsRefresh() {
		s.logg.Warn(s.logg.WithField(ctx, "reason", "wrong_token_type"), "auth.refresh.failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidTokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidToken)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Warn(s.logg.WithField(ctx, "reason", "user_not_found"), "auth.refresh.failed")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	ctx = s.logg.WithUserID(ctx, user.ID.String())
	if !user.IsActive {
		s.logg.Warn(s.logg.WithField(ctx, "reason", "inactive_user"), "auth.refresh.failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInactiveUser)
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "auth.refresh.succeeded")
	return pair, nil
}

func (s *service) issue(user *models.User) (*TokenPair, error) {
	subject := user.ID.String()
	access, err := s.tokens.IssueAccess(subject, user.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue access token")
	}
	refresh, err := s.tokens.IssueRefresh(subject)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue refresh token")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) reject(ctx context.Context, outcome, reason, message string) error {
	s.metrics.IncLogin(outcome)
	s.logg.Warn(s.logg.WithField(ctx, "reason", reason), "auth.login.failed")
	return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
}
