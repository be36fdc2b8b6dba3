package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pkgAuth "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/metrics"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/security"
)

type stubUserRepo struct {
	users []*models.User
	err   error
}

func (s stubUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fixture struct {
	svc     Service
	tokens  *pkgAuth.TokenService
	hasher  *security.Hasher
	reg     *prometheus.Registry
	metrics *metrics.AuthMetrics
}

func newFixture(t *testing.T, unify bool, users ...*models.User) fixture {
	t.Helper()
	tokens, err := pkgAuth.NewTokenService(config.JWTConfig{Secret: "secret", Algorithm: "HS256"})
	require.NoError(t, err)
	hasher := security.NewHasher(config.PasswordConfig{BcryptCost: bcrypt.MinCost})
	reg := prometheus.NewRegistry()
	m := metrics.NewAuthMetrics(reg)

	svc, err := NewService(ServiceParams{
		UserRepo:         stubUserRepo{users: users},
		Tokens:           tokens,
		Hasher:           hasher,
		Metrics:          m,
		UnifyLoginErrors: unify,
	})
	require.NoError(t, err)
	return fixture{svc: svc, tokens: tokens, hasher: hasher, reg: reg, metrics: m}
}

func newUser(t *testing.T, phone, password string, role enums.Role, active bool) *models.User {
	t.Helper()
	hash, err := security.NewHasher(config.PasswordConfig{BcryptCost: bcrypt.MinCost}).Hash(password)
	require.NoError(t, err)
	return &models.User{
		ID:          uuid.New(),
		Name:        "Alice",
		PhoneNumber: phone,
		Password:    hash,
		Role:        role,
		IsActive:    active,
	}
}

func requireUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func TestLoginIssuesAccessAndRefreshTokens(t *testing.T) {
	user := newUser(t, "+1000000001", "secret1", enums.RoleAdmin, true)
	fx := newFixture(t, false, user)

	pair, err := fx.svc.Login(context.Background(), LoginRequest{PhoneNumber: "+1000000001", Password: "secret1"})
	require.NoError(t, err)

	access, err := fx.tokens.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), access.Subject)
	assert.Equal(t, enums.RoleAdmin, access.Role)
	assert.True(t, access.IsAccess())

	refresh, err := fx.tokens.Decode(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.IsRefresh())
	assert.Empty(t, refresh.Role)

	assert.Equal(t, float64(1), fx.loginCount(t, metrics.LoginSuccess))
}

func (f fixture) loginCount(t *testing.T, outcome string) float64 {
	t.Helper()
	families, err := f.reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "oms_auth_login_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestLoginFailureMessages(t *testing.T) {
	active := newUser(t, "+1000000001", "secret1", enums.RoleUser, true)
	inactive := newUser(t, "+1000000002", "secret2", enums.RoleUser, false)
	fx := newFixture(t, false, active, inactive)
	ctx := context.Background()

	_, err := fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1999999999", Password: "secret1"})
	requireUnauthorized(t, err, MsgInvalidCredentials)

	_, err = fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1000000002", Password: "secret2"})
	requireUnauthorized(t, err, MsgInactiveUser)

	_, err = fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1000000002", Password: "wrong"})
	requireUnauthorized(t, err, MsgInactiveUser)

	_, err = fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1000000001", Password: "wrong"})
	requireUnauthorized(t, err, MsgIncorrectPassword)

	assert.Equal(t, float64(1), fx.loginCount(t, metrics.LoginNotFound))
	assert.Equal(t, float64(2), fx.loginCount(t, metrics.LoginInactive))
	assert.Equal(t, float64(1), fx.loginCount(t, metrics.LoginBadPassword))
}

func TestLoginUnifiedFailureMessages(t *testing.T) {
	active := newUser(t, "+1000000001", "secret1", enums.RoleUser, true)
	fx := newFixture(t, true, active)
	ctx := context.Background()

	_, err := fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1999999999", Password: "secret1"})
	requireUnauthorized(t, err, MsgInvalidCredentials)

	_, err = fx.svc.Login(ctx, LoginRequest{PhoneNumber: "+1000000001", Password: "wrong"})
	requireUnauthorized(t, err, MsgInvalidCredentials)
}

func TestLoginRejectsMalformedStoredHash(t *testing.T) {
	user := newUser(t, "+1000000001", "secret1", enums.RoleUser, true)
	user.Password = "not-a-hash"
	fx := newFixture(t, false, user)

	_, err := fx.svc.Login(context.Background(), LoginRequest{PhoneNumber: "+1000000001", Password: "secret1"})
	requireUnauthorized(t, err, MsgIncorrectPassword)
}

func TestLoginSurfacesStorageFailureAsInternal(t *testing.T) {
	tokens, err := pkgAuth.NewTokenService(config.JWTConfig{Secret: "secret"})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		UserRepo: stubUserRepo{err: errors.New("connection refused")},
		Tokens:   tokens,
		Hasher:   security.NewHasher(config.PasswordConfig{}),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{PhoneNumber: "+1", Password: "x"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}

func TestRefresh(t *testing.T) {
	user := newUser(t, "+1000000001", "secret1", enums.RoleUser, true)
	inactive := newUser(t, "+1000000002", "secret2", enums.RoleUser, false)
	fx := newFixture(t, false, user, inactive)
	ctx := context.Background()

	refresh, err := fx.tokens.IssueRefresh(user.ID.String())
	require.NoError(t, err)

	user.Role = enums.RoleAdmin
	pair, err := fx.svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	claims, err := fx.tokens.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, claims.Role, "role is reloaded from storage")
	assert.NotEmpty(t, pair.RefreshToken)

	access, err := fx.tokens.IssueAccess(user.ID.String(), enums.RoleUser)
	require.NoError(t, err)
	_, err = fx.svc.Refresh(ctx, access)
	requireUnauthorized(t, err, MsgInvalidTokenType)

	_, err = fx.svc.Refresh(ctx, "garbage")
	requireUnauthorized(t, err, MsgInvalidToken)

	expired, err := fx.tokens.WithClock(func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }).IssueRefresh(user.ID.String())
	require.NoError(t, err)
	_, err = fx.svc.Refresh(ctx, expired)
	requireUnauthorized(t, err, MsgInvalidToken)

	inactiveRefresh, err := fx.tokens.IssueRefresh(inactive.ID.String())
	require.NoError(t, err)
	_, err = fx.svc.Refresh(ctx, inactiveRefresh)
	requireUnauthorized(t, err, MsgInactiveUser)

	gone, err := fx.tokens.IssueRefresh(uuid.NewString())
	require.NoError(t, err)
	_, err = fx.svc.Refresh(ctx, gone)
	requireUnauthorized(t, err, MsgInvalidCredentials)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
