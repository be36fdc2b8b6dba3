package users

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
)

// interleavingRepo runs between once, right after the next successful FindByID.
type interleavingRepo struct {
	*Repository
	mu      sync.Mutex
	between func()
}

func (r *interleavingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	hook := r.between
	r.between = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return user, nil
}

func TestResetPasswordDoesNotReactivateConcurrentlyDeletedUser(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	admin := seedUser(t, repo, "+1000000101", enums.RoleAdmin, true)
	target := seedUser(t, repo, "+1000000102", enums.RoleUser, true)

	deleter, err := NewService(ServiceParams{Repo: repo, Hasher: stubHasher{}})
	require.NoError(t, err)

	wrapped := &interleavingRepo{Repository: repo}
	wrapped.between = func() {
		res, err := deleter.Deactivate(ctx, admin.ID, target.ID)
		require.NoError(t, err)
		require.Equal(t, "User deleted successfully", res.Message)
	}
	resetter, err := NewService(ServiceParams{Repo: wrapped, Hasher: stubHasher{}})
	require.NoError(t, err)

	_, err = resetter.ResetPassword(ctx, target.ID, "new-secret")
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, "hashed:new-secret", stored.Password)
}

func TestUpdateRoleDoesNotReactivateConcurrentlyDeletedUser(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	admin := seedUser(t, repo, "+1000000103", enums.RoleAdmin, true)
	target := seedUser(t, repo, "+1000000104", enums.RoleUser, true)

	deleter, err := NewService(ServiceParams{Repo: repo, Hasher: stubHasher{}})
	require.NoError(t, err)

	wrapped := &interleavingRepo{Repository: repo}
	wrapped.between = func() {
		_, err := deleter.Deactivate(ctx, admin.ID, target.ID)
		require.NoError(t, err)
	}
	promoter, err := NewService(ServiceParams{Repo: wrapped, Hasher: stubHasher{}})
	require.NoError(t, err)

	_, err = promoter.UpdateRole(ctx, target.ID, enums.RoleAdmin)
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, enums.RoleAdmin, stored.Role)
}

func TestConcurrentCreateWithSamePhone(t *testing.T) {
	conn := newTestDB(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{Repo: repo, Hasher: stubHasher{}})
	require.NoError(t, err)

	const attempts = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Create(context.Background(), CreateUserInput{
				Name:        "Racer",
				PhoneNumber: "+1000000200",
				Password:    "secret1",
			})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		code := pkgerrors.As(err).Code()
		assert.True(t, code == pkgerrors.CodeValidation || code == pkgerrors.CodeConflict, "unexpected code %s", code)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Where("phone_number = ?", "+1000000200").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
