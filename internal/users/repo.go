package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

// Repository exposes user-related persistence operations.
// Lookups return gorm.ErrRecordNotFound when nothing matches.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByPhone retrieves the user registered with phone, active or not.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone returns the first user matching either identifier. An empty email is ignored.
func (r *Repository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	var user models.User
	query := r.db.WithContext(ctx)
	if email = strings.TrimSpace(email); email != "" {
		query = query.Where("email = ? OR phone_number = ?", email, phone)
	} else {
		query = query.Where("phone_number = ?", phone)
	}
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAdminByPhone retrieves an admin account by phone number.
func (r *Repository) FindAdminByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("phone_number = ? AND role = ?", phone, string(enums.RoleAdmin)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole writes the role column and returns the refreshed row.
func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) (*models.User, error) {
	return r.updateColumns(ctx, id, map[string]any{"role": string(role)})
}

// UpdatePassword writes the password hash and returns the refreshed row.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (*models.User, error) {
	return r.updateColumns(ctx, id, map[string]any{"password": hash})
}

// Deactivate clears is_active and returns the refreshed row. Repeated calls are harmless.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.updateColumns(ctx, id, map[string]any{"is_active": false})
}

// updateColumns writes only cols plus updated_at; other columns keep whatever is stored.
func (r *Repository) updateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) (*models.User, error) {
	cols["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// List returns every user, active and inactive, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
