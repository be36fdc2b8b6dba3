package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/enums"
)

// User represents an account allowed to sign in to the back office.
// Password always holds a hash, never plaintext.
type User struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string     `gorm:"column:name;type:varchar(100);not null"`
	Email          *string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	PhoneNumber    string     `gorm:"column:phone_number;type:varchar(20);not null;uniqueIndex"`
	Password       string     `gorm:"column:password;type:varchar(512);not null"`
	ProfilePicture *string    `gorm:"column:profile_picture;type:varchar(512)"`
	Role           enums.Role `gorm:"column:role;not null;default:user"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	Timestamps
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the identifier client-side so inserts work on any dialect.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = enums.RoleUser
	}
	return nil
}
