package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account. Users are not intrinsically tenant-scoped: the
// email is unique across the whole system and tenant access is granted through
// UserTenant memberships. A SaaS admin may authenticate against any tenant
// without a membership row.
type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	SaasAdmin    bool      `json:"saasAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
