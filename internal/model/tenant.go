package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents an isolated customer organization. Login is scoped to a
// tenant through its company number, the business-registration identifier end
// users actually know.
type Tenant struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(120);not null"`
	Slug          string    `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	CompanyNumber *string   `json:"companyNumber,omitempty" gorm:"type:varchar(40);uniqueIndex"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate assigns a random UUID so tenant identifiers are not guessable.
func (t *Tenant) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
