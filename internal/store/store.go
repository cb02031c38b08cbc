// Package store is the persistence layer. All uniqueness guarantees (email,
// slug, company number, membership pair) are enforced by PostgreSQL
// constraints; this package converts constraint-violation signals into domain
// errors or benign no-ops rather than using application-level locking.
package store

import (
	"context"
	"errors"
	"time"

	"weeld-core/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when a referenced entity is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSlug is returned when a tenant create or update collides on
	// the unique slug.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrConflict is returned for any other unique-constraint collision.
	ErrConflict = errors.New("conflict")
)

// queryTimeout bounds every store call; no statement may hang past it.
const queryTimeout = 5 * time.Second

// Store wraps the database handle. It is passed down explicitly from main,
// never held in a package-level singleton.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// CreateTenant inserts a tenant, mapping a slug collision to ErrDuplicateSlug.
func (s *Store) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// ListTenants returns all tenants.
func (s *Store) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tenants := []model.Tenant{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&tenants).Error; err != nil {
		return nil, mapError(err)
	}
	return tenants, nil
}

// GetTenant fetches a tenant by id.
func (s *Store) GetTenant(ctx context.Context, id string) (*model.Tenant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var tenant model.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &tenant, nil
}

// UpdateTenant applies a partial patch (name and/or slug) and returns the
// updated row.
func (s *Store) UpdateTenant(ctx context.Context, id string, updates map[string]interface{}) (*model.Tenant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, mapError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	var tenant model.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &tenant, nil
}

// DeleteTenant removes a tenant. Memberships and other child rows cascade at
// the database layer.
func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&model.Tenant{}, "id = ?", id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TenantByCompanyNumber resolves the tenant a login attempt is scoped to.
func (s *Store) TenantByCompanyNumber(ctx context.Context, companyNumber string) (*model.Tenant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var tenant model.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, "company_number = ?", companyNumber).Error; err != nil {
		return nil, mapError(err)
	}
	return &tenant, nil
}

// UserByEmail fetches a user by its globally unique email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// HasMembership reports whether the user holds a membership row for the tenant.
func (s *Store) HasMembership(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserTenant{}).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Count(&count).Error
	if err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// ProvisionUser creates the user if the email is new, reuses the existing
// account otherwise, and ensures a membership row links the user to the
// tenant. Both statements run in one transaction so a created user can never
// be left without its membership. Concurrent calls for the same email are
// resolved by the unique-email constraint: the losing insert becomes a fetch,
// never an error.
func (s *Store) ProvisionUser(ctx context.Context, tenantID, email, passwordHash string, saasAdmin bool) (*model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := model.User{Email: email, PasswordHash: passwordHash, SaasAdmin: saasAdmin}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Email already taken: reuse the existing account. Fetch into a
			// fresh struct, the insert left a generated id on this one and
			// gorm would add it to the WHERE clause.
			var existing model.User
			if err := tx.First(&existing, "email = ?", email).Error; err != nil {
				return err
			}
			user = existing
		}

		membership := model.UserTenant{UserID: user.ID, TenantID: tenantID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error; err != nil {
			return err
		}

		return tx.First(&out, "id = ?", user.ID).Error
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}
