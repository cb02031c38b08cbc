package service

import (
	"context"
	"fmt"

	"weeld-core/internal/model"
	pwhash "weeld-core/internal/password"
	"weeld-core/internal/store"
)

// AdminService covers the operator surface: creating login-ready tenants and
// provisioning users into them.
type AdminService struct {
	store *store.Store
}

func NewAdminService(s *store.Store) *AdminService {
	return &AdminService{store: s}
}

// CreateTenant creates a tenant with its company number, making it a valid
// login target.
func (s *AdminService) CreateTenant(ctx context.Context, name, slug, companyNumber string) (*model.Tenant, error) {
	tenant := &model.Tenant{Name: name, Slug: slug, CompanyNumber: &companyNumber}
	if err := s.store.CreateTenant(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// CreateTenantUser provisions a user under a tenant. Provisioning is
// idempotent by email: an existing account is reused and only the membership
// link is ensured. The plaintext password is hashed here and never stored.
func (s *AdminService) CreateTenantUser(ctx context.Context, tenantID, email, password string, saasAdmin bool) (*model.User, error) {
	if _, err := s.store.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	hash, err := pwhash.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.store.ProvisionUser(ctx, tenantID, email, hash, saasAdmin)
}
