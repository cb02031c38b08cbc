package service

import (
	"context"

	"weeld-core/internal/model"
	"weeld-core/internal/store"
)

// TenantService is a plain record manager over the tenants table.
type TenantService struct {
	store *store.Store
}

func NewTenantService(s *store.Store) *TenantService {
	return &TenantService{store: s}
}

// Create inserts a tenant without a company number; such tenants cannot be
// logged into until an operator assigns one through the admin surface.
func (s *TenantService) Create(ctx context.Context, name, slug string) (*model.Tenant, error) {
	tenant := &model.Tenant{Name: name, Slug: slug}
	if err := s.store.CreateTenant(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context) ([]model.Tenant, error) {
	return s.store.ListTenants(ctx)
}

func (s *TenantService) Get(ctx context.Context, id string) (*model.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// Update applies a partial patch of name and/or slug.
func (s *TenantService) Update(ctx context.Context, id string, name, slug *string) (*model.Tenant, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if slug != nil {
		updates["slug"] = *slug
	}
	return s.store.UpdateTenant(ctx, id, updates)
}

func (s *TenantService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTenant(ctx, id)
}
