package service

import (
	"context"
	"errors"
	"fmt"

	"weeld-core/internal/model"
	pwhash "weeld-core/internal/password"
	"weeld-core/internal/store"
	"weeld-core/pkg/jwtutil"
	"weeld-core/prometheus"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidLogin is the single error returned for every login failure:
// unknown company number, unknown username, wrong password, or missing
// membership. Collapsing them prevents enumeration of valid company numbers
// and usernames through response differences; the internal reason is recorded
// in metrics and logs only.
var ErrInvalidLogin = errors.New("invalid credentials")

// CredentialStore is the membership lookup surface Authenticate needs.
type CredentialStore interface {
	TenantByCompanyNumber(ctx context.Context, companyNumber string) (*model.Tenant, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	HasMembership(ctx context.Context, userID, tenantID string) (bool, error)
}

// AuthService resolves login attempts to tenant-scoped session claims and
// mints session tokens.
type AuthService struct {
	store  CredentialStore
	issuer *jwtutil.Issuer
}

func NewAuthService(credStore CredentialStore, issuer *jwtutil.Issuer) *AuthService {
	return &AuthService{store: credStore, issuer: issuer}
}

// Authenticate verifies a login attempt. Checks run in a fixed order: tenant
// by company number first (short-circuiting before any KDF work), then user
// existence and password as one failure class, then membership. SaaS admins
// skip the membership check entirely; a single admin account can authenticate
// against any tenant whose company number it supplies.
func (s *AuthService) Authenticate(ctx context.Context, username, password, companyNumber string) (*jwtutil.SessionClaims, error) {
	tenant, err := s.store.TenantByCompanyNumber(ctx, companyNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			prometheus.RecordAuthError("invalid_company_number")
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}

	user, err := s.store.UserByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			prometheus.RecordAuthError("unknown_user")
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if !pwhash.Verify(password, user.PasswordHash) {
		prometheus.RecordAuthError("invalid_password")
		return nil, ErrInvalidLogin
	}

	if !user.SaasAdmin {
		member, err := s.store.HasMembership(ctx, user.ID, tenant.ID)
		if err != nil {
			return nil, fmt.Errorf("check membership: %w", err)
		}
		if !member {
			prometheus.RecordAuthError("not_tenant_member")
			return nil, ErrInvalidLogin
		}
	}

	claims := &jwtutil.SessionClaims{
		Email:     user.Email,
		SaasAdmin: user.SaasAdmin,
		TenantID:  tenant.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	}
	if tenant.CompanyNumber != nil {
		claims.CompanyNumber = *tenant.CompanyNumber
	}
	return claims, nil
}

// Login authenticates and mints a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password, companyNumber string) (string, error) {
	claims, err := s.Authenticate(ctx, username, password, companyNumber)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(*claims)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	prometheus.IncreaseActiveTokens()
	return token, nil
}
