package model

import "time"

// RBAC tables. The schema is complete so the system can be extended with
// request-layer authorization later; nothing in the current services consumes
// these rows.

// Role is a tenant-scoped role. Role names are unique within a tenant.
type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_roles_tenant_name"`
	Name      string    `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:idx_roles_tenant_name"`
	CreatedAt time.Time `json:"created_at"`

	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// Permission is a global permission name roles can be granted.
type Permission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(120);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// RolePermission grants a permission to a role.
type RolePermission struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	RoleID       uint `json:"role_id" gorm:"not null;uniqueIndex:idx_role_permissions_pair"`
	PermissionID uint `json:"permission_id" gorm:"not null;uniqueIndex:idx_role_permissions_pair"`

	Role       Role       `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Permission Permission `json:"-" gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// UserRole assigns a tenant-scoped role to a user.
type UserRole struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_pair"`
	RoleID uint   `json:"role_id" gorm:"not null;uniqueIndex:idx_user_roles_pair"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role Role `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}
