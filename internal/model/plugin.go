package model

import "time"

// Plugin is a catalog entry for an installable plugin version. Metadata only,
// there is no execution runtime behind these rows.
type Plugin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:idx_plugins_name_version"`
	Version   string    `json:"version" gorm:"type:varchar(40);not null;uniqueIndex:idx_plugins_name_version"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantPlugin enables a plugin for a tenant and carries its opaque
// configuration blob.
type TenantPlugin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_tenant_plugins_pair"`
	PluginID  uint      `json:"plugin_id" gorm:"not null;uniqueIndex:idx_tenant_plugins_pair"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:true"`
	Config    string    `json:"config" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at"`

	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Plugin Plugin `json:"-" gorm:"foreignKey:PluginID;constraint:OnDelete:CASCADE"`
}
