// Seed creates the bootstrap records: a demo tenant, the SaaS admin account
// from SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD, and the membership linking them.
// Every insert ignores conflicts so the seed can be re-run safely. The default
// credentials are demo values and must be overridden before any real
// deployment.
package main

import (
	"weeld-core/internal/model"
	pwhash "weeld-core/internal/password"
	"weeld-core/pkg/config"
	"weeld-core/pkg/database"
	"weeld-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	companyNumber := "FRDEMO0000000000"
	tenant := model.Tenant{Name: "Demo", Slug: "demo", CompanyNumber: &companyNumber}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tenant).Error; err != nil {
		log.Fatal("Failed to seed demo tenant", zap.Error(err))
	}

	hash, err := pwhash.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal("Failed to hash admin password", zap.Error(err))
	}
	admin := model.User{Email: cfg.Seed.AdminEmail, PasswordHash: hash, SaasAdmin: true}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Re-fetch both rows into fresh structs: a conflicting insert leaves a
	// generated id on the originals, not the persisted one.
	var seededTenant model.Tenant
	if err := db.First(&seededTenant, "slug = ?", "demo").Error; err != nil {
		log.Fatal("Failed to fetch demo tenant", zap.Error(err))
	}
	var seededAdmin model.User
	if err := db.First(&seededAdmin, "email = ?", cfg.Seed.AdminEmail).Error; err != nil {
		log.Fatal("Failed to fetch admin user", zap.Error(err))
	}

	membership := model.UserTenant{UserID: seededAdmin.ID, TenantID: seededTenant.ID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error; err != nil {
		log.Fatal("Failed to seed admin membership", zap.Error(err))
	}

	log.Info("Seed completed",
		zap.String("tenant_id", seededTenant.ID),
		zap.String("admin_email", seededAdmin.Email))
}
