package config

import (
	"errors"
	"log"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedPricingSettings(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedPricingSettings creates the pricing singleton with defaults when
// the row is absent.
func (s *Seeder) seedPricingSettings() error {
	var settings models.PricingSettings
	err := s.db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(models.DefaultPricingSettings()).Error; err != nil {
			return err
		}
		log.Println("✅ Default pricing settings created")
		return nil
	}
	return err
}

// seedAdminUser seeds a default admin account for development. In
// production, set ADMIN_PASSWORD and change it after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.StaffUser{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(getEnv("ADMIN_PASSWORD", "admin123456"))
	if err != nil {
		return err
	}

	admin := &models.StaffUser{
		Username: "admin",
		Email:    "admin@gymdesk.local",
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
