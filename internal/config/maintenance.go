package config

import (
	"log"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ClearAllData empties every collection but keeps the schema and its
// version. Pricing settings are reseeded so defaults apply on next read.
func ClearAllData(db *gorm.DB) error {
	log.Println("🧹 Clearing all data...")

	return db.Transaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&models.AttendanceRecord{},
			&models.PaymentRecord{},
			&models.Member{},
			&models.Promo{},
			&models.PricingSettings{},
		}
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return err
			}
		}
		return tx.Create(models.DefaultPricingSettings()).Error
	})
}

// ResetSchema drops every table and rebuilds the schema from scratch,
// then reseeds defaults. This is the administrative last resort for a
// corrupted store; ClearAllData is the gentler option.
func ResetSchema(db *gorm.DB) error {
	log.Println("💣 Resetting schema...")

	if err := db.Migrator().DropTable(models.All()...); err != nil {
		return err
	}
	if err := models.Migrate(db); err != nil {
		return err
	}
	return NewSeeder(db).Run()
}
