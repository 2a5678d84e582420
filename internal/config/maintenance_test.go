package config

import (
	"testing"

	"gymdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestClearAllDataKeepsSchemaAndStaff(t *testing.T) {
	db := openStore(t)
	require.NoError(t, NewSeeder(db).Run())

	require.NoError(t, db.Create(&models.Member{
		ID: "GM1", FullName: "X", InviteCode: "GM1",
		MembershipStartDate: "2024-01-01", MembershipExpiryDate: "2025-01-01",
		PaymentType: "per_session", Status: "active",
	}).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{
		ID: "p1", Date: "2024-01-01", Amount: 500, Method: "Cash",
		Category: "Membership Fee", MemberID: "GM1",
	}).Error)

	require.NoError(t, ClearAllData(db))

	assert.EqualValues(t, 0, count(t, db, &models.Member{}))
	assert.EqualValues(t, 0, count(t, db, &models.PaymentRecord{}))

	// Schema version and staff accounts survive; pricing is reseeded.
	assert.EqualValues(t, 1, count(t, db, &models.SchemaMeta{}))
	assert.EqualValues(t, 1, count(t, db, &models.StaffUser{}))

	var settings models.PricingSettings
	require.NoError(t, db.First(&settings).Error)
	assert.Equal(t, 500.0, settings.MembershipFee)
}

func TestResetSchemaRebuildsAndReseeds(t *testing.T) {
	db := openStore(t)
	require.NoError(t, db.Create(&models.Member{
		ID: "GM1", FullName: "X", InviteCode: "GM1",
		MembershipStartDate: "2024-01-01", MembershipExpiryDate: "2025-01-01",
		PaymentType: "per_session", Status: "active",
	}).Error)

	require.NoError(t, ResetSchema(db))

	assert.EqualValues(t, 0, count(t, db, &models.Member{}))

	var meta models.SchemaMeta
	require.NoError(t, db.First(&meta).Error)
	assert.Equal(t, models.SchemaVersion, meta.Version)

	// Seeder ran: pricing and the admin account exist again.
	assert.EqualValues(t, 1, count(t, db, &models.PricingSettings{}))
	assert.EqualValues(t, 1, count(t, db, &models.StaffUser{}))
}
