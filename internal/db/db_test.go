package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"room-meeting-backend/config"
)

func TestInit_SQLiteMigratesSchema(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      "file:db_init_test?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	for _, table := range []string{
		"rooms", "room_reservations", "payments", "user_profiles", "admin_profiles",
		"user_has_reservation", "admin_has_reservation", "admin_control_room", "push_subscriptions",
	} {
		assert.True(t, gormDB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.Equal(t, 1, sqlDB.Stats().Idle)

	// the schema must survive the pool going idle between statements
	require.NoError(t, gormDB.Exec("INSERT INTO payments (total_price, created_at) VALUES (0, CURRENT_TIMESTAMP)").Error)
	var count int64
	require.NoError(t, gormDB.Table("payments").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
