package infra

import (
	"fmt"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the PostgreSQL connection, runs migrations and ensures
// the purchase-order number sequence exists.
func NewDatabase(databaseURL string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("database ready")
	return db, nil
}

func migrate(db *gorm.DB) error {
	// gen_random_uuid requires pgcrypto on PostgreSQL < 13.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Medicine{},
		&model.Sale{},
		&model.Customer{},
		&model.Bill{},
		&model.BillItem{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.PurchaseOrderReceived{},
		&model.Notification{},
		&model.Prediction{},
	); err != nil {
		return err
	}
	// Order numbers come from a dedicated sequence so concurrent creates
	// never collide.
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS purchase_orders_po_seq START 1").Error
}
