package infra

import (
	"fmt"

	"catalogo/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all tables. The schema is small and index definitions
// live on the models, so AutoMigrate is sufficient here.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. Also used by the sqlite-backed
// repository tests so both engines share one definition.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Catalogo{},
		&model.Produto{},
		&model.Pedido{},
		&model.PedidoItem{},
	)
}
