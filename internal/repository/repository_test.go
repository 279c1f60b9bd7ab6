package repository

import (
	"testing"

	"catalogo/internal/infra"
	"catalogo/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a fresh in-memory sqlite database with the full schema.
// The SQL in the repositories is kept portable (no ILIKE, no postgres
// defaults) precisely so these tests can run without a server.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

// seedCatalogo inserts a catalog to hang products and orders off.
func seedCatalogo(t *testing.T, db *gorm.DB) *model.Catalogo {
	t.Helper()

	c := &model.Catalogo{Nome: "Colecao 2026", PDFURL: "https://cdn.example.com/colecao-2026.pdf"}
	require.NoError(t, db.Create(c).Error)
	return c
}
