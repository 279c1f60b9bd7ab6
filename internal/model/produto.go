package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto is one catalog line item, bound to a PDF page and identified by
// Ref (unique within the catalog). Rows are created exclusively through the
// bulk CSV import; there is no per-product CRUD.
type Produto struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	CatalogoID uint   `gorm:"index;uniqueIndex:idx_catalogo_ref;not null"`
	Pagina     int    `gorm:"index;not null"`
	Ref        string `gorm:"uniqueIndex:idx_catalogo_ref;not null"`
	Nome       string `gorm:"index;not null"`
	// QtdMultiplo is the case-pack increment: order quantities must be a
	// positive multiple of it.
	QtdMultiplo int             `gorm:"not null;default:1"`
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Catalogo *Catalogo `gorm:"foreignKey:CatalogoID"`
}

func (Produto) TableName() string { return "catalogo_produtos" }
