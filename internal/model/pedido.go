package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido is a buyer's persisted cart snapshot.
// Its ID is an opaque token usable in shareable /p/{id} links.
// Estado: "aberto" | "enviado" | "fechado"
type Pedido struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CatalogoID     uint      `gorm:"index;not null"`
	ClienteNome    *string
	ClienteContato *string
	Observacao     *string
	Estado         string `gorm:"type:varchar(20);not null;default:'aberto'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Catalogo *Catalogo    `gorm:"foreignKey:CatalogoID"`
	Itens    []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one order line, keyed by (pedido_id, ref).
// QtdMultiplo and Preco are snapshotted from the product at add/sync time;
// the order is a point-in-time quote and does not track later price edits.
type PedidoItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	PedidoID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_pedido_ref;not null"`
	Ref         string    `gorm:"uniqueIndex:idx_pedido_ref;not null"`
	Nome        string    `gorm:"not null"`
	Pagina      *int
	Qtd         int             `gorm:"not null"`
	QtdMultiplo int             `gorm:"not null;default:1"`
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PedidoItem) TableName() string { return "pedido_itens" }
