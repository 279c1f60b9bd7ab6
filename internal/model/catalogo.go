package model

import "time"

// Catalogo is a named product collection bound to a single PDF.
// Buyers browse it page by page; products are keyed to PDF pages.
type Catalogo struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Nome          string `gorm:"not null"`
	Ano           *int
	PDFURL        string  `gorm:"column:pdf_url;not null"`
	EmpresaNome   *string `gorm:"column:empresa_nome"`
	WhatsappPhone *string `gorm:"column:whatsapp_phone"`
	// Politica is free-form commercial policy text shown to buyers
	// (minimum order, payment terms) and echoed in the order message.
	Politica  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Catalogo) TableName() string { return "catalogos" }
