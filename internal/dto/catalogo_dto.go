package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarCatalogoRequest struct {
	Nome          string  `json:"nome"    validate:"required,min=2,max=120"`
	Ano           *int    `json:"ano"`
	PDFURL        string  `json:"pdf_url" validate:"required,url"`
	EmpresaNome   *string `json:"empresa_nome"`
	WhatsappPhone *string `json:"whatsapp_phone"`
	Politica      *string `json:"politica"`
}

// AtualizarCatalogoRequest is a partial update: nil pointers leave the
// corresponding column untouched.
type AtualizarCatalogoRequest struct {
	Nome          *string `json:"nome"    validate:"omitempty,min=2,max=120"`
	Ano           *int    `json:"ano"`
	PDFURL        *string `json:"pdf_url" validate:"omitempty,url"`
	EmpresaNome   *string `json:"empresa_nome"`
	WhatsappPhone *string `json:"whatsapp_phone"`
	Politica      *string `json:"politica"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CatalogoResponse struct {
	ID            uint    `json:"id"`
	Nome          string  `json:"nome"`
	Ano           *int    `json:"ano"`
	PDFURL        string  `json:"pdf_url"`
	EmpresaNome   *string `json:"empresa_nome"`
	WhatsappPhone *string `json:"whatsapp_phone"`
	Politica      *string `json:"politica"`
	CreatedAt     string  `json:"created_at"`
}
