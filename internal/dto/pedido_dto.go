package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarPedidoRequest struct {
	// ID is optional: a client that already holds an order token may send it
	// to make creation idempotent (the existing order is returned unchanged).
	ID             *string `json:"id"`
	CatalogoID     uint    `json:"catalogo_id" validate:"required,min=1"`
	ClienteNome    *string `json:"cliente_nome"`
	ClienteContato *string `json:"cliente_contato"`
	Observacao     *string `json:"observacao"`
}

// AtualizarPedidoRequest patches mutable header fields only.
type AtualizarPedidoRequest struct {
	ClienteNome    *string `json:"cliente_nome"`
	ClienteContato *string `json:"cliente_contato"`
	Observacao     *string `json:"observacao"`
	Estado         *string `json:"estado" validate:"omitempty,oneof=aberto enviado fechado"`
}

// ItemPayload is one cart line as sent by clients, both in the full-replace
// sync and in the incremental add.
type ItemPayload struct {
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	Pagina      *int            `json:"pagina"`
	Qtd         int             `json:"qtd"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

type SubstituirItensRequest struct {
	Itens []ItemPayload `json:"itens" validate:"required"`
}

type AdicionarItemRequest struct {
	Ref         string          `json:"ref" validate:"required"`
	Nome        string          `json:"nome"`
	Pagina      *int            `json:"pagina"`
	Delta       int             `json:"delta"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

type RemoverItemRequest struct {
	Ref string `json:"ref" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoItemResponse struct {
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	Pagina      *int            `json:"pagina"`
	Qtd         int             `json:"qtd"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

type PedidoResponse struct {
	ID             string               `json:"id"`
	CatalogoID     uint                 `json:"catalogo_id"`
	ClienteNome    *string              `json:"cliente_nome"`
	ClienteContato *string              `json:"cliente_contato"`
	Observacao     *string              `json:"observacao"`
	Estado         string               `json:"estado"`
	CreatedAt      string               `json:"created_at"`
	Itens          []PedidoItemResponse `json:"itens,omitempty"`
}

// ResolvePedidoResponse is the payload served on /p/{id} links: just enough
// to rehydrate a cart on another device.
type ResolvePedidoResponse struct {
	PedidoID   string               `json:"pedido_id"`
	CatalogoID uint                 `json:"catalogo_id"`
	Itens      []PedidoItemResponse `json:"itens"`
}

type OkResponse struct {
	OK bool `json:"ok"`
}

// WhatsappResponse carries the rendered order message and the wa.me link.
type WhatsappResponse struct {
	Texto string `json:"texto"`
	Link  string `json:"link"`
}
