package dto

import "github.com/shopspring/decimal"

// ProdutoRow is one normalized product record produced by the CSV import
// adapter. Rows reaching the service layer are already well-formed except
// for the basic validity checks (pagina, ref, nome) re-applied there.
type ProdutoRow struct {
	Pagina      int             `json:"pagina"`
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

// ImportMode selects the bulk import semantics.
// "replace" wipes the catalog's product set first; "append" upserts by
// (catalogo_id, ref) and preserves rows absent from the import.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

// ─── Query DTOs ──────────────────────────────────────────────────────────────

type BuscaFilter struct {
	Q     string `form:"q"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	Pagina      int             `json:"pagina"`
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

type ImportResponse struct {
	OK         bool   `json:"ok"`
	CatalogoID uint   `json:"catalogo_id"`
	Importados int    `json:"importados"`
	Ignorados  int    `json:"ignorados"`
	Modo       string `json:"modo"`
}
