package service

import "errors"

// Sentinel errors surfaced across the service layer. Handlers translate them
// to HTTP status codes; anything else is treated as an internal error.
var (
	ErrCatalogoNaoEncontrado = errors.New("catalogo nao encontrado")
	// ErrCatalogoInvalido means an order referenced a nonexistent catalog.
	ErrCatalogoInvalido    = errors.New("catalogo_id nao existe")
	ErrPedidoNaoEncontrado = errors.New("pedido nao encontrado")
	ErrSemCampos           = errors.New("nenhum campo para atualizar")
	ErrSemLinhasValidas    = errors.New("importacao sem linhas validas")
)
