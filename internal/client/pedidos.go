// Package client holds the HTTP client the cart controller syncs through.
// It talks to the order API of this same service (or another instance of it)
// and is wrapped in a circuit breaker so an unreachable backend fast-fails
// instead of stalling every cart edit.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"catalogo/internal/cart"
	"catalogo/internal/infra"
)

// PedidoClient implements cart.Syncer over the HTTP order API.
type PedidoClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *infra.CircuitBreaker
}

// NewPedidoClient builds a client against baseURL (no trailing slash).
func NewPedidoClient(baseURL string) *PedidoClient {
	return &PedidoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         infra.NewCircuitBreaker(infra.DefaultCBConfig()),
	}
}

// Wire shapes mirror the order API payloads.

type criarPedidoRequest struct {
	CatalogoID     uint   `json:"catalogo_id"`
	ClienteContato string `json:"cliente_contato,omitempty"`
	Observacao     string `json:"observacao,omitempty"`
}

type itemPayload struct {
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	Pagina      *int            `json:"pagina,omitempty"`
	Qtd         int             `json:"qtd"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

type substituirItensRequest struct {
	Itens []itemPayload `json:"itens"`
}

type pedidoResponse struct {
	ID         string        `json:"id"`
	CatalogoID uint          `json:"catalogo_id"`
	Itens      []itemPayload `json:"itens"`
}

// CriarPedido opens a fresh order for the catalog and returns its id.
func (c *PedidoClient) CriarPedido(ctx context.Context, catalogoID uint) (string, error) {
	body := criarPedidoRequest{
		CatalogoID:     catalogoID,
		ClienteContato: "WhatsApp",
		Observacao:     "Pedido via catalogo B2B",
	}

	var resp pedidoResponse
	err := c.do(ctx, http.MethodPost, "/pedidos", body, &resp)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("pedido criado sem id na resposta")
	}
	return resp.ID, nil
}

// CarregarPedido fetches an order for rehydration.
func (c *PedidoClient) CarregarPedido(ctx context.Context, pedidoID string) (*cart.Snapshot, error) {
	var resp pedidoResponse
	if err := c.do(ctx, http.MethodGet, "/pedidos/"+pedidoID, nil, &resp); err != nil {
		return nil, err
	}

	itens := make([]cart.Item, 0, len(resp.Itens))
	for _, it := range resp.Itens {
		itens = append(itens, cart.Item{
			Ref:         it.Ref,
			Nome:        it.Nome,
			Pagina:      it.Pagina,
			Qtd:         it.Qtd,
			QtdMultiplo: it.QtdMultiplo,
			Preco:       it.Preco,
		})
	}
	return &cart.Snapshot{
		PedidoID:   resp.ID,
		CatalogoID: resp.CatalogoID,
		Itens:      itens,
	}, nil
}

// SubstituirItens replaces the order's lines with the given snapshot.
func (c *PedidoClient) SubstituirItens(ctx context.Context, pedidoID string, itens []cart.Item) error {
	payload := substituirItensRequest{Itens: make([]itemPayload, 0, len(itens))}
	for _, it := range itens {
		payload.Itens = append(payload.Itens, itemPayload{
			Ref:         it.Ref,
			Nome:        it.Nome,
			Pagina:      it.Pagina,
			Qtd:         it.Qtd,
			QtdMultiplo: it.QtdMultiplo,
			Preco:       it.Preco,
		})
	}
	return c.do(ctx, http.MethodPut, "/pedidos/"+pedidoID+"/itens", payload, nil)
}

// do issues one JSON request through the circuit breaker, decoding the
// response into out when out is non-nil.
func (c *PedidoClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.cb.Execute(func() error {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("serializando corpo: %w", err)
			}
			reader = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("chamando API de pedidos: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("API de pedidos respondeu %d: %s", resp.StatusCode, string(raw))
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decodificando resposta: %w", err)
			}
		}
		return nil
	})
}
