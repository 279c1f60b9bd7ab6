// Package cart implements the client-resident shopping cart for one catalog
// session. The cart is the source of truth for the buyer's *intent*: every
// mutation applies locally first, persists to local storage, and then pushes
// the full snapshot to the order store in the background. Sync failures are
// swallowed — the next edit retries implicitly with fresher state.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const syncTimeout = 10 * time.Second

// Item is one cart line, the client-local mirror of an order line.
type Item struct {
	Ref         string          `json:"ref"`
	Nome        string          `json:"nome"`
	Pagina      *int            `json:"pagina"`
	Qtd         int             `json:"qtd"`
	QtdMultiplo int             `json:"qtd_multiplo"`
	Preco       decimal.Decimal `json:"preco"`
}

// Product is the catalog product view the cart needs for an add: price and
// multiple are re-stamped from it on every add, since catalog prices can
// change between views until the order is finally synced.
type Product struct {
	Ref         string
	Nome        string
	Pagina      int
	QtdMultiplo int
	Preco       decimal.Decimal
}

// Snapshot is a server-side order as seen by the cart: just enough to
// rehydrate from a shared /p/{id} link.
type Snapshot struct {
	PedidoID   string
	CatalogoID uint
	Itens      []Item
}

// Syncer is the order store client the cart pushes through. Implementations
// must be safe for concurrent use.
type Syncer interface {
	CriarPedido(ctx context.Context, catalogoID uint) (string, error)
	CarregarPedido(ctx context.Context, pedidoID string) (*Snapshot, error)
	SubstituirItens(ctx context.Context, pedidoID string, itens []Item) error
}

// Storage is the local persistence port (the localStorage analogue): a flat
// get/set by key. It caches intent across restarts; it is never the source
// of truth for the server.
type Storage interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Controller owns one catalog-scoped cart session. All methods are safe for
// concurrent use; background syncs never block callers.
type Controller struct {
	catalogoID uint
	storage    Storage
	syncer     Syncer

	mu       sync.Mutex
	itens    []Item
	pedidoID string
	dirty    bool
	inflight bool
	wg       sync.WaitGroup
}

type persistedCart struct {
	Itens []Item `json:"itens"`
}

type persistedPedido struct {
	PedidoID string `json:"pedido_id"`
}

// New restores any cart previously persisted for this catalog and returns
// the controller in that state (Empty when nothing was stored).
func New(catalogoID uint, storage Storage, syncer Syncer) *Controller {
	c := &Controller{catalogoID: catalogoID, storage: storage, syncer: syncer}

	if raw, ok := storage.Get(c.cartKey()); ok {
		var saved persistedCart
		if err := json.Unmarshal(raw, &saved); err == nil {
			c.itens = saved.Itens
		}
	}
	if raw, ok := storage.Get(c.pedidoKey()); ok {
		var saved persistedPedido
		if err := json.Unmarshal(raw, &saved); err == nil {
			c.pedidoID = saved.PedidoID
		}
	}
	return c
}

func (c *Controller) cartKey() string   { return fmt.Sprintf("catalogo_cart_%d", c.catalogoID) }
func (c *Controller) pedidoKey() string { return fmt.Sprintf("catalogo_pedido_%d", c.catalogoID) }

// AddToCart adds one purchase of p. Without forcedQty the added quantity is
// the product's multiple; either way the resulting line quantity is rounded
// to the multiple. Price and multiple are re-stamped from p.
func (c *Controller) AddToCart(p Product, forcedQty ...int) {
	addQty := p.QtdMultiplo
	if addQty < 1 {
		addQty = 1
	}
	if len(forcedQty) > 0 {
		addQty = forcedQty[0]
	}
	m := p.QtdMultiplo
	if m < 1 {
		m = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(p.Ref)
	if idx >= 0 {
		cur := &c.itens[idx]
		cur.Qtd = RoundToMultiple(cur.Qtd+addQty, m)
		cur.QtdMultiplo = m
		cur.Preco = p.Preco
	} else {
		pagina := p.Pagina
		c.itens = append(c.itens, Item{
			Ref:         p.Ref,
			Nome:        p.Nome,
			Pagina:      &pagina,
			Qtd:         RoundToMultiple(addQty, m),
			QtdMultiplo: m,
			Preco:       p.Preco,
		})
	}
	c.persistLocked()
	c.scheduleSyncLocked()
}

// RemoveFromCart deletes the line with the given ref. This is the only way
// to zero out a line — SetQty floors at one multiple.
func (c *Controller) RemoveFromCart(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(ref)
	if idx < 0 {
		return
	}
	c.itens = append(c.itens[:idx], c.itens[idx+1:]...)
	c.persistLocked()
	c.scheduleSyncLocked()
}

// SetQty sets a line's quantity, normalized against that line's multiple.
func (c *Controller) SetQty(ref string, qtd int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(ref)
	if idx < 0 {
		return
	}
	it := &c.itens[idx]
	it.Qtd = RoundToMultiple(qtd, it.QtdMultiplo)
	c.persistLocked()
	c.scheduleSyncLocked()
}

// ClearCart empties the cart; the background sync then deletes every
// server-side line (the order itself survives).
func (c *Controller) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.itens = nil
	c.persistLocked()
	c.scheduleSyncLocked()
}

// Itens returns a copy of the current lines, in insertion order.
func (c *Controller) Itens() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.itens))
	copy(out, c.itens)
	return out
}

// Total returns the current cart total.
func (c *Controller) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.itens {
		total = total.Add(it.Preco.Mul(decimal.NewFromInt(int64(it.Qtd))))
	}
	return total
}

// PedidoID returns the pinned order id, or "" when no sync has happened yet.
func (c *Controller) PedidoID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pedidoID
}

// EnsurePedidoID returns the order id, creating the server-side order now if
// this cart never synced. Used by explicit user actions (copy link, send)
// that must present a shareable id; unlike background syncs this surfaces
// the error.
func (c *Controller) EnsurePedidoID(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.pedidoID != "" {
		id := c.pedidoID
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	id, err := c.syncer.CriarPedido(ctx, c.catalogoID)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pedidoID == "" {
		c.pedidoID = id
		c.persistPedidoLocked()
	}
	return c.pedidoID, nil
}

// Rehydrate replaces the local cart wholesale with the server-persisted
// order — the only direction in which server state overwrites local. Called
// when entering through an order link; on error the local state is left
// untouched so the caller can fall back to an empty or existing cart.
func (c *Controller) Rehydrate(ctx context.Context, pedidoID string) error {
	snap, err := c.syncer.CarregarPedido(ctx, pedidoID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.itens = make([]Item, len(snap.Itens))
	copy(c.itens, snap.Itens)
	c.pedidoID = pedidoID
	c.persistLocked()
	c.persistPedidoLocked()
	return nil
}

// Wait blocks until all background syncs have settled. Intended for
// graceful shutdown and tests; buyers never wait on it.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// ── Internals ────────────────────────────────────────────────────────────────

func (c *Controller) indexOfLocked(ref string) int {
	for i := range c.itens {
		if c.itens[i].Ref == ref {
			return i
		}
	}
	return -1
}

func (c *Controller) persistLocked() {
	b, err := json.Marshal(persistedCart{Itens: c.itens})
	if err != nil {
		return
	}
	if err := c.storage.Set(c.cartKey(), b); err != nil {
		log.Debug().Err(err).Msg("cart: falha ao persistir carrinho local")
	}
}

func (c *Controller) persistPedidoLocked() {
	b, err := json.Marshal(persistedPedido{PedidoID: c.pedidoID})
	if err != nil {
		return
	}
	if err := c.storage.Set(c.pedidoKey(), b); err != nil {
		log.Debug().Err(err).Msg("cart: falha ao persistir pedido_id local")
	}
}

// scheduleSyncLocked marks the cart dirty and guarantees one (and only one)
// background goroutine is draining it. The goroutine always reads the
// snapshot at send time, so rapid successive edits collapse into the latest
// state instead of queueing stale payloads.
func (c *Controller) scheduleSyncLocked() {
	c.dirty = true
	if c.inflight {
		return
	}
	c.inflight = true
	c.wg.Add(1)
	go c.syncLoop()
}

func (c *Controller) syncLoop() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		if !c.dirty {
			c.inflight = false
			c.mu.Unlock()
			return
		}
		c.dirty = false
		snapshot := make([]Item, len(c.itens))
		copy(snapshot, c.itens)
		pedidoID := c.pedidoID
		c.mu.Unlock()

		if err := c.pushSnapshot(pedidoID, snapshot); err != nil {
			// Swallowed: local state stays authoritative for the UI and the
			// next edit re-issues a sync with fresher state.
			log.Debug().Err(err).Uint("catalogo_id", c.catalogoID).
				Msg("cart: sync em segundo plano falhou")
			c.mu.Lock()
			c.inflight = false
			c.mu.Unlock()
			return
		}
	}
}

func (c *Controller) pushSnapshot(pedidoID string, snapshot []Item) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if pedidoID == "" {
		id, err := c.syncer.CriarPedido(ctx, c.catalogoID)
		if err != nil {
			return err
		}
		c.mu.Lock()
		if c.pedidoID == "" {
			c.pedidoID = id
			c.persistPedidoLocked()
		}
		pedidoID = c.pedidoID
		c.mu.Unlock()
	}
	return c.syncer.SubstituirItens(ctx, pedidoID, snapshot)
}
