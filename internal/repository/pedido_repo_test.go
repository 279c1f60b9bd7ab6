package repository

import (
	"context"
	"testing"
	"time"

	"catalogo/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPedido(t *testing.T, db *gorm.DB, catalogoID uint) *model.Pedido {
	t.Helper()

	repo := NewPedidoRepository(db)
	p := &model.Pedido{CatalogoID: catalogoID, Estado: "aberto"}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func pedidoItem(pedidoID uuid.UUID, ref string, qtd int) model.PedidoItem {
	return model.PedidoItem{
		PedidoID:    pedidoID,
		Ref:         ref,
		Nome:        "Produto " + ref,
		Qtd:         qtd,
		QtdMultiplo: 1,
		Preco:       decimal.NewFromInt(10),
	}
}

func TestCreateAssignsUUID(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)

	p := seedPedido(t, db, cat.ID)
	assert.NotEqual(t, uuid.Nil, p.ID)

	found, err := NewPedidoRepository(db).FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, found.CatalogoID)
	assert.Equal(t, "aberto", found.Estado)
}

func TestReplaceItensOverwritesWholeSet(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceItens(ctx, p.ID, []model.PedidoItem{
		pedidoItem(p.ID, "A-10", 3),
		pedidoItem(p.ID, "B-20", 6),
	}))
	require.NoError(t, repo.ReplaceItens(ctx, p.ID, []model.PedidoItem{
		pedidoItem(p.ID, "C-30", 2),
	}))

	_, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.Equal(t, "C-30", itens[0].Ref)
}

func TestReplaceItensEmptyKeepsOrder(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceItens(ctx, p.ID, []model.PedidoItem{pedidoItem(p.ID, "A-10", 3)}))
	require.NoError(t, repo.ReplaceItens(ctx, p.ID, nil))

	pedido, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, itens)
	assert.Equal(t, "aberto", pedido.Estado)
}

func TestReplaceItensTouchesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	before, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.ReplaceItens(ctx, p.ID, []model.PedidoItem{pedidoItem(p.ID, "A-10", 3)}))

	after, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestFindWithItensOrdersByNomeRef(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	itens := []model.PedidoItem{
		{PedidoID: p.ID, Ref: "Z-9", Nome: "Bota", Qtd: 1, QtdMultiplo: 1, Preco: decimal.NewFromInt(1)},
		{PedidoID: p.ID, Ref: "A-1", Nome: "Bota", Qtd: 1, QtdMultiplo: 1, Preco: decimal.NewFromInt(1)},
		{PedidoID: p.ID, Ref: "M-5", Nome: "Avental", Qtd: 1, QtdMultiplo: 1, Preco: decimal.NewFromInt(1)},
	}
	require.NoError(t, repo.ReplaceItens(ctx, p.ID, itens))

	_, got, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "M-5", got[0].Ref)
	assert.Equal(t, "A-1", got[1].Ref)
	assert.Equal(t, "Z-9", got[2].Ref)
}

func TestUpsertItemDeltaAccumulates(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	line, err := repo.UpsertItemDelta(ctx, p.ID, pedidoItem(p.ID, "A-10", 3))
	require.NoError(t, err)
	assert.Equal(t, 3, line.Qtd)

	line, err = repo.UpsertItemDelta(ctx, p.ID, pedidoItem(p.ID, "A-10", 3))
	require.NoError(t, err)
	assert.Equal(t, 6, line.Qtd)

	_, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.Equal(t, 6, itens[0].Qtd)
}

func TestUpsertItemDeltaClampsAtZeroAndDeletesLine(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	_, err := repo.UpsertItemDelta(ctx, p.ID, pedidoItem(p.ID, "A-10", 3))
	require.NoError(t, err)

	line, err := repo.UpsertItemDelta(ctx, p.ID, pedidoItem(p.ID, "A-10", -99))
	require.NoError(t, err)
	assert.Equal(t, 0, line.Qtd)

	_, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, itens)
}

func TestUpsertItemDeltaNegativeOnAbsentLine(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	line, err := repo.UpsertItemDelta(ctx, p.ID, pedidoItem(p.ID, "A-10", -5))
	require.NoError(t, err)
	assert.Equal(t, 0, line.Qtd)

	_, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, itens)
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	p := seedPedido(t, db, cat.ID)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceItens(ctx, p.ID, []model.PedidoItem{pedidoItem(p.ID, "A-10", 3)}))

	require.NoError(t, repo.DeleteItem(ctx, p.ID, "A-10"))
	require.NoError(t, repo.DeleteItem(ctx, p.ID, "A-10"))
	require.NoError(t, repo.DeleteItem(ctx, uuid.New(), "A-10"))

	_, itens, err := repo.FindWithItens(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, itens)
}

func TestUpdateFieldsUnknownOrder(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)

	_, err := repo.UpdateFields(context.Background(), uuid.New(), map[string]interface{}{"estado": "enviado"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
