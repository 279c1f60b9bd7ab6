package repository

import (
	"context"
	"testing"

	"catalogo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func produto(catalogoID uint, pagina int, ref, nome string) model.Produto {
	return model.Produto{
		CatalogoID:  catalogoID,
		Pagina:      pagina,
		Ref:         ref,
		Nome:        nome,
		QtdMultiplo: 1,
		Preco:       decimal.NewFromInt(10),
	}
}

func TestReplaceAllWipesPreviousSet(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, []model.Produto{
		produto(cat.ID, 1, "A-10", "Produto A"),
		produto(cat.ID, 2, "B-20", "Produto B"),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, []model.Produto{
		produto(cat.ID, 3, "C-30", "Produto C"),
	}))

	count, err := repo.CountByCatalogo(ctx, cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	rows, err := repo.ListByPage(ctx, cat.ID, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C-30", rows[0].Ref)
}

func TestReplaceAllDoesNotTouchOtherCatalogs(t *testing.T) {
	db := setupDB(t)
	cat1 := seedCatalogo(t, db)
	cat2 := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat1.ID, []model.Produto{produto(cat1.ID, 1, "A-10", "Produto A")}))
	require.NoError(t, repo.ReplaceAll(ctx, cat2.ID, []model.Produto{produto(cat2.ID, 1, "A-10", "Produto A")}))

	require.NoError(t, repo.ReplaceAll(ctx, cat1.ID, []model.Produto{produto(cat1.ID, 2, "B-20", "Produto B")}))

	count, err := repo.CountByCatalogo(ctx, cat2.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpsertAllPreservesAbsentRows(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, []model.Produto{
		produto(cat.ID, 1, "A-10", "Produto A"),
		produto(cat.ID, 2, "B-20", "Produto B"),
	}))

	updated := produto(cat.ID, 5, "A-10", "Produto A v2")
	updated.Preco = decimal.NewFromFloat(12.5)
	require.NoError(t, repo.UpsertAll(ctx, cat.ID, []model.Produto{
		updated,
		produto(cat.ID, 3, "C-30", "Produto C"),
	}))

	count, err := repo.CountByCatalogo(ctx, cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	rows, err := repo.ListByPage(ctx, cat.ID, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Produto A v2", rows[0].Nome)
	assert.True(t, rows[0].Preco.Equal(decimal.NewFromFloat(12.5)))
}

func TestListByPageOrdersByNomeThenRef(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, []model.Produto{
		produto(cat.ID, 1, "Z-01", "Bota"),
		produto(cat.ID, 1, "A-02", "Bota"),
		produto(cat.ID, 1, "M-03", "Avental"),
		produto(cat.ID, 2, "X-04", "Outra pagina"),
	}))

	rows, err := repo.ListByPage(ctx, cat.ID, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Avental", rows[0].Nome)
	assert.Equal(t, "A-02", rows[1].Ref)
	assert.Equal(t, "Z-01", rows[2].Ref)
}

func TestSearchRanksRefMatchesFirst(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, []model.Produto{
		produto(cat.ID, 9, "B-77", "Luva bot"),   // nome-only match, later page
		produto(cat.ID, 5, "BOT-1", "Sapato"),    // ref match
		produto(cat.ID, 2, "C-10", "Bota couro"), // nome-only match, earlier page
	}))

	rows, err := repo.Search(ctx, cat.ID, "bot", 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ref tier first, then page order within the nome tier.
	assert.Equal(t, "BOT-1", rows[0].Ref)
	assert.Equal(t, "C-10", rows[1].Ref)
	assert.Equal(t, "B-77", rows[2].Ref)
}

func TestSearchIsCaseInsensitiveAndScoped(t *testing.T) {
	db := setupDB(t)
	cat1 := seedCatalogo(t, db)
	cat2 := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, cat1.ID, []model.Produto{produto(cat1.ID, 1, "A-10", "Bota Couro")}))
	require.NoError(t, repo.ReplaceAll(ctx, cat2.ID, []model.Produto{produto(cat2.ID, 1, "A-10", "Bota Nobuck")}))

	rows, err := repo.Search(ctx, cat1.ID, "BOTA", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bota Couro", rows[0].Nome)
}

func TestSearchHonorsLimit(t *testing.T) {
	db := setupDB(t)
	cat := seedCatalogo(t, db)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	batch := []model.Produto{
		produto(cat.ID, 1, "A-1", "Bota 1"),
		produto(cat.ID, 2, "A-2", "Bota 2"),
		produto(cat.ID, 3, "A-3", "Bota 3"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, cat.ID, batch))

	rows, err := repo.Search(ctx, cat.ID, "bota", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
