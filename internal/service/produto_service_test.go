package service

import (
	"context"
	"testing"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProdutoRepo keys products by ref, mimicking the unique index.
type stubProdutoRepo struct {
	produtos map[string]model.Produto
	replaced int
	upserted int
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[string]model.Produto)}
}

func (r *stubProdutoRepo) ReplaceAll(_ context.Context, _ uint, rows []model.Produto) error {
	r.replaced++
	r.produtos = make(map[string]model.Produto, len(rows))
	for _, p := range rows {
		r.produtos[p.Ref] = p
	}
	return nil
}

func (r *stubProdutoRepo) UpsertAll(_ context.Context, _ uint, rows []model.Produto) error {
	r.upserted++
	for _, p := range rows {
		r.produtos[p.Ref] = p
	}
	return nil
}

func (r *stubProdutoRepo) ListByPage(_ context.Context, _ uint, pagina int) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Pagina == pagina {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) Search(_ context.Context, _ uint, _ string, _ int) ([]model.Produto, error) {
	return nil, nil
}

func (r *stubProdutoRepo) CountByCatalogo(_ context.Context, _ uint) (int64, error) {
	return int64(len(r.produtos)), nil
}

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

func row(pagina int, ref, nome string) dto.ProdutoRow {
	return dto.ProdutoRow{Pagina: pagina, Ref: ref, Nome: nome, QtdMultiplo: 1, Preco: decimal.NewFromInt(5)}
}

func TestImportarContaImportadosEIgnorados(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := NewProdutoService(repo, newStubCatalogoRepo(1), nil)

	resp, err := svc.Importar(context.Background(), 1, []dto.ProdutoRow{
		row(1, "A-10", "Produto A"),
		row(0, "B-20", "Pagina invalida"),
		row(2, "", "Sem ref"),
		row(2, "C-30", ""),
		row(3, "D-40", "Produto D"),
	}, dto.ImportReplace)
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Importados)
	assert.Equal(t, 3, resp.Ignorados)
	assert.Equal(t, "replace", resp.Modo)
	assert.Len(t, repo.produtos, 2)
}

func TestImportarRefDuplicadaUltimaVence(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := NewProdutoService(repo, newStubCatalogoRepo(1), nil)

	resp, err := svc.Importar(context.Background(), 1, []dto.ProdutoRow{
		{Pagina: 1, Ref: "A-10", Nome: "Primeira", QtdMultiplo: 1, Preco: decimal.NewFromInt(5)},
		{Pagina: 2, Ref: "A-10", Nome: "Ultima", QtdMultiplo: 6, Preco: decimal.NewFromInt(7)},
	}, dto.ImportReplace)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Importados)
	assert.Equal(t, "Ultima", repo.produtos["A-10"].Nome)
	assert.Equal(t, 6, repo.produtos["A-10"].QtdMultiplo)
}

func TestImportarNormalizaMultiploEPreco(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := NewProdutoService(repo, newStubCatalogoRepo(1), nil)

	_, err := svc.Importar(context.Background(), 1, []dto.ProdutoRow{
		{Pagina: 1, Ref: "A-10", Nome: "Produto A", QtdMultiplo: 0, Preco: decimal.NewFromInt(-3)},
	}, dto.ImportReplace)
	require.NoError(t, err)

	p := repo.produtos["A-10"]
	assert.Equal(t, 1, p.QtdMultiplo)
	assert.True(t, p.Preco.IsZero())
}

func TestImportarModoAppendPreservaExistentes(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := NewProdutoService(repo, newStubCatalogoRepo(1), nil)

	_, err := svc.Importar(context.Background(), 1, []dto.ProdutoRow{row(1, "A-10", "Produto A")}, dto.ImportReplace)
	require.NoError(t, err)

	_, err = svc.Importar(context.Background(), 1, []dto.ProdutoRow{row(2, "B-20", "Produto B")}, dto.ImportAppend)
	require.NoError(t, err)

	assert.Len(t, repo.produtos, 2)
	assert.Equal(t, 1, repo.replaced)
	assert.Equal(t, 1, repo.upserted)
}

func TestImportarCatalogoInexistente(t *testing.T) {
	svc := NewProdutoService(newStubProdutoRepo(), newStubCatalogoRepo(1), nil)

	_, err := svc.Importar(context.Background(), 42, []dto.ProdutoRow{row(1, "A-10", "Produto A")}, dto.ImportReplace)
	assert.ErrorIs(t, err, ErrCatalogoNaoEncontrado)
}

func TestImportarSemLinhasValidas(t *testing.T) {
	svc := NewProdutoService(newStubProdutoRepo(), newStubCatalogoRepo(1), nil)

	_, err := svc.Importar(context.Background(), 1, []dto.ProdutoRow{row(0, "", "")}, dto.ImportReplace)
	assert.ErrorIs(t, err, ErrSemLinhasValidas)
}

func TestBuscarTermoVazioRetornaListaVazia(t *testing.T) {
	svc := NewProdutoService(newStubProdutoRepo(), newStubCatalogoRepo(1), nil)

	resp, err := svc.Buscar(context.Background(), 1, "   ", 10)
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}
