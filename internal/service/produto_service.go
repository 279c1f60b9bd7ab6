package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	pageCacheTTL     = 10 * time.Minute
	buscaLimitMax    = 200
	buscaLimitPadrao = 50
)

// ProdutoService is the business logic for the catalog product index:
// bulk import plus the two buyer-facing reads (by page, by search term).
type ProdutoService interface {
	Importar(ctx context.Context, catalogoID uint, rows []dto.ProdutoRow, mode dto.ImportMode) (*dto.ImportResponse, error)
	ListarPorPagina(ctx context.Context, catalogoID uint, pagina int) ([]dto.ProdutoResponse, error)
	Buscar(ctx context.Context, catalogoID uint, termo string, limit int) ([]dto.ProdutoResponse, error)
}

type produtoService struct {
	repo         repository.ProdutoRepository
	catalogoRepo repository.CatalogoRepository
	rdb          *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, catalogoRepo repository.CatalogoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, catalogoRepo: catalogoRepo, rdb: rdb}
}

// Importar runs the bulk import in a single all-or-nothing transaction.
// Invalid rows (pagina < 1, missing ref/nome) are skipped, never fatal.
// Duplicate refs inside the batch collapse to the last occurrence, mirroring
// the upsert order a row-by-row import would produce.
func (s *produtoService) Importar(ctx context.Context, catalogoID uint, rows []dto.ProdutoRow, mode dto.ImportMode) (*dto.ImportResponse, error) {
	ok, err := s.catalogoRepo.Exists(ctx, catalogoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCatalogoNaoEncontrado
	}

	valid := make([]model.Produto, 0, len(rows))
	index := make(map[string]int, len(rows))
	skipped := 0
	for _, r := range rows {
		ref := strings.TrimSpace(r.Ref)
		nome := strings.TrimSpace(r.Nome)
		if r.Pagina < 1 || ref == "" || nome == "" {
			skipped++
			continue
		}
		multiplo := r.QtdMultiplo
		if multiplo < 1 {
			multiplo = 1
		}
		preco := r.Preco
		if preco.IsNegative() {
			preco = decimal.Zero
		}
		p := model.Produto{
			CatalogoID:  catalogoID,
			Pagina:      r.Pagina,
			Ref:         ref,
			Nome:        nome,
			QtdMultiplo: multiplo,
			Preco:       preco,
		}
		if i, dup := index[ref]; dup {
			valid[i] = p
			continue
		}
		index[ref] = len(valid)
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return nil, ErrSemLinhasValidas
	}

	switch mode {
	case dto.ImportAppend:
		err = s.repo.UpsertAll(ctx, catalogoID, valid)
	default:
		mode = dto.ImportReplace
		err = s.repo.ReplaceAll(ctx, catalogoID, valid)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, catalogoID)

	return &dto.ImportResponse{
		OK:         true,
		CatalogoID: catalogoID,
		Importados: len(valid),
		Ignorados:  skipped,
		Modo:       string(mode),
	}, nil
}

func (s *produtoService) ListarPorPagina(ctx context.Context, catalogoID uint, pagina int) ([]dto.ProdutoResponse, error) {
	cacheKey := s.pageCacheKey(ctx, catalogoID, pagina)

	if s.rdb != nil && cacheKey != "" {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp []dto.ProdutoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	produtos, err := s.repo.ListByPage(ctx, catalogoID, pagina)
	if err != nil {
		return nil, err
	}
	resp := produtosToResponse(produtos)

	// Populate cache — best effort, ignore errors
	if s.rdb != nil && cacheKey != "" {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, pageCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *produtoService) Buscar(ctx context.Context, catalogoID uint, termo string, limit int) ([]dto.ProdutoResponse, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return []dto.ProdutoResponse{}, nil
	}
	if limit < 1 {
		limit = buscaLimitPadrao
	}
	if limit > buscaLimitMax {
		limit = buscaLimitMax
	}
	produtos, err := s.repo.Search(ctx, catalogoID, termo, limit)
	if err != nil {
		return nil, err
	}
	return produtosToResponse(produtos), nil
}

// ── Cache ────────────────────────────────────────────────────────────────────
// Page lookups are cached under an epoch-scoped key; a bulk import bumps the
// catalog's epoch so stale entries simply age out instead of being scanned
// for and deleted.

func (s *produtoService) pageCacheKey(ctx context.Context, catalogoID uint, pagina int) string {
	if s.rdb == nil {
		return ""
	}
	epoch, err := s.rdb.Get(ctx, fmt.Sprintf("catalogo:%d:epoca", catalogoID)).Result()
	if err != nil {
		epoch = "0"
	}
	return fmt.Sprintf("catalogo:%d:%s:pagina:%d", catalogoID, epoch, pagina)
}

func (s *produtoService) invalidateCache(ctx context.Context, catalogoID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, fmt.Sprintf("catalogo:%d:epoca", catalogoID)).Err(); err != nil {
		log.Warn().Err(err).Uint("catalogo_id", catalogoID).Msg("falha ao invalidar cache de paginas")
	}
}

func produtosToResponse(produtos []model.Produto) []dto.ProdutoResponse {
	resp := make([]dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		resp = append(resp, dto.ProdutoResponse{
			Pagina:      p.Pagina,
			Ref:         p.Ref,
			Nome:        p.Nome,
			QtdMultiplo: p.QtdMultiplo,
			Preco:       p.Preco,
		})
	}
	return resp
}
