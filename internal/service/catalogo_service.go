package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"gorm.io/gorm"
)

// CatalogoService is the business logic contract for catalog management.
type CatalogoService interface {
	Criar(ctx context.Context, req dto.CriarCatalogoRequest) (*dto.CatalogoResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.CatalogoResponse, error)
	Listar(ctx context.Context) ([]dto.CatalogoResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarCatalogoRequest) (*dto.CatalogoResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) Criar(ctx context.Context, req dto.CriarCatalogoRequest) (*dto.CatalogoResponse, error) {
	c := &model.Catalogo{
		Nome:          strings.TrimSpace(req.Nome),
		Ano:           req.Ano,
		PDFURL:        strings.TrimSpace(req.PDFURL),
		EmpresaNome:   trimPtr(req.EmpresaNome),
		WhatsappPhone: trimPtr(req.WhatsappPhone),
		Politica:      trimPtr(req.Politica),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return catalogoToResponse(c), nil
}

func (s *catalogoService) ObterPorID(ctx context.Context, id uint) (*dto.CatalogoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogoNaoEncontrado
		}
		return nil, err
	}
	return catalogoToResponse(c), nil
}

func (s *catalogoService) Listar(ctx context.Context) ([]dto.CatalogoResponse, error) {
	catalogos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogoResponse, 0, len(catalogos))
	for i := range catalogos {
		out = append(out, *catalogoToResponse(&catalogos[i]))
	}
	return out, nil
}

func (s *catalogoService) Atualizar(ctx context.Context, id uint, req dto.AtualizarCatalogoRequest) (*dto.CatalogoResponse, error) {
	fields := map[string]interface{}{}
	if req.Nome != nil {
		fields["nome"] = strings.TrimSpace(*req.Nome)
	}
	if req.Ano != nil {
		fields["ano"] = *req.Ano
	}
	if req.PDFURL != nil {
		fields["pdf_url"] = strings.TrimSpace(*req.PDFURL)
	}
	if req.EmpresaNome != nil {
		fields["empresa_nome"] = strings.TrimSpace(*req.EmpresaNome)
	}
	if req.WhatsappPhone != nil {
		fields["whatsapp_phone"] = strings.TrimSpace(*req.WhatsappPhone)
	}
	if req.Politica != nil {
		fields["politica"] = strings.TrimSpace(*req.Politica)
	}
	if len(fields) == 0 {
		return nil, ErrSemCampos
	}
	fields["updated_at"] = time.Now()

	c, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogoNaoEncontrado
		}
		return nil, err
	}
	return catalogoToResponse(c), nil
}

func catalogoToResponse(c *model.Catalogo) *dto.CatalogoResponse {
	return &dto.CatalogoResponse{
		ID:            c.ID,
		Nome:          c.Nome,
		Ano:           c.Ano,
		PDFURL:        c.PDFURL,
		EmpresaNome:   c.EmpresaNome,
		WhatsappPhone: c.WhatsappPhone,
		Politica:      c.Politica,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
