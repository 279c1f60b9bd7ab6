package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogo/internal/dto"
	"catalogo/internal/infra"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/whatsapp"
	"catalogo/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PedidoService is the Order Store: the durable, authoritative record of a
// buyer's cart. Full-replace sync is last-write-wins; the incremental add is
// the additive primitive used by operator shortcuts.
type PedidoService interface {
	Criar(ctx context.Context, req dto.CriarPedidoRequest) (*dto.PedidoResponse, error)
	Carregar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPedidoRequest) (*dto.PedidoResponse, error)
	SubstituirItens(ctx context.Context, id uuid.UUID, itens []dto.ItemPayload) error
	AdicionarItem(ctx context.Context, id uuid.UUID, req dto.AdicionarItemRequest) (*dto.PedidoItemResponse, error)
	RemoverItem(ctx context.Context, id uuid.UUID, ref string) error
	// Resolver serves the shareable /p/{id} link: the minimum payload needed
	// to rehydrate a cart on another device.
	Resolver(ctx context.Context, id uuid.UUID) (*dto.ResolvePedidoResponse, error)
	// Whatsapp renders the order message and its wa.me link.
	Whatsapp(ctx context.Context, id uuid.UUID) (*dto.WhatsappResponse, error)
	// GerarPDF renders the order quote PDF on demand and returns its path.
	GerarPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	catalogoRepo repository.CatalogoRepository
	dispatcher   *worker.Dispatcher
	domain       string
	pdfPath      string
}

// NewPedidoService wires the order store. dispatcher may be nil (tests,
// deployments without SMTP); notification enqueueing is then skipped.
func NewPedidoService(repo repository.PedidoRepository, catalogoRepo repository.CatalogoRepository, dispatcher *worker.Dispatcher, domain, pdfPath string) PedidoService {
	return &pedidoService{repo: repo, catalogoRepo: catalogoRepo, dispatcher: dispatcher, domain: domain, pdfPath: pdfPath}
}

// Criar materializes an order. Idempotent by client-supplied id: when the id
// already exists the stored order is returned unchanged. The catalog must
// exist — orders never dangle.
func (s *pedidoService) Criar(ctx context.Context, req dto.CriarPedidoRequest) (*dto.PedidoResponse, error) {
	ok, err := s.catalogoRepo.Exists(ctx, req.CatalogoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCatalogoInvalido
	}

	if req.ID != nil {
		if id, parseErr := uuid.Parse(strings.TrimSpace(*req.ID)); parseErr == nil {
			if existing, findErr := s.repo.FindByID(ctx, id); findErr == nil {
				return pedidoToResponse(existing, nil), nil
			}
		}
	}

	p := &model.Pedido{
		CatalogoID:     req.CatalogoID,
		ClienteNome:    trimPtr(req.ClienteNome),
		ClienteContato: trimPtr(req.ClienteContato),
		Observacao:     trimPtr(req.Observacao),
		Estado:         "aberto",
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return pedidoToResponse(p, nil), nil
}

func (s *pedidoService) Carregar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, itens, err := s.repo.FindWithItens(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNaoEncontrado
		}
		return nil, err
	}
	return pedidoToResponse(p, itens), nil
}

func (s *pedidoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPedidoRequest) (*dto.PedidoResponse, error) {
	fields := map[string]interface{}{}
	if req.ClienteNome != nil {
		fields["cliente_nome"] = strings.TrimSpace(*req.ClienteNome)
	}
	if req.ClienteContato != nil {
		fields["cliente_contato"] = strings.TrimSpace(*req.ClienteContato)
	}
	if req.Observacao != nil {
		fields["observacao"] = strings.TrimSpace(*req.Observacao)
	}
	enviado := false
	if req.Estado != nil {
		estado := strings.TrimSpace(*req.Estado)
		if estado == "" {
			estado = "aberto"
		}
		fields["estado"] = estado
		enviado = estado == "enviado"
	}
	if len(fields) == 0 {
		return nil, ErrSemCampos
	}
	fields["updated_at"] = time.Now()

	p, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNaoEncontrado
		}
		return nil, err
	}

	// Checkout: notify the operator asynchronously. Never blocks or fails
	// the buyer's request.
	if enviado && s.dispatcher != nil {
		if err := s.dispatcher.EnqueueNotificacao(ctx, worker.NotificacaoPayload{PedidoID: p.ID.String()}); err != nil {
			log.Warn().Err(err).Str("pedido_id", p.ID.String()).Msg("falha ao enfileirar notificacao de pedido")
		}
	}
	return pedidoToResponse(p, nil), nil
}

// SubstituirItens is the full cart sync primitive: overwrite, not merge.
// Each item is normalized (ref required, qty floored at 0 and dropped when
// 0, multiple floored at 1); duplicate refs collapse to the last occurrence.
func (s *pedidoService) SubstituirItens(ctx context.Context, id uuid.UUID, itens []dto.ItemPayload) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNaoEncontrado
		}
		return err
	}

	normalized := make([]model.PedidoItem, 0, len(itens))
	index := make(map[string]int, len(itens))
	for _, it := range itens {
		ref := strings.TrimSpace(it.Ref)
		qtd := it.Qtd
		if qtd < 0 {
			qtd = 0
		}
		if ref == "" || qtd == 0 {
			continue
		}
		multiplo := it.QtdMultiplo
		if multiplo < 1 {
			multiplo = 1
		}
		item := model.PedidoItem{
			PedidoID:    id,
			Ref:         ref,
			Nome:        strings.TrimSpace(it.Nome),
			Pagina:      it.Pagina,
			Qtd:         qtd,
			QtdMultiplo: multiplo,
			Preco:       it.Preco,
		}
		if i, dup := index[ref]; dup {
			normalized[i] = item
			continue
		}
		index[ref] = len(normalized)
		normalized = append(normalized, item)
	}

	return s.repo.ReplaceItens(ctx, id, normalized)
}

func (s *pedidoService) AdicionarItem(ctx context.Context, id uuid.UUID, req dto.AdicionarItemRequest) (*dto.PedidoItemResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNaoEncontrado
		}
		return nil, err
	}

	delta := req.Delta
	if delta == 0 {
		delta = 1
	}
	multiplo := req.QtdMultiplo
	if multiplo < 1 {
		multiplo = 1
	}
	item := model.PedidoItem{
		PedidoID:    id,
		Ref:         strings.TrimSpace(req.Ref),
		Nome:        strings.TrimSpace(req.Nome),
		Pagina:      req.Pagina,
		Qtd:         delta,
		QtdMultiplo: multiplo,
		Preco:       req.Preco,
	}
	saved, err := s.repo.UpsertItemDelta(ctx, id, item)
	if err != nil {
		return nil, err
	}
	resp := itemToResponse(*saved)
	return &resp, nil
}

func (s *pedidoService) RemoverItem(ctx context.Context, id uuid.UUID, ref string) error {
	// Idempotent by design: removing an absent line (or from an absent
	// order) is a no-op.
	return s.repo.DeleteItem(ctx, id, strings.TrimSpace(ref))
}

func (s *pedidoService) Resolver(ctx context.Context, id uuid.UUID) (*dto.ResolvePedidoResponse, error) {
	p, itens, err := s.repo.FindWithItens(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNaoEncontrado
		}
		return nil, err
	}
	return &dto.ResolvePedidoResponse{
		PedidoID:   p.ID.String(),
		CatalogoID: p.CatalogoID,
		Itens:      itensToResponse(itens),
	}, nil
}

func (s *pedidoService) Whatsapp(ctx context.Context, id uuid.UUID) (*dto.WhatsappResponse, error) {
	p, itens, err := s.repo.FindWithItens(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNaoEncontrado
		}
		return nil, err
	}
	catalogo, err := s.catalogoRepo.FindByID(ctx, p.CatalogoID)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/p/%s", strings.TrimSuffix(s.domain, "/"), p.ID)
	texto := whatsapp.MontarTexto(catalogo, itens, link)
	phone := ""
	if catalogo.WhatsappPhone != nil {
		phone = *catalogo.WhatsappPhone
	}
	return &dto.WhatsappResponse{
		Texto: texto,
		Link:  whatsapp.MontarLink(phone, texto),
	}, nil
}

func (s *pedidoService) GerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	p, itens, err := s.repo.FindWithItens(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPedidoNaoEncontrado
		}
		return "", err
	}
	catalogo, err := s.catalogoRepo.FindByID(ctx, p.CatalogoID)
	if err != nil {
		return "", err
	}
	return infra.GerarPedidoPDF(p, itens, catalogo, s.pdfPath)
}

func pedidoToResponse(p *model.Pedido, itens []model.PedidoItem) *dto.PedidoResponse {
	return &dto.PedidoResponse{
		ID:             p.ID.String(),
		CatalogoID:     p.CatalogoID,
		ClienteNome:    p.ClienteNome,
		ClienteContato: p.ClienteContato,
		Observacao:     p.Observacao,
		Estado:         p.Estado,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		Itens:          itensToResponse(itens),
	}
}

func itensToResponse(itens []model.PedidoItem) []dto.PedidoItemResponse {
	if itens == nil {
		return nil
	}
	out := make([]dto.PedidoItemResponse, 0, len(itens))
	for _, it := range itens {
		out = append(out, itemToResponse(it))
	}
	return out
}

func itemToResponse(it model.PedidoItem) dto.PedidoItemResponse {
	return dto.PedidoItemResponse{
		Ref:         it.Ref,
		Nome:        it.Nome,
		Pagina:      it.Pagina,
		Qtd:         it.Qtd,
		QtdMultiplo: it.QtdMultiplo,
		Preco:       it.Preco,
	}
}
