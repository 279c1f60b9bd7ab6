package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Criar opens an order. Clients that already hold an order id may resend it;
// creation is then idempotent and the stored order comes back unchanged.
func (h *PedidosHandler) Criar(c *gin.Context) {
	var req dto.CriarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCatalogoInvalido) {
			c.JSON(http.StatusBadRequest, apierror.New("Catalogo inexistente"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao criar pedido"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) Carregar(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Carregar(c.Request.Context(), id)
	if err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Atualizar(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	var req dto.AtualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrSemCampos) {
			c.JSON(http.StatusBadRequest, apierror.New("Nenhum campo para atualizar"))
			return
		}
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubstituirItens is the cart sync endpoint: the payload replaces the
// order's lines wholesale (last write wins).
func (h *PedidosHandler) SubstituirItens(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	var req dto.SubstituirItensRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SubstituirItens(c.Request.Context(), id, req.Itens); err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OkResponse{OK: true})
}

func (h *PedidosHandler) AdicionarItem(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdicionarItem(c.Request.Context(), id, req)
	if err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) RemoverItem(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	var req dto.RemoverItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RemoverItem(c.Request.Context(), id, req.Ref); err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OkResponse{OK: true})
}

// Whatsapp returns the rendered checkout message and its wa.me link.
func (h *PedidosHandler) Whatsapp(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Whatsapp(c.Request.Context(), id)
	if err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BaixarPDF renders the order quote PDF on demand and streams it back.
func (h *PedidosHandler) BaixarPDF(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	path, err := h.svc.GerarPDF(c.Request.Context(), id)
	if err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Resolver serves the shareable /p/{id} order link: the minimal payload a
// client needs to rehydrate its cart on another device.
func (h *PedidosHandler) Resolver(c *gin.Context) {
	id, ok := parsePedidoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resolver(c.Request.Context(), id)
	if err != nil {
		respondPedidoErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parsePedidoID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de pedido invalido"))
		return uuid.Nil, false
	}
	return id, true
}

func respondPedidoErr(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPedidoNaoEncontrado) {
		c.JSON(http.StatusNotFound, apierror.New("Pedido nao encontrado"))
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.New("Erro ao processar pedido"))
}
