package handler

import (
	"net/http"
	"strconv"
	"strings"

	"catalogo/internal/apierror"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// ListarPorPagina serves the products printed on one PDF page. This is the
// hot path behind the catalog viewer, so it reads through the Redis cache.
func (h *ProdutosHandler) ListarPorPagina(c *gin.Context) {
	id, ok := parseCatalogoID(c)
	if !ok {
		return
	}
	pagina, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || pagina < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Pagina invalida"))
		return
	}

	resp, err := h.svc.ListarPorPagina(c.Request.Context(), id, pagina)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos da pagina"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar searches the catalog by ref or name. Empty queries return an empty
// list rather than the whole catalog.
func (h *ProdutosHandler) Buscar(c *gin.Context) {
	id, ok := parseCatalogoID(c)
	if !ok {
		return
	}
	termo := strings.TrimSpace(c.Query("q"))
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("Limite invalido"))
			return
		}
		limit = v
	}

	resp, err := h.svc.Buscar(c.Request.Context(), id, termo, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro na busca de produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
