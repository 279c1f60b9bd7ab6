package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"catalogo/internal/apierror"
	"catalogo/internal/csvimport"
	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

// Supplier CSVs are small (thousands of rows), but cap uploads anyway.
const maxCSVBytes = 10 << 20

type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

func (h *CatalogosHandler) Criar(c *gin.Context) {
	var req dto.CriarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar catalogos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) ObterPorID(c *gin.Context) {
	id, ok := parseCatalogoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Catalogo nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) Atualizar(c *gin.Context) {
	id, ok := parseCatalogoID(c)
	if !ok {
		return
	}
	var req dto.AtualizarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCatalogoNaoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New("Catalogo nao encontrado"))
		case errors.Is(err, service.ErrSemCampos):
			c.JSON(http.StatusBadRequest, apierror.New("Nenhum campo para atualizar"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportarHandler owns the product bulk import route (it needs the product
// service, not the catalog one).
type ImportarHandler struct{ svc service.ProdutoService }

func NewImportarHandler(svc service.ProdutoService) *ImportarHandler {
	return &ImportarHandler{svc: svc}
}

// Importar receives the supplier CSV as multipart "file" and loads it into
// the catalog. mode=replace wipes the product set first; mode=append upserts
// by ref.
func (h *ImportarHandler) Importar(c *gin.Context) {
	id, ok := parseCatalogoID(c)
	if !ok {
		return
	}

	mode := dto.ImportMode(c.DefaultQuery("mode", string(dto.ImportReplace)))
	if mode != dto.ImportReplace && mode != dto.ImportAppend {
		c.JSON(http.StatusBadRequest, apierror.New("Modo de importacao invalido (use replace ou append)"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Arquivo CSV ausente (campo 'file')"))
		return
	}
	if fileHeader.Size > maxCSVBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("Arquivo CSV excede o limite de 10MB"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Nao foi possivel ler o arquivo"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxCSVBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Nao foi possivel ler o arquivo"))
		return
	}

	rows, ignoradas, err := csvimport.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.Importar(c.Request.Context(), id, rows, mode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCatalogoNaoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New("Catalogo nao encontrado"))
		case errors.Is(err, service.ErrSemLinhasValidas):
			c.JSON(http.StatusBadRequest, apierror.New("Nenhuma linha valida na planilha"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Erro ao importar produtos"))
		}
		return
	}
	// Rows dropped at parse time count as ignored too.
	resp.Ignorados += ignoradas
	c.JSON(http.StatusOK, resp)
}

func parseCatalogoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID de catalogo invalido"))
		return 0, false
	}
	return uint(id), true
}
