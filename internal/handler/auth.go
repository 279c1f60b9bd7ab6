package handler

import (
	"net/http"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login authenticates the catalog operator and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Usuario ou senha invalidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
