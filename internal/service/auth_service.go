package service

import (
	"errors"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrCredenciaisInvalidas = errors.New("usuario ou senha invalidos")

// AuthService authenticates the single operator account configured via env
// (ADMIN_USER / ADMIN_PASSWORD_HASH) and issues the JWT that guards the
// admin routes. Buyers never authenticate.
type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		return nil, ErrCredenciaisInvalidas
	}
	if req.Username != s.cfg.AdminUser {
		return nil, ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"sub": req.Username,
		"rol": "operador",
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}
