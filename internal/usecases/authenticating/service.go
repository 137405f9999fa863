package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(clientID, clientSecret string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service autentica clientes da API contra as credenciais configuradas
// (client_id + hash bcrypt do segredo) e emite tokens JWT de curta duração.
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{cfg: cfg}
}

// Login valida as credenciais do cliente e retorna um token JWT assinado
func (s *Service) Login(clientID, clientSecret string) (string, error) {
	if clientID == "" || clientSecret == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "client_id e client_secret são obrigatórios")
	}

	if s.cfg.Auth.ClientID == "" || s.cfg.Auth.ClientSecretHash == "" || s.cfg.Auth.JWTSecret == "" {
		return "", NewAuthError(ErrAuthNotConfigured, apiErrors.ErrAuthNotConfigured, "Credenciais de API não configuradas no servidor")
	}

	if clientID != s.cfg.Auth.ClientID {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Cliente desconhecido")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.ClientSecretHash), []byte(clientSecret)); err != nil {
		logrus.WithField("client_id", clientID).Warn("auth: login attempt with wrong secret")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Segredo incorreto")
	}

	token, err := s.generateJWT(clientID)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT(clientID string) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	claims := domain.Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

// ValidateToken verifica assinatura e validade do token e retorna as claims
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
