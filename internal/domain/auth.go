package domain

import "github.com/golang-jwt/jwt/v5"

// Claims é o payload do token JWT emitido para clientes da API
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}
