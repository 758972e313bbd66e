package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims inclui os claims padrão mais os campos da aplicação.
// Role e MustChangePassword vão no token para que os middlewares decidam sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	UserID             int64  `json:"user_id"`
	Role               string `json:"cargo"`
	Region             string `json:"regiao,omitempty"`
	MustChangePassword bool   `json:"troca_senha,omitempty"`
}

// Subject dados usados para emitir o token.
type Subject struct {
	UserID             int64
	Role               string
	Region             string
	MustChangePassword bool
}

// Token é o token assinado com o ID (jti) e a expiração, usados na revogação.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Generate emite um token HS256 com jti aleatório.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (*Token, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	id := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", sub.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:             sub.UserID,
		Role:               sub.Role,
		Region:             sub.Region,
		MustChangePassword: sub.MustChangePassword,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("jwt: assinar: %w", err)
	}
	return &Token{Value: signed, ID: id, ExpiresAt: exp}, nil
}

// Parse valida assinatura e expiração e devolve os claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("jwt: token sem user_id")
	}
	return claims, nil
}

// ExpiresAtTime devolve a expiração dos claims (zero se ausente).
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
