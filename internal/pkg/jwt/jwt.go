package jwt

import (
	"fmt"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims содержит payload токена оператора
type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// TokenService управляет созданием и валидацией JWT токенов оператора
type TokenService struct {
	secretKey    string
	accessExpiry time.Duration
}

// NewTokenService создает новый сервис для работы с токенами
func NewTokenService(secretKey string, accessExpiry time.Duration) *TokenService {
	return &TokenService{
		secretKey:    secretKey,
		accessExpiry: accessExpiry,
	}
}

// GenerateToken генерирует токен оператора
func (ts *TokenService) GenerateToken(login string) (string, time.Time, error) {
	expiresAt := time.Now().Add(ts.accessExpiry)

	claims := &Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "parklot-system",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken валидирует токен и возвращает claims
func (ts *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	// Проверяем срок действия
	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}
