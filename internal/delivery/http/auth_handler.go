package http

import (
	"encoding/json"
	"net/http"

	"github.com/frontandrew/parklot/internal/delivery/http/middleware"
	"github.com/frontandrew/parklot/internal/pkg/hash"
	"github.com/frontandrew/parklot/internal/pkg/jwt"
	"github.com/frontandrew/parklot/internal/pkg/logger"
)

// AuthHandler обрабатывает аутентификацию оператора.
// Единственный оператор задается конфигурацией: логин и bcrypt-хеш пароля.
type AuthHandler struct {
	tokenService *jwt.TokenService
	login        string
	passwordHash string
	logger       logger.Logger
}

// NewAuthHandler создает новый handler
func NewAuthHandler(tokenService *jwt.TokenService, login, passwordHash string, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		login:        login,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// LoginRequest - запрос на вход оператора
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login аутентифицирует оператора и выдает JWT токен
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Login != h.login || !hash.CheckPassword(h.passwordHash, req.Password) {
		h.logger.Warn("Failed operator login attempt", map[string]interface{}{
			"login":       req.Login,
			"remote_addr": r.RemoteAddr,
		})
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateToken(req.Login)
	if err != nil {
		h.logger.Error("Failed to generate token", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"access_token": token,
			"expires_at":   expiresAt,
		},
	})
}

// GetMe возвращает текущего оператора
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"login": claims.Login,
		},
	})
}
