package http

import (
	"net/http"

	"github.com/frontandrew/parklot/internal/delivery/http/middleware"
	"github.com/frontandrew/parklot/internal/pkg/jwt"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	parkingHandler *ParkingHandler
	lotHandler     *LotHandler
	policyHandler  *PolicyHandler
	authHandler    *AuthHandler
	tokenService   *jwt.TokenService
	logger         logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	parkingHandler *ParkingHandler,
	lotHandler *LotHandler,
	policyHandler *PolicyHandler,
	authHandler *AuthHandler,
	tokenService *jwt.TokenService,
	logger logger.Logger,
) *Router {
	return &Router{
		parkingHandler: parkingHandler,
		lotHandler:     lotHandler,
		policyHandler:  policyHandler,
		authHandler:    authHandler,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))

	// Служебные endpoints (публичные)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (шлагбаумы и терминалы оплаты работают без токена)
		r.Post("/auth/login", rt.authHandler.Login)

		r.Route("/parking", func(r chi.Router) {
			r.Post("/enter", rt.parkingHandler.Enter)
			r.Get("/active/{plate}", rt.parkingHandler.GetActive)
			r.Get("/summary/{plate}", rt.parkingHandler.GetSummary)
			r.Post("/exit", rt.parkingHandler.Exit)
		})

		r.Route("/lot", func(r chi.Router) {
			r.Get("/", rt.lotHandler.GetStatus)
			r.Get("/available", rt.lotHandler.GetAvailable)
		})

		r.Get("/fines/{plate}", rt.policyHandler.GetUnpaidFines)

		// Protected routes (операторские)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			r.Get("/auth/me", rt.authHandler.GetMe)

			r.Route("/policy", func(r chi.Router) {
				r.Get("/", rt.policyHandler.GetPolicy)
				r.Put("/", rt.policyHandler.SwitchPolicy)
				r.Post("/evaluate", rt.policyHandler.EvaluateLot)

				// Ручное управление штрафами
				r.Post("/fines", rt.policyHandler.CreateFine)
				r.Delete("/fines/{id}", rt.policyHandler.DeleteFine)
			})
		})
	})

	return r
}
