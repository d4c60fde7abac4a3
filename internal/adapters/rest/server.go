package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	core_port "github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	Mode               string
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter wires every route. It is separate from NewServer so tests can drive it
// through httptest.
func NewRouter(
	cfg ServerConfig,
	properties *PropertyHandler,
	enquiries *EnquiryHandler,
	admin *AdminHandler,
	validateUC usecases_port.ValidateTokenUseCase,
	health HealthCheck,
	baseLogger core_port.LoggerPort,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "mode": cfg.Mode}
		if health != nil {
			if err := health(r.Context()); err != nil {
				status["status"] = "degraded"
				status["error"] = err.Error()
				RespondWithJSON(w, http.StatusServiceUnavailable, status)
				return
			}
		}
		RespondWithJSON(w, http.StatusOK, status)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/properties", properties.FindProperties)
		r.Get("/properties/featured", properties.GetFeatured)
		r.Get("/properties/{slug}", properties.GetPropertyDetails)

		r.Post("/enquiries", enquiries.SubmitEnquiry)
		r.Post("/contact", enquiries.SubmitContact)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", admin.LoginPage)
		r.Post("/login", admin.Login)
		r.Post("/logout", admin.Logout)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(validateUC))

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			})
			r.Get("/dashboard", admin.Dashboard)

			r.Get("/properties", admin.ListProperties)
			r.Post("/properties", admin.CreateProperty)
			r.Get("/properties/{id}", admin.GetProperty)
			r.Put("/properties/{id}", admin.UpdateProperty)
			r.Delete("/properties/{id}", admin.DeleteProperty)

			r.Get("/leads", admin.ListLeads)
			r.Patch("/leads/{id}/status", admin.UpdateLeadStatus)
		})
	})

	return r
}

func NewServer(port string, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
