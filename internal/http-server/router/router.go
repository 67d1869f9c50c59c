package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/studentnewspaper/imagemage/internal/config"
	"github.com/studentnewspaper/imagemage/internal/http-server/handler/image"
	"github.com/studentnewspaper/imagemage/internal/http-server/middleware"
)

type Handler struct {
	ImageHandler *image.ImageHandler
}

func SetupRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"https://studentnewspaper.org",
			"https://*.studentnewspaper.org",
			"http://localhost:3000",
			"https://localhost:3000",
		},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))

	if cfg.IsProduction() {
		r.Use(middleware.SignatureVerification(cfg.Secret))
	}

	// Wildcard routes so nested paths work and traversal attempts reach the
	// resolver instead of falling through to a 404.
	r.Get("/image/*", h.ImageHandler.GetImage)
	r.Get("/preview/*", h.ImageHandler.GetPreview)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
