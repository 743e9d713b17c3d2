package main

import (
	"net/http"

	"github.com/Davazzzz/carparts-request/internal/catalog"
	"github.com/Davazzzz/carparts-request/internal/config"
	"github.com/Davazzzz/carparts-request/internal/handlers"
	"github.com/Davazzzz/carparts-request/internal/i18n"
	"github.com/Davazzzz/carparts-request/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp creates a new application with all routes configured.
func NewApp(requests store.RequestStore, prices *catalog.Catalog, cfg *config.Config) *App {
	app := &App{mux: http.NewServeMux()}

	rh := handlers.NewRequestHandler(requests, cfg.Uploads)
	ah := handlers.NewAdminHandler(requests)
	ch := handlers.NewCatalogHandler(prices)

	// ─────────────────────────────────────────────────────────────────────
	// Customer-facing routes
	// ─────────────────────────────────────────────────────────────────────
	app.mux.HandleFunc("GET /{$}", rh.Index)
	app.mux.HandleFunc("GET /request", rh.Form)
	app.mux.HandleFunc("POST /submit_request", rh.Submit)
	app.mux.HandleFunc("GET /thank_you", rh.ThankYou)

	// Stored part photos
	app.mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// ─────────────────────────────────────────────────────────────────────
	// Parts catalog routes
	// ─────────────────────────────────────────────────────────────────────
	app.mux.HandleFunc("GET /junkyard_parts", ch.List)
	app.mux.HandleFunc("GET /search_junkyard_parts", ch.Search)

	// ─────────────────────────────────────────────────────────────────────
	// Admin panel routes
	// ─────────────────────────────────────────────────────────────────────
	app.mux.HandleFunc("GET /admin", ah.Panel)
	app.mux.HandleFunc("GET /admin/requests", ah.List)
	app.mux.HandleFunc("PUT /admin/request/{id}", ah.Update)
	app.mux.HandleFunc("DELETE /admin/request/{id}", ah.Delete)
	app.mux.HandleFunc("DELETE /admin/delete_all", ah.DeleteAll)

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withLanguage(a.mux).ServeHTTP(w, r)
}

// withLanguage resolves the page language from the lang query parameter, a
// cookie, or the Accept-Language header, in that order, and stores it on the
// request context.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		} else if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		} else {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}

		ctx := i18n.WithLang(r.Context(), lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
