package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes wires the API surface.
func (s *Server) RegisterRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/reload", s.handleReload)

		r.Get("/branches", s.handleBranches)
		r.Get("/items", s.handleItems)
		r.Get("/trackings", s.handleTrackings)

		r.Post("/checklist/{id}/toggle", s.handleToggle)
		r.Post("/checklist/toggle-all", s.handleToggleAll)

		r.Post("/reports", s.handleSubmit)
		r.Get("/reports/history", s.handleHistory)
		r.Get("/reports/history.pdf", s.handleHistoryPDF)
		r.Get("/reports/export.xlsx", s.handleExportXLSX)

		r.Get("/shipments", s.handleShipments)
		r.Get("/orders", s.handleOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/range-status", s.handleRangeStatus)
			r.Post("/notify", s.handleNotify)
			r.Post("/notify-range", s.handleNotifyRange)
			r.Post("/tracking", s.handleUpdateTracking)
		})
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.AdminTokenHash == "" {
			errorJSON(w, http.StatusServiceUnavailable, "admin endpoints are disabled")
			return
		}
		token := r.Header.Get("X-Admin-Token")
		if token == "" {
			errorJSON(w, http.StatusUnauthorized, "admin token required")
			return
		}
		ok, err := compareAdminToken(token, s.AdminTokenHash)
		if err != nil || !ok {
			errorJSON(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
