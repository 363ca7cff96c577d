package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ebay_pricer/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", handler(s.getHealth))

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", handler(s.getListings))
		r.Get("/stats", handler(s.getStats))
		r.Get("/underpriced", handler(s.getUnderpriced))
		r.Get("/alerts", handler(s.getAlerts))
		r.Post("/update-price", handler(s.postUpdatePrice))

		r.Get("/calendar", handler(s.getCalendar))
		r.Get("/upcoming-dates", handler(s.getUpcomingDates))

		r.Get("/market-lookup", handler(s.getMarketLookup))
		r.Get("/market-categories", handler(s.getMarketCategories))
		r.Post("/price-check", handler(s.postPriceCheck))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, translateDomainError(err))
		}
	}
}
