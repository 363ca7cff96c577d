package server

import (
	"net/http"

	"ebay_pricer/pkg/httpx/reply"
	"ebay_pricer/pkg/rest"
)

// Server объединяет предметные HTTP-серверы: инвентарь, календарь
// ценовых событий и рыночную статистику.
type Server struct {
	ListingsServer
	CalendarServer
	MarketServer

	appName string
}

func NewServer(
	listingsServer ListingsServer,
	calendarServer CalendarServer,
	marketServer MarketServer,
	appName string,
) Server {
	return Server{
		ListingsServer: listingsServer,
		CalendarServer: calendarServer,
		MarketServer:   marketServer,
		appName:        appName,
	}
}

func (s Server) getHealth(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Health{Status: "ok", App: s.appName})

	return nil
}
