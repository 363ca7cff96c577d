package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/errcodes"
	"ebay_pricer/pkg/failure"
	"ebay_pricer/pkg/httpx/reply"
	"ebay_pricer/pkg/httpx/req"
	"ebay_pricer/pkg/rest"
)

type marketPricer interface {
	MarketData(ctx context.Context, title string) *entity.MarketCategory
	PriceAssessment(ctx context.Context, currentPrice float64, title string) *entity.PriceAssessment
	MarketOverview(ctx context.Context) *entity.MarketOverview
}

// MarketServer обслуживает рыночную статистику: поиск категории по
// запросу, сводку индекса и оценку цены.
type MarketServer struct {
	pricer marketPricer
}

func NewMarketServer(pricer marketPricer) MarketServer {
	return MarketServer{
		pricer: pricer,
	}
}

func (s MarketServer) getMarketLookup(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		return failure.NewInvalidArgumentError(
			"empty market lookup query",
			failure.WithCode(errcodes.InvalidQuery),
			failure.WithDescription("Missing query parameter"),
		)
	}

	market := s.pricer.MarketData(ctx, query)
	if market == nil {
		reply.JSON(ctx, w, http.StatusOK, rest.MarketLookupNoData{
			Query:   query,
			Found:   false,
			Message: "No market data found for this item type",
		})

		return nil
	}

	reply.JSON(ctx, w, http.StatusOK, rest.MarketLookupResponse{
		Query:      query,
		Found:      true,
		MarketData: newRESTMarketData(*market),
	})

	return nil
}

func (s MarketServer) getMarketCategories(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	overview := s.pricer.MarketOverview(ctx)
	if overview == nil {
		return failure.NewInternalError(
			"market index is not loaded",
			failure.WithCode(errcodes.MarketIndexUnavailable),
			failure.WithDescription("Market index not loaded"),
		)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTOverview(*overview))

	return nil
}

func (s MarketServer) postPriceCheck(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PriceCheckRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	assessment := s.pricer.PriceAssessment(ctx, request.Price, request.Title)
	if assessment == nil {
		reply.JSON(ctx, w, http.StatusOK, rest.PriceCheckNoData{
			Title:     request.Title,
			YourPrice: request.Price,
			Status:    "unknown",
			Message:   "No market data available for this item type",
		})

		return nil
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PriceCheckResponse{
		Title:           request.Title,
		YourPrice:       request.Price,
		PriceAssessment: newRESTAssessment(*assessment),
	})

	return nil
}
