package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/httpx/reply"
	"ebay_pricer/pkg/httpx/req"
	"ebay_pricer/pkg/logx"
	"ebay_pricer/pkg/lox"
	"ebay_pricer/pkg/rest"
)

type marketplace interface {
	ActiveListings(ctx context.Context) ([]entity.Listing, error)
	ReviseItemPrice(ctx context.Context, itemID string, price float64) error
}

type inventoryPricer interface {
	Annotate(ctx context.Context, listings []entity.Listing) []entity.AnnotatedListing
	InventoryStats(ctx context.Context, listings []entity.Listing) entity.InventoryStats
	Underpriced(ctx context.Context, listings []entity.Listing) []entity.UnderpricedListing
	Alerts(listings []entity.Listing) []entity.Alert
}

// ListingsServer обслуживает инвентарь продавца: выдачу лотов с
// аннотациями движка и правку цены на маркетплейсе.
type ListingsServer struct {
	marketplace marketplace
	pricer      inventoryPricer
}

func NewListingsServer(marketplace marketplace, pricer inventoryPricer) ListingsServer {
	return ListingsServer{
		marketplace: marketplace,
		pricer:      pricer,
	}
}

func (s ListingsServer) getListings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	listings, err := s.marketplace.ActiveListings(ctx)
	if err != nil {
		return fmt.Errorf("marketplace.ActiveListings: %w", err)
	}

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		needle := strings.ToLower(search)

		listings = lo.Filter(listings, func(listing entity.Listing, _ int) bool {
			return strings.Contains(strings.ToLower(listing.Title), needle)
		})
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(s.pricer.Annotate(ctx, listings), newRESTAnnotatedListing))

	return nil
}

func (s ListingsServer) getStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	listings, err := s.marketplace.ActiveListings(ctx)
	if err != nil {
		return fmt.Errorf("marketplace.ActiveListings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStats(s.pricer.InventoryStats(ctx, listings)))

	return nil
}

func (s ListingsServer) getUnderpriced(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	listings, err := s.marketplace.ActiveListings(ctx)
	if err != nil {
		return fmt.Errorf("marketplace.ActiveListings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(s.pricer.Underpriced(ctx, listings), newRESTUnderpriced))

	return nil
}

func (s ListingsServer) getAlerts(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	listings, err := s.marketplace.ActiveListings(ctx)
	if err != nil {
		return fmt.Errorf("marketplace.ActiveListings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(s.pricer.Alerts(listings), newRESTAlert))

	return nil
}

func (s ListingsServer) postUpdatePrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpdatePriceRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	// Неудавшаяся правка — штатный исход для клиента: он получает
	// success=false, подробности остаются в логе.
	if err := s.marketplace.ReviseItemPrice(ctx, request.ItemID, request.Price); err != nil {
		logger(ctx).Error("revise item price", "item_id", request.ItemID, logx.Error(err))

		reply.JSON(ctx, w, http.StatusOK, rest.UpdatePriceResponse{Success: false})

		return nil
	}

	logger(ctx).Info("item price revised", "item_id", request.ItemID, "price", request.Price)

	reply.JSON(ctx, w, http.StatusOK, rest.UpdatePriceResponse{Success: true})

	return nil
}
