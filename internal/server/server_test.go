package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"ebay_pricer/internal/domain"
	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/internal/domain/service/pricing"
	"ebay_pricer/internal/server"
	"ebay_pricer/pkg/errcodes"
	"ebay_pricer/pkg/rest"
	"ebay_pricer/pkg/tests"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var testNow = time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

type errorEnvelope struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

type fakeMarketplace struct {
	mu        sync.Mutex
	listings  []entity.Listing
	fetchErr  error
	reviseErr error
	revised   map[string]float64
}

func (m *fakeMarketplace) ActiveListings(context.Context) ([]entity.Listing, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	return m.listings, nil
}

func (m *fakeMarketplace) ReviseItemPrice(_ context.Context, itemID string, price float64) error {
	if m.reviseErr != nil {
		return m.reviseErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.revised == nil {
		m.revised = make(map[string]float64)
	}

	m.revised[itemID] = price

	return nil
}

func testListings() []entity.Listing {
	return []entity.Listing{
		{
			ID:       "110001",
			Title:    "KAWS Companion Open Edition Vinyl",
			Price:    100,
			Quantity: 2,
			Image:    "https://i.ebayimg.com/110001.jpg",
			URL:      "https://www.ebay.com/itm/110001",
			Format:   "FixedPriceItem",
			EndTime:  time.Date(2026, time.September, 1, 20, 15, 0, 0, time.UTC),
		},
		{ID: "110002", Title: "Banksy Girl With Balloon Print", Price: 95, Quantity: 1},
		{ID: "110003", Title: "Crystal skull trinket", Price: 5.5, Quantity: 3},
		{
			ID:    "110004",
			Title: "KAWS Companion 4FT Dissected Black Figure by Medicom Toy Japan Limited",
			Price: 1500, Quantity: 1,
		},
	}
}

func writeRules(t *testing.T) string {
	t.Helper()

	rules := []entity.CalendarRule{
		{
			Name:      "Art Basel Week",
			StartDate: "08-01",
			EndDate:   "08-20",
			Tier:      entity.TierMajor,
			Keywords:  []string{"kaws", "companion"},
		},
		{
			Name:      "Halloween",
			StartDate: "10-01",
			EndDate:   "10-31",
			Tier:      entity.TierMinor,
			Keywords:  []string{"skull"},
		},
	}

	data, err := json.Marshal(rules)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pricing_rules.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func writeIndex(t *testing.T) string {
	t.Helper()

	index := entity.MarketIndex{
		Generated:  "2026-08-01T00:00:00",
		TotalItems: 150,
		Categories: map[string]entity.MarketStats{
			pricing.CategoryKAWSCompanion: {
				Count: 40, SoldCount: 15,
				MinPrice: 80, MaxPrice: 600,
				AvgPrice: 260.5, MedianPrice: 240,
				SoldAvg: 220.3, SoldMedian: 200,
			},
			pricing.CategoryBanksyPrint: {
				Count: 25, SoldCount: 10,
				MinPrice: 30, MaxPrice: 500,
				AvgPrice: 120.756, MedianPrice: 95.5,
				SoldAvg: 105.25, SoldMedian: 100,
			},
		},
	}

	data, err := json.Marshal(index)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "master_pricing_index.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func newAPIClient(t *testing.T, market *fakeMarketplace, svc *pricing.Service) tests.APIClient {
	t.Helper()

	srv := server.NewServer(
		server.NewListingsServer(market, svc),
		server.NewCalendarServer(svc),
		server.NewMarketServer(svc),
		"ebay-pricer",
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)

	return tests.NewAPIClient(testServer.URL, testServer.Client())
}

func newTestAPI(t *testing.T, market *fakeMarketplace) tests.APIClient {
	t.Helper()

	svc := pricing.NewService(
		pricing.NewRuleStore(writeRules(t)),
		pricing.NewIndexStore(writeIndex(t)),
	).WithNow(func() time.Time { return testNow })

	return newAPIClient(t, market, svc)
}

func TestHealth(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{})

	var health rest.Health

	resp, err := api.Get(context.Background(), "/health", nil, &health, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("ok", health.Status)
	rq.Equal("ebay-pricer", health.App)
}

func TestGetListings(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{listings: testListings()})

	var listings []rest.AnnotatedListing

	resp, err := api.Get(context.Background(), "/api/listings", nil, &listings, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(listings, 4)

	first := listings[0]
	rq.Equal("110001", first.ID)
	rq.Equal(100.0, first.Price)
	rq.Equal("2026-09-01T20:15:00Z", first.EndTime)

	// Art Basel активен 10 августа: MAJOR даёт +25%.
	rq.Equal(125.0, first.SuggestedPrice)
	rq.Len(first.MatchingEvents, 1)
	rq.Equal("Art Basel Week", first.MatchingEvents[0].Name)

	rq.NotNil(first.MarketData)
	rq.Equal(pricing.CategoryKAWSCompanion, first.MarketData.Category)

	rq.NotNil(first.PriceAssessment)
	rq.Equal("underpriced", first.PriceAssessment.Status)
	rq.Equal(200.0, first.PriceAssessment.MarketMedian)
	rq.Equal(-50.0, first.PriceAssessment.DiffPercent)
	rq.NotNil(first.PriceAssessment.Suggestion)
	rq.Equal("Consider raising to $200", *first.PriceAssessment.Suggestion)

	second := listings[1]
	rq.Equal("110002", second.ID)
	rq.Equal(95.0, second.SuggestedPrice)
	rq.Empty(second.MatchingEvents)
	rq.NotNil(second.PriceAssessment)
	rq.Equal("fair", second.PriceAssessment.Status)
	rq.Nil(second.PriceAssessment.Suggestion)

	// Без категории нет ни статистики, ни оценки.
	third := listings[2]
	rq.Nil(third.MarketData)
	rq.Nil(third.PriceAssessment)
}

func TestGetListingsSearch(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{listings: testListings()})

	var listings []rest.AnnotatedListing

	_, err := api.Get(context.Background(), "/api/listings?search=BANKSY", nil, &listings, nil)
	rq.NoError(err)

	rq.Len(listings, 1)
	rq.Equal("110002", listings[0].ID)
}

func TestGetListingsMarketplaceError(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{
		fetchErr: domain.NewError(errcodes.EbayAPIError, "trading api replied 502"),
	})

	var envelope errorEnvelope

	resp, err := api.Get(context.Background(), "/api/listings", nil, nil, &envelope)
	rq.NoError(err)

	rq.Equal(http.StatusInternalServerError, resp.StatusCode)
	rq.Equal(errcodes.EbayAPIError.String(), envelope.Code)
	rq.Equal("trading api replied 502", envelope.Message)
}

func TestGetStats(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{listings: testListings()})

	var stats rest.Stats

	_, err := api.Get(context.Background(), "/api/stats", nil, &stats, nil)
	rq.NoError(err)

	rq.Equal(4, stats.TotalListings)
	rq.Equal(1700.5, stats.TotalValue)
	rq.Equal(1, stats.ActiveEvents)
	rq.Equal(2, stats.Underpriced)
}

func TestGetUnderpriced(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{listings: testListings()})

	var underpriced []rest.UnderpricedListing

	_, err := api.Get(context.Background(), "/api/underpriced", nil, &underpriced, nil)
	rq.NoError(err)
	rq.Len(underpriced, 2)

	rq.Equal("110001", underpriced[0].ID)
	rq.Equal(125.0, underpriced[0].SuggestedPrice)
	rq.Equal(25, underpriced[0].BoostPercent)

	rq.Equal("110004", underpriced[1].ID)
	rq.Equal(1875.0, underpriced[1].SuggestedPrice)
}

func TestGetAlerts(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{listings: testListings()})

	var alerts []rest.Alert

	_, err := api.Get(context.Background(), "/api/alerts", nil, &alerts, nil)
	rq.NoError(err)
	rq.Len(alerts, 2)

	rq.Equal("low_price", alerts[0].Type)
	rq.Equal("Low price: Crystal skull trinket...", alerts[0].Message)
	rq.Equal("110003", alerts[0].Item.ID)

	rq.Equal("high_value", alerts[1].Type)
	rq.Equal("High value item: KAWS Companion 4FT Dissected Black Figur...", alerts[1].Message)
	rq.Equal("110004", alerts[1].Item.ID)
}

func TestUpdatePrice(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Revise succeeds", func(t *testing.T) {
		market := &fakeMarketplace{}
		api := newTestAPI(t, market)

		var response rest.UpdatePriceResponse

		resp, err := api.Post(ctx, "/api/update-price", nil,
			rest.UpdatePriceRequest{ItemID: "110001", Price: 125.50}, &response, nil)
		rq.NoError(err)

		rq.Equal(http.StatusOK, resp.StatusCode)
		rq.True(response.Success)
		rq.Equal(125.50, market.revised["110001"])
	})

	t.Run("Revise failure is reported, not raised", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{
			reviseErr: domain.NewError(errcodes.EbayNotConfigured, "ebay credentials are not configured"),
		})

		var response rest.UpdatePriceResponse

		resp, err := api.Post(ctx, "/api/update-price", nil,
			rest.UpdatePriceRequest{ItemID: "110001", Price: 125.50}, &response, nil)
		rq.NoError(err)

		rq.Equal(http.StatusOK, resp.StatusCode)
		rq.False(response.Success)
	})

	t.Run("Price is required", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var envelope errorEnvelope

		resp, err := api.PostJSON(ctx, "/api/update-price", nil,
			`{"item_id":"110001"}`, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusBadRequest, resp.StatusCode)
		rq.Equal(errcodes.ValidationError.String(), envelope.Code)
	})

	t.Run("Price must be positive", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var envelope errorEnvelope

		resp, err := api.PostJSON(ctx, "/api/update-price", nil,
			`{"item_id":"110001","price":-5}`, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetCalendar(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Full calendar", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var events []rest.CalendarEvent

		_, err := api.Get(ctx, "/api/calendar", nil, &events, nil)
		rq.NoError(err)
		rq.Len(events, 2)

		rq.Equal("Art Basel Week", events[0].Event)
		rq.Equal("MAJOR", events[0].Tier)
		rq.Equal(25, events[0].Increase)
		rq.Equal("kaws, companion", events[0].Item)
		rq.Equal("2026-08-01", events[0].StartDate)
		rq.Equal("2026-08-20", events[0].EndDate)
	})

	t.Run("Filtered by month and year", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var events []rest.CalendarEvent

		_, err := api.Get(ctx, "/api/calendar?month=10&year=2026", nil, &events, nil)
		rq.NoError(err)

		rq.Len(events, 1)
		rq.Equal("Halloween", events[0].Event)
	})

	t.Run("Month without year keeps full calendar", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var events []rest.CalendarEvent

		_, err := api.Get(ctx, "/api/calendar?month=10", nil, &events, nil)
		rq.NoError(err)

		rq.Len(events, 2)
	})

	t.Run("Month out of range", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var envelope errorEnvelope

		resp, err := api.Get(ctx, "/api/calendar?month=13&year=2026", nil, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusBadRequest, resp.StatusCode)
		rq.Equal(errcodes.InvalidMonth.String(), envelope.Code)
	})
}

func TestGetUpcomingDates(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeMarketplace{})

	var dates []rest.UpcomingDate

	_, err := api.Get(context.Background(), "/api/upcoming-dates", nil, &dates, nil)
	rq.NoError(err)
	rq.Len(dates, 2)

	rq.Equal("AUG", dates[0].Month)
	rq.Equal(1, dates[0].Day)
	rq.Equal("Art Basel Week", dates[0].Event)
	rq.Equal("MAJOR", dates[0].Tier)

	rq.Equal("OCT", dates[1].Month)
	rq.Equal("Halloween", dates[1].Event)
}

func TestMarketLookup(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Category found", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var response rest.MarketLookupResponse

		_, err := api.Get(ctx, "/api/market-lookup?q=kaws+companion+figure", nil, &response, nil)
		rq.NoError(err)

		rq.True(response.Found)
		rq.Equal("kaws companion figure", response.Query)
		rq.Equal(pricing.CategoryKAWSCompanion, response.Category)
		rq.Equal(40, response.Count)
		rq.Equal(200.0, response.SoldMedian)
	})

	t.Run("No matching category", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var response rest.MarketLookupNoData

		_, err := api.Get(ctx, "/api/market-lookup?q=garden+gnome", nil, &response, nil)
		rq.NoError(err)

		rq.False(response.Found)
		rq.Equal("No market data found for this item type", response.Message)
	})

	t.Run("Query required", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var envelope errorEnvelope

		resp, err := api.Get(ctx, "/api/market-lookup", nil, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusBadRequest, resp.StatusCode)
		rq.Equal(errcodes.InvalidQuery.String(), envelope.Code)
		rq.Equal("Missing query parameter", envelope.Message)
	})
}

func TestMarketCategories(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Summary sorted by count", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var overview rest.MarketOverview

		_, err := api.Get(ctx, "/api/market-categories", nil, &overview, nil)
		rq.NoError(err)

		rq.Equal("2026-08-01T00:00:00", overview.Generated)
		rq.Equal(150, overview.TotalItems)
		rq.Len(overview.Categories, 2)

		rq.Equal(pricing.CategoryKAWSCompanion, overview.Categories[0].Category)
		rq.Equal(40, overview.Categories[0].Count)

		rq.Equal(pricing.CategoryBanksyPrint, overview.Categories[1].Category)
		// Цены округляются до цента.
		rq.Equal(120.76, overview.Categories[1].AvgPrice)
	})

	t.Run("Index not loaded", func(t *testing.T) {
		svc := pricing.NewService(
			pricing.NewRuleStore(writeRules(t)),
			pricing.NewIndexStore(filepath.Join(t.TempDir(), "absent.json")),
		).WithNow(func() time.Time { return testNow })

		api := newAPIClient(t, &fakeMarketplace{}, svc)

		var envelope errorEnvelope

		resp, err := api.Get(ctx, "/api/market-categories", nil, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusInternalServerError, resp.StatusCode)
		rq.Equal(errcodes.MarketIndexUnavailable.String(), envelope.Code)
	})
}

func TestPriceCheck(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Assessment returned", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var response rest.PriceCheckResponse

		_, err := api.Post(ctx, "/api/price-check", nil,
			rest.PriceCheckRequest{Title: "KAWS Companion Flayed", Price: 130}, &response, nil)
		rq.NoError(err)

		rq.Equal("KAWS Companion Flayed", response.Title)
		rq.Equal(130.0, response.YourPrice)
		rq.Equal("underpriced", response.Status)
		rq.Equal(200.0, response.MarketMedian)
		rq.Equal(-35.0, response.DiffPercent)
		rq.Equal(15, response.SampleSize)
	})

	t.Run("Unknown category", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var response rest.PriceCheckNoData

		_, err := api.Post(ctx, "/api/price-check", nil,
			rest.PriceCheckRequest{Title: "Garden gnome", Price: 25}, &response, nil)
		rq.NoError(err)

		rq.Equal("unknown", response.Status)
		rq.Equal("No market data available for this item type", response.Message)
	})

	t.Run("Title required", func(t *testing.T) {
		api := newTestAPI(t, &fakeMarketplace{})

		var envelope errorEnvelope

		resp, err := api.PostJSON(ctx, "/api/price-check", nil, `{"price":25}`, nil, &envelope)
		rq.NoError(err)

		rq.Equal(http.StatusBadRequest, resp.StatusCode)
		rq.Equal(errcodes.ValidationError.String(), envelope.Code)
	})
}
