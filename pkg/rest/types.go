// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

type Listing struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	URL      string  `json:"url"`
	Format   string  `json:"format"`
	EndTime  string  `json:"end_time"`
}

// MatchingEvent Краткая форма календарного правила в ответах API
type MatchingEvent struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Tier      string   `json:"tier"`
	Keywords  []string `json:"keywords"`
}

type AnnotatedListing struct {
	Listing
	SuggestedPrice  float64          `json:"suggested_price"`
	MatchingEvents  []MatchingEvent  `json:"matching_events"`
	MarketData      *MarketData      `json:"market_data,omitempty"`
	PriceAssessment *PriceAssessment `json:"price_assessment,omitempty"`
}

type MarketData struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	SoldCount   int     `json:"sold_count"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	SoldAvg     float64 `json:"sold_avg"`
	SoldMedian  float64 `json:"sold_median"`
}

type PriceAssessment struct {
	Status       string  `json:"status"`
	MarketMedian float64 `json:"market_median"`
	MarketAvg    float64 `json:"market_avg"`
	DiffPercent  float64 `json:"diff_percent"`
	Suggestion   *string `json:"suggestion"`
	Category     string  `json:"category"`
	SampleSize   int     `json:"sample_size"`
}

type Stats struct {
	TotalListings int     `json:"total_listings"`
	TotalValue    float64 `json:"total_value"`
	ActiveEvents  int     `json:"active_events"`
	Underpriced   int     `json:"underpriced"`
}

type CalendarEvent struct {
	Event     string `json:"event"`
	Tier      string `json:"tier"`
	Increase  int    `json:"increase"`
	Item      string `json:"item"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type UpcomingDate struct {
	Month string `json:"month"`
	Day   int    `json:"day"`
	Event string `json:"event"`
	Tier  string `json:"tier"`
}

type UnderpricedListing struct {
	Listing
	SuggestedPrice float64         `json:"suggested_price"`
	BoostPercent   int             `json:"boost_percent"`
	MatchingEvents []MatchingEvent `json:"matching_events"`
}

type Alert struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Item    Listing `json:"item"`
}

type UpdatePriceRequest struct {
	ItemID string  `json:"item_id" validate:"required"`
	Price  float64 `json:"price" validate:"required,gt=0"`
}

type UpdatePriceResponse struct {
	Success bool `json:"success"`
}

type MarketLookupResponse struct {
	Query string `json:"query"`
	Found bool   `json:"found"`
	MarketData
}

type MarketLookupNoData struct {
	Query   string `json:"query"`
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

type MarketCategorySummary struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	SoldCount   int     `json:"sold_count"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	SoldMedian  float64 `json:"sold_median"`
}

type MarketOverview struct {
	Generated  string                  `json:"generated"`
	TotalItems int                     `json:"total_items"`
	Categories []MarketCategorySummary `json:"categories"`
}

type PriceCheckRequest struct {
	Title string  `json:"title" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type PriceCheckResponse struct {
	Title     string  `json:"title"`
	YourPrice float64 `json:"your_price"`
	PriceAssessment
}

type PriceCheckNoData struct {
	Title     string  `json:"title"`
	YourPrice float64 `json:"your_price"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
}

type Health struct {
	Status string `json:"status"`
	App    string `json:"app"`
}
