package entity

import "time"

// Listing — активный лот продавца, как его отдаёт маркетплейс.
type Listing struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Image    string    `json:"image"`
	URL      string    `json:"url"`
	Format   string    `json:"format"`
	EndTime  time.Time `json:"end_time"`
}

// AnnotatedListing — лот, дополненный решениями ценового движка.
// Исходная цена лота не меняется, движок только аннотирует копию.
type AnnotatedListing struct {
	Listing
	SuggestedPrice float64
	MatchingEvents []CalendarRule
	MarketData     *MarketCategory
	Assessment     *PriceAssessment
}

// UnderpricedListing — лот, чья текущая цена заметно ниже рекомендованной.
type UnderpricedListing struct {
	Listing
	SuggestedPrice float64
	BoostPercent   int
	MatchingEvents []CalendarRule
}

type AlertType string

const (
	AlertLowPrice  AlertType = "low_price"
	AlertHighValue AlertType = "high_value"
)

type Alert struct {
	Type    AlertType
	Message string
	Item    Listing
}

type InventoryStats struct {
	TotalListings int
	TotalValue    float64
	ActiveEvents  int
	Underpriced   int
}
