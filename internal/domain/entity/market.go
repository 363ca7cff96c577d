package entity

// MarketStats — агрегированная статистика цен по одной категории.
// Считается внешним процессом, здесь только читается.
type MarketStats struct {
	Count       int     `json:"count"`
	SoldCount   int     `json:"sold_count"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	SoldAvg     float64 `json:"sold_avg"`
	SoldMedian  float64 `json:"sold_median"`
}

// MarketIndex — снапшот рыночного индекса целиком.
type MarketIndex struct {
	Generated  string                 `json:"generated"`
	TotalItems int                    `json:"total_items"`
	Categories map[string]MarketStats `json:"categories"`
}

// MarketCategory — статистика категории вместе с её ключом.
type MarketCategory struct {
	Category string
	MarketStats
}

// MarketOverview — сводка по всем категориям индекса.
type MarketOverview struct {
	Generated  string
	TotalItems int
	Categories []MarketCategory
}

type PriceStatus string

const (
	PriceUnderpriced PriceStatus = "underpriced"
	PriceOverpriced  PriceStatus = "overpriced"
	PriceFair        PriceStatus = "fair"
)

// PriceAssessment — вердикт движка о текущей цене лота относительно рынка.
type PriceAssessment struct {
	Status       PriceStatus
	MarketMedian float64
	MarketAvg    float64
	DiffPercent  float64
	Suggestion   string // пустая строка — рекомендации нет
	Category     string
	SampleSize   int
}
