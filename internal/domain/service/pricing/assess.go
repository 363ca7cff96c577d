package pricing

import (
	"context"
	"fmt"
	"math"

	"ebay_pricer/internal/domain/entity"
)

const (
	// Пороги оценки относительно медианы продаж.
	underpricedRatio = 0.7
	overpricedRatio  = 1.5
)

// MarketData возвращает статистику категории, к которой относится
// заголовок, или nil: заголовок не категоризуется, индекс не загружен
// либо категории нет в снапшоте. Всё это штатные исходы, не ошибки.
func (s *Service) MarketData(ctx context.Context, title string) *entity.MarketCategory {
	index := s.index.Snapshot(ctx)
	if index == nil {
		return nil
	}

	category, ok := CategorizeTitle(title)
	if !ok {
		return nil
	}

	stats, ok := index.Categories[category]
	if !ok {
		return nil
	}

	return &entity.MarketCategory{Category: category, MarketStats: stats}
}

// PriceAssessment сравнивает текущую цену лота с медианой продаж его
// категории. nil — оценка невозможна: нет категории либо нет продаж.
func (s *Service) PriceAssessment(ctx context.Context, currentPrice float64, title string) *entity.PriceAssessment {
	market := s.MarketData(ctx, title)
	if market == nil || market.SoldMedian == 0 {
		return nil
	}

	return assess(currentPrice, market)
}

func assess(currentPrice float64, market *entity.MarketCategory) *entity.PriceAssessment {
	soldMedian := market.SoldMedian
	diffPercent := (currentPrice - soldMedian) / soldMedian * 100

	assessment := entity.PriceAssessment{ //nolint:exhaustruct
		Status:       entity.PriceFair,
		MarketMedian: soldMedian,
		MarketAvg:    market.SoldAvg,
		DiffPercent:  round1(diffPercent),
		Category:     market.Category,
		SampleSize:   market.SoldCount,
	}

	switch {
	case currentPrice < soldMedian*underpricedRatio:
		assessment.Status = entity.PriceUnderpriced
		assessment.Suggestion = fmt.Sprintf("Consider raising to $%.0f", soldMedian)
	case currentPrice > soldMedian*overpricedRatio:
		assessment.Status = entity.PriceOverpriced
		assessment.Suggestion = fmt.Sprintf("Market median is $%.0f", soldMedian)
	}

	return &assessment
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
