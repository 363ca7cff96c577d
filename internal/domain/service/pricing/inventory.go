package pricing

import (
	"context"

	"github.com/samber/lo"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/lox"
)

const (
	lowPriceThreshold  = 10.0
	highValueThreshold = 1000.0
	// Надбавка считается значимой, если рекомендованная цена выше текущей
	// более чем на 1% — отсекает шум плавающей точки.
	underpricedTrigger = 1.01
)

// Annotate дополняет лоты рекомендованной ценой, подходящими событиями и,
// когда лот категоризуется, рыночной статистикой с оценкой цены.
// Исходные лоты не изменяются.
func (s *Service) Annotate(ctx context.Context, listings []entity.Listing) []entity.AnnotatedListing {
	active := s.ActiveRules(ctx)

	return lox.Map(listings, func(listing entity.Listing) entity.AnnotatedListing {
		matching := matchingRules(active, listing.Title)

		annotated := entity.AnnotatedListing{ //nolint:exhaustruct
			Listing:        listing,
			SuggestedPrice: boostedPrice(listing.Price, maxBoostPercent(matching)),
			MatchingEvents: matching,
		}

		if market := s.MarketData(ctx, listing.Title); market != nil {
			annotated.MarketData = market

			if market.SoldMedian != 0 {
				annotated.Assessment = assess(listing.Price, market)
			}
		}

		return annotated
	})
}

// InventoryStats считает сводку по инвентарю: количество и суммарную
// стоимость лотов, число активных событий и недооценённых лотов.
func (s *Service) InventoryStats(ctx context.Context, listings []entity.Listing) entity.InventoryStats {
	active := s.ActiveRules(ctx)

	stats := entity.InventoryStats{ //nolint:exhaustruct
		TotalListings: len(listings),
		ActiveEvents:  len(active),
	}

	for _, listing := range listings {
		stats.TotalValue += listing.Price

		matching := matchingRules(active, listing.Title)
		if boostedPrice(listing.Price, maxBoostPercent(matching)) > listing.Price*underpricedTrigger {
			stats.Underpriced++
		}
	}

	return stats
}

// Underpriced возвращает лоты, чья цена заметно ниже рекомендованной.
func (s *Service) Underpriced(ctx context.Context, listings []entity.Listing) []entity.UnderpricedListing {
	active := s.ActiveRules(ctx)

	return lo.FilterMap(listings, func(listing entity.Listing, _ int) (entity.UnderpricedListing, bool) {
		matching := matchingRules(active, listing.Title)
		suggested := boostedPrice(listing.Price, maxBoostPercent(matching))

		if suggested <= listing.Price*underpricedTrigger {
			return entity.UnderpricedListing{}, false
		}

		return entity.UnderpricedListing{
			Listing:        listing,
			SuggestedPrice: suggested,
			BoostPercent:   int((suggested/listing.Price - 1) * 100),
			MatchingEvents: matching,
		}, true
	})
}

// Alerts отбирает лоты с аномальными ценами: сначала все дешёвые, затем
// все дорогие.
func (s *Service) Alerts(listings []entity.Listing) []entity.Alert {
	alerts := make([]entity.Alert, 0)

	for _, listing := range listings {
		if listing.Price < lowPriceThreshold {
			alerts = append(alerts, entity.Alert{
				Type:    entity.AlertLowPrice,
				Message: "Low price: " + truncateTitle(listing.Title),
				Item:    listing,
			})
		}
	}

	for _, listing := range listings {
		if listing.Price > highValueThreshold {
			alerts = append(alerts, entity.Alert{
				Type:    entity.AlertHighValue,
				Message: "High value item: " + truncateTitle(listing.Title),
				Item:    listing,
			})
		}
	}

	return alerts
}

// truncateTitle обрезает заголовок до 40 символов и добавляет многоточие.
func truncateTitle(title string) string {
	const maxLen = 40

	if runes := []rune(title); len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}

	return title + "..."
}
