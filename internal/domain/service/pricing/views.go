package pricing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/lox"
)

const (
	dateLayout        = "2006-01-02"
	maxUpcomingEvents = 10
	calendarKeywords  = 3
)

// CalendarView проецирует правила на текущий год для календаря.
// monthFilter, если задан, оставляет только правила, начинающиеся в этом
// месяце.
func (s *Service) CalendarView(ctx context.Context, monthFilter *time.Month) []entity.CalendarEvent {
	rules := s.rules.Rules(ctx)

	if monthFilter != nil {
		prefix := fmt.Sprintf("%02d", int(*monthFilter))
		rules = lo.Filter(rules, func(rule entity.CalendarRule, _ int) bool {
			return strings.HasPrefix(rule.StartDate, prefix)
		})
	}

	year := s.now().Year()

	return lox.Map(rules, func(rule entity.CalendarRule) entity.CalendarEvent {
		return entity.CalendarEvent{
			Event:     rule.Name,
			Tier:      rule.Tier,
			Increase:  rule.Tier.BoostPercent(),
			Item:      strings.Join(lo.Subset(rule.Keywords, 0, calendarKeywords), ", "),
			StartDate: fmt.Sprintf("%d-%s", year, rule.StartDate),
			EndDate:   fmt.Sprintf("%d-%s", year, rule.EndDate),
		}
	})
}

// UpcomingEvents возвращает ближайшие наступления правил (не больше
// десяти), отсортированные по дате. Правило, чей интервал в этом году уже
// прошёл, переносится на следующий год. Правила с нечитаемыми датами
// пропускаются, не прерывая выборку.
func (s *Service) UpcomingEvents(ctx context.Context) []entity.UpcomingEvent {
	now := s.now()
	upcoming := make([]entity.UpcomingEvent, 0)

	for _, rule := range s.rules.Rules(ctx) {
		startsAt, err := time.Parse(dateLayout, fmt.Sprintf("%d-%s", now.Year(), rule.StartDate))
		if err != nil {
			logger(ctx).Warn("rule start date unparseable", "rule", rule.Name, "start_date", rule.StartDate)
			continue
		}

		endsAt, err := time.Parse(dateLayout, fmt.Sprintf("%d-%s", now.Year(), rule.EndDate))
		if err != nil {
			logger(ctx).Warn("rule end date unparseable", "rule", rule.Name, "end_date", rule.EndDate)
			continue
		}

		if endsAt.Before(now) {
			startsAt, err = time.Parse(dateLayout, fmt.Sprintf("%d-%s", now.Year()+1, rule.StartDate))
			if err != nil {
				continue
			}
		}

		upcoming = append(upcoming, entity.UpcomingEvent{
			StartsAt: startsAt,
			Event:    rule.Name,
			Tier:     rule.Tier,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
	})

	if len(upcoming) > maxUpcomingEvents {
		upcoming = upcoming[:maxUpcomingEvents]
	}

	return upcoming
}

// MarketOverview собирает сводку по всем категориям индекса,
// отсортированную по числу лотов по убыванию. nil — индекс не загружен.
func (s *Service) MarketOverview(ctx context.Context) *entity.MarketOverview {
	index := s.index.Snapshot(ctx)
	if index == nil {
		return nil
	}

	categories := lox.ReverseMap(index.Categories, func(key string, stats entity.MarketStats) entity.MarketCategory {
		return entity.MarketCategory{Category: key, MarketStats: stats}
	})

	// Карта отдаёт категории в случайном порядке, поэтому равные count
	// упорядочиваем по имени, чтобы ответ был детерминированным.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}

		return categories[i].Category < categories[j].Category
	})

	return &entity.MarketOverview{
		Generated:  index.Generated,
		TotalItems: index.TotalItems,
		Categories: categories,
	}
}
