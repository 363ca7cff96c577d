package pricing

import (
	"context"
	"time"

	"ebay_pricer/internal/domain/entity"
)

// Service — ценовой движок: сопоставляет лоты с календарными событиями и
// рыночной статистикой и выдаёт ценовые решения. Состояние хранят только
// стора правил и индекса, сам движок stateless.
type Service struct {
	rules *RuleStore
	index *IndexStore
	now   func() time.Time
}

func NewService(rules *RuleStore, index *IndexStore) *Service {
	return &Service{
		rules: rules,
		index: index,
		now:   time.Now,
	}
}

// WithNow подменяет источник времени. Нужен тестам дат.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// ActiveRules возвращает правила, активные сегодня.
func (s *Service) ActiveRules(ctx context.Context) []entity.CalendarRule {
	return activeRules(s.rules.Rules(ctx), s.now().Format(mmddLayout))
}

// MatchingEvents возвращает активные правила, упомянутые в заголовке лота.
func (s *Service) MatchingEvents(ctx context.Context, title string) []entity.CalendarRule {
	return matchingRules(s.ActiveRules(ctx), title)
}

// SuggestedPrice применяет к базовой цене максимальную надбавку из
// подходящих правил. Без подходящих правил цена возвращается как есть.
func (s *Service) SuggestedPrice(ctx context.Context, basePrice float64, title string) float64 {
	return boostedPrice(basePrice, maxBoostPercent(s.MatchingEvents(ctx, title)))
}
