package pricing

import (
	"github.com/samber/lo"

	"ebay_pricer/internal/domain/entity"
)

const mmddLayout = "01-02"

// activeRules отбирает правила, действующие в день mmdd (формат "MM-DD").
func activeRules(rules []entity.CalendarRule, mmdd string) []entity.CalendarRule {
	return lo.Filter(rules, func(rule entity.CalendarRule, _ int) bool {
		return rule.ActiveOn(mmdd)
	})
}

// matchingRules отбирает правила, чьи ключевые слова встречаются в заголовке.
func matchingRules(rules []entity.CalendarRule, title string) []entity.CalendarRule {
	return lo.Filter(rules, func(rule entity.CalendarRule, _ int) bool {
		return rule.MatchesTitle(title)
	})
}

// maxBoostPercent — максимальная надбавка среди правил; 0 для пустого
// набора. От порядка правил результат не зависит.
func maxBoostPercent(rules []entity.CalendarRule) int {
	top := lo.MaxBy(rules, func(a, b entity.CalendarRule) bool {
		return a.Tier.BoostPercent() > b.Tier.BoostPercent()
	})

	return top.Tier.BoostPercent()
}

// boostedPrice применяет надбавку к базовой цене. Умножение точное,
// округление — забота уровня представления.
func boostedPrice(basePrice float64, boostPercent int) float64 {
	if boostPercent == 0 {
		return basePrice
	}

	return basePrice * (1 + float64(boostPercent)/100)
}
