package entity

import "strings"

// Tier — уровень значимости календарного события.
type Tier string

const (
	TierMinor  Tier = "MINOR"
	TierMedium Tier = "MEDIUM"
	TierMajor  Tier = "MAJOR"
	TierPeak   Tier = "PEAK"
)

// BoostPercent возвращает фиксированную надбавку уровня в процентах.
// Неизвестный уровень даёт 0, то есть правило не влияет на цену.
func (t Tier) BoostPercent() int {
	switch t {
	case TierMinor:
		return 5
	case TierMedium:
		return 15
	case TierMajor:
		return 25
	case TierPeak:
		return 35
	default:
		return 0
	}
}

// CalendarRule — календарное правило повышения цены.
//
// StartDate и EndDate хранятся строками "MM-DD" и сравниваются
// лексикографически, поэтому диапазон не может пересекать границу года:
// интервал Dec→Jan при таком сравнении всегда пуст. Это известное
// ограничение формата правил, а не баг.
type CalendarRule struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Tier      Tier     `json:"tier"`
	Keywords  []string `json:"keywords"`
}

// ActiveOn сообщает, активно ли правило в день mmdd (формат "MM-DD").
// Границы диапазона включаются.
func (r CalendarRule) ActiveOn(mmdd string) bool {
	return r.StartDate <= mmdd && mmdd <= r.EndDate
}

// MatchesTitle сообщает, содержит ли заголовок хотя бы одно ключевое
// слово правила. Поиск по подстроке без учёта регистра.
func (r CalendarRule) MatchesTitle(title string) bool {
	titleLower := strings.ToLower(title)

	for _, keyword := range r.Keywords {
		if strings.Contains(titleLower, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
