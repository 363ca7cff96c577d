package entity

import "time"

// CalendarEvent — правило, спроецированное на конкретный год для
// отображения в календаре.
type CalendarEvent struct {
	Event     string
	Tier      Tier
	Increase  int
	Item      string
	StartDate string
	EndDate   string
}

// UpcomingEvent — ближайшее будущее наступление правила.
type UpcomingEvent struct {
	StartsAt time.Time
	Event    string
	Tier     Tier
}
