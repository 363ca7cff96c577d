package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/errcodes"
	"ebay_pricer/pkg/failure"
	"ebay_pricer/pkg/httpx/reply"
	"ebay_pricer/pkg/lox"
)

type calendarPricer interface {
	CalendarView(ctx context.Context, monthFilter *time.Month) []entity.CalendarEvent
	UpcomingEvents(ctx context.Context) []entity.UpcomingEvent
}

// CalendarServer обслуживает календарь ценовых событий.
type CalendarServer struct {
	pricer calendarPricer
}

func NewCalendarServer(pricer calendarPricer) CalendarServer {
	return CalendarServer{
		pricer: pricer,
	}
}

func (s CalendarServer) getCalendar(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	monthFilter, err := monthFilterFromQuery(r)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(s.pricer.CalendarView(ctx, monthFilter), newRESTCalendarEvent))

	return nil
}

// Фильтр включается только парой month+year, одиночный параметр
// игнорируется и календарь отдаётся целиком.
func monthFilterFromQuery(r *http.Request) (*time.Month, error) {
	monthParam := r.URL.Query().Get("month")
	yearParam := r.URL.Query().Get("year")

	if monthParam == "" || yearParam == "" {
		return nil, nil //nolint:nilnil // нет фильтра — нет и ошибки
	}

	monthNumber, err := strconv.Atoi(monthParam)
	if err != nil || monthNumber < 1 || monthNumber > 12 {
		return nil, failure.NewInvalidArgumentError(
			"month out of range",
			failure.WithCode(errcodes.InvalidMonth),
			failure.WithDescription("month must be an integer between 1 and 12"),
		)
	}

	if _, err = strconv.Atoi(yearParam); err != nil {
		return nil, failure.NewInvalidArgumentError(
			"year is not a number",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("year must be an integer"),
		)
	}

	month := time.Month(monthNumber)

	return &month, nil
}

func (s CalendarServer) getUpcomingDates(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, lox.Map(s.pricer.UpcomingEvents(ctx), newRESTUpcomingDate))

	return nil
}
