package server

import (
	"errors"
	"math"
	"strings"
	"time"

	"ebay_pricer/internal/domain"
	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/errcodes"
	"ebay_pricer/pkg/failure"
	"ebay_pricer/pkg/lox"
	"ebay_pricer/pkg/rest"
)

// Доменные ошибки несут код, но не транспортный класс. Перед ответом код
// перекладывается в ошибку failure, иначе конверт схлопнет его в
// InternalServerError.
func translateDomainError(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	opts := []failure.Option{
		failure.WithCode(appErr.Code),
		failure.WithDescription(appErr.Message),
	}

	if appErr.Code == errcodes.EbayNotConfigured {
		return failure.NewUnprocessableEntityError(err.Error(), opts...)
	}

	return failure.NewInternalErrorFromError(err, opts...)
}

func newRESTListing(listing entity.Listing) rest.Listing {
	endTime := ""
	if !listing.EndTime.IsZero() {
		endTime = listing.EndTime.Format(time.RFC3339)
	}

	return rest.Listing{
		ID:       listing.ID,
		Title:    listing.Title,
		Price:    listing.Price,
		Quantity: listing.Quantity,
		Image:    listing.Image,
		URL:      listing.URL,
		Format:   listing.Format,
		EndTime:  endTime,
	}
}

func newRESTMatchingEvent(rule entity.CalendarRule) rest.MatchingEvent {
	return rest.MatchingEvent{
		Name:      rule.Name,
		StartDate: rule.StartDate,
		EndDate:   rule.EndDate,
		Tier:      string(rule.Tier),
		Keywords:  rule.Keywords,
	}
}

func newRESTMarketData(market entity.MarketCategory) rest.MarketData {
	return rest.MarketData{
		Category:    market.Category,
		Count:       market.Count,
		SoldCount:   market.SoldCount,
		MinPrice:    market.MinPrice,
		MaxPrice:    market.MaxPrice,
		AvgPrice:    market.AvgPrice,
		MedianPrice: market.MedianPrice,
		SoldAvg:     market.SoldAvg,
		SoldMedian:  market.SoldMedian,
	}
}

func newRESTAssessment(assessment entity.PriceAssessment) rest.PriceAssessment {
	var suggestion *string
	if assessment.Suggestion != "" {
		suggestion = &assessment.Suggestion
	}

	return rest.PriceAssessment{
		Status:       string(assessment.Status),
		MarketMedian: assessment.MarketMedian,
		MarketAvg:    assessment.MarketAvg,
		DiffPercent:  assessment.DiffPercent,
		Suggestion:   suggestion,
		Category:     assessment.Category,
		SampleSize:   assessment.SampleSize,
	}
}

func newRESTAnnotatedListing(listing entity.AnnotatedListing) rest.AnnotatedListing {
	annotated := rest.AnnotatedListing{ //nolint:exhaustruct
		Listing:        newRESTListing(listing.Listing),
		SuggestedPrice: listing.SuggestedPrice,
		MatchingEvents: lox.Map(listing.MatchingEvents, newRESTMatchingEvent),
	}

	if listing.MarketData != nil {
		market := newRESTMarketData(*listing.MarketData)
		annotated.MarketData = &market
	}

	if listing.Assessment != nil {
		assessment := newRESTAssessment(*listing.Assessment)
		annotated.PriceAssessment = &assessment
	}

	return annotated
}

func newRESTUnderpriced(listing entity.UnderpricedListing) rest.UnderpricedListing {
	return rest.UnderpricedListing{
		Listing:        newRESTListing(listing.Listing),
		SuggestedPrice: listing.SuggestedPrice,
		BoostPercent:   listing.BoostPercent,
		MatchingEvents: lox.Map(listing.MatchingEvents, newRESTMatchingEvent),
	}
}

func newRESTAlert(alert entity.Alert) rest.Alert {
	return rest.Alert{
		Type:    string(alert.Type),
		Message: alert.Message,
		Item:    newRESTListing(alert.Item),
	}
}

func newRESTStats(stats entity.InventoryStats) rest.Stats {
	return rest.Stats{
		TotalListings: stats.TotalListings,
		TotalValue:    stats.TotalValue,
		ActiveEvents:  stats.ActiveEvents,
		Underpriced:   stats.Underpriced,
	}
}

func newRESTCalendarEvent(event entity.CalendarEvent) rest.CalendarEvent {
	return rest.CalendarEvent{
		Event:     event.Event,
		Tier:      string(event.Tier),
		Increase:  event.Increase,
		Item:      event.Item,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
	}
}

func newRESTUpcomingDate(event entity.UpcomingEvent) rest.UpcomingDate {
	return rest.UpcomingDate{
		Month: strings.ToUpper(event.StartsAt.Format("Jan")),
		Day:   event.StartsAt.Day(),
		Event: event.Event,
		Tier:  string(event.Tier),
	}
}

func newRESTCategorySummary(category entity.MarketCategory) rest.MarketCategorySummary {
	return rest.MarketCategorySummary{
		Category:    category.Category,
		Count:       category.Count,
		SoldCount:   category.SoldCount,
		AvgPrice:    round2(category.AvgPrice),
		MedianPrice: round2(category.MedianPrice),
		SoldMedian:  round2(category.SoldMedian),
	}
}

func newRESTOverview(overview entity.MarketOverview) rest.MarketOverview {
	return rest.MarketOverview{
		Generated:  overview.Generated,
		TotalItems: overview.TotalItems,
		Categories: lox.Map(overview.Categories, newRESTCategorySummary),
	}
}

// Цены в сводке отдаются с точностью до цента.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
