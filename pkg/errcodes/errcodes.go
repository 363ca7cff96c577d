package errcodes

import "ebay_pricer/pkg/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidItemID       failure.ErrorCode = "InvalidItemID"
	InvalidPrice        failure.ErrorCode = "InvalidPrice"
	InvalidMonth        failure.ErrorCode = "InvalidMonth"
	InvalidQuery        failure.ErrorCode = "InvalidQuery"

	// Коды для модуля eBay
	EbayNotConfigured failure.ErrorCode = "EbayNotConfigured" // Нет учётных данных в окружении
	EbayAPIError      failure.ErrorCode = "EbayAPIError"      // Trading API вернул Failure
	EbayAuthFailed    failure.ErrorCode = "EbayAuthFailed"    // Не смогли обменять refresh token

	// Коды для маркет-индекса
	MarketIndexUnavailable failure.ErrorCode = "MarketIndexUnavailable" // Снапшот не загружен
	CategoryNotFound       failure.ErrorCode = "CategoryNotFound"
)
