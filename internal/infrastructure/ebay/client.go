package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"ebay_pricer/internal/domain"
	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/errcodes"
	"ebay_pricer/pkg/logx"
	"ebay_pricer/pkg/lox"
)

const (
	defaultTradingEndpoint = "https://api.ebay.com/ws/api.dll"

	// HeaderIAFToken — заголовок, в котором Trading API ждёт access token.
	// Проставляется авторизующим транспортом, не самим клиентом.
	HeaderIAFToken = "X-EBAY-API-IAF-TOKEN" //nolint:gosec // имя заголовка, не кредсы

	headerSiteID        = "X-EBAY-API-SITEID"
	headerCompatibility = "X-EBAY-API-COMPATIBILITY-LEVEL"
	headerCallName      = "X-EBAY-API-CALL-NAME"
	headerDevName       = "X-EBAY-API-DEV-NAME"

	siteIDUS           = "0"
	compatibilityLevel = "967"

	callGetMyeBaySelling = "GetMyeBaySelling"
	callReviseItem       = "ReviseItem"

	xmlnsTrading = "urn:ebay:apis:eBLBaseComponents"

	defaultPerPage = 100

	// Trading API щедр на лимиты, но проход по инвентарю не должен его
	// заливать: пять вызовов в секунду хватает любому размеру магазина.
	requestsPerSecond = 5
)

// Client — клиент eBay Trading API: активный инвентарь и правка цены.
//
// Авторизацию клиент не делает сам: httpClient должен быть собран с
// транспортом, который ставит IAF-токен (см. httpx.HeaderAuthRoundTripper).
type Client struct {
	credentials Credentials
	endpoint    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	perPage     int
}

func NewClient(credentials Credentials, httpClient *http.Client) *Client {
	return &Client{
		credentials: credentials,
		endpoint:    defaultTradingEndpoint,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
		perPage:     defaultPerPage,
	}
}

func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

func (c *Client) WithPerPage(perPage int) *Client {
	c.perPage = perPage
	return c
}

type apiError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

type getMyeBaySellingRequest struct {
	XMLName    xml.Name `xml:"GetMyeBaySellingRequest"`
	Xmlns      string   `xml:"xmlns,attr"`
	ActiveList struct {
		Include    bool `xml:"Include"`
		Pagination struct {
			EntriesPerPage int `xml:"EntriesPerPage"`
			PageNumber     int `xml:"PageNumber"`
		} `xml:"Pagination"`
	} `xml:"ActiveList"`
}

type getMyeBaySellingResponse struct {
	XMLName    xml.Name   `xml:"GetMyeBaySellingResponse"`
	Ack        string     `xml:"Ack"`
	Errors     []apiError `xml:"Errors"`
	ActiveList struct {
		ItemArray struct {
			Items []sellingItem `xml:"Item"`
		} `xml:"ItemArray"`
		PaginationResult struct {
			TotalNumberOfPages   int `xml:"TotalNumberOfPages"`
			TotalNumberOfEntries int `xml:"TotalNumberOfEntries"`
		} `xml:"PaginationResult"`
	} `xml:"ActiveList"`
}

type sellingItem struct {
	ItemID        string `xml:"ItemID"`
	Title         string `xml:"Title"`
	Quantity      int    `xml:"Quantity"`
	ListingType   string `xml:"ListingType"`
	SellingStatus struct {
		CurrentPrice struct {
			Value      float64 `xml:",chardata"`
			CurrencyID string  `xml:"currencyID,attr"`
		} `xml:"CurrentPrice"`
	} `xml:"SellingStatus"`
	ListingDetails struct {
		ViewItemURL string    `xml:"ViewItemURL"`
		EndTime     time.Time `xml:"EndTime"`
	} `xml:"ListingDetails"`
	PictureDetails struct {
		GalleryURL string `xml:"GalleryURL"`
	} `xml:"PictureDetails"`
}

type reviseItemRequest struct {
	XMLName xml.Name `xml:"ReviseItemRequest"`
	Xmlns   string   `xml:"xmlns,attr"`
	Item    struct {
		ItemID     string `xml:"ItemID"`
		StartPrice string `xml:"StartPrice"`
	} `xml:"Item"`
}

type reviseItemResponse struct {
	XMLName xml.Name   `xml:"ReviseItemResponse"`
	Ack     string     `xml:"Ack"`
	Errors  []apiError `xml:"Errors"`
}

// ActiveListings забирает весь активный инвентарь, пролистывая страницы.
// Без настроенных кредов возвращает пустой список — деградированный
// режим, а не ошибка.
func (c *Client) ActiveListings(ctx context.Context) ([]entity.Listing, error) {
	if !c.credentials.Configured() {
		logger(ctx).Debug("ebay credentials absent, serving empty inventory")

		return nil, nil
	}

	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	items := first.ActiveList.ItemArray.Items

	for page := 2; page <= first.ActiveList.PaginationResult.TotalNumberOfPages; page++ {
		next, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		items = append(items, next.ActiveList.ItemArray.Items...)
	}

	return lox.Map(items, newListing), nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*getMyeBaySellingResponse, error) {
	request := getMyeBaySellingRequest{Xmlns: xmlnsTrading} //nolint:exhaustruct
	request.ActiveList.Include = true
	request.ActiveList.Pagination.EntriesPerPage = c.perPage
	request.ActiveList.Pagination.PageNumber = page

	var response getMyeBaySellingResponse

	if err := c.call(ctx, callGetMyeBaySelling, request, &response); err != nil {
		return nil, fmt.Errorf("call %s: %w", callGetMyeBaySelling, err)
	}

	if err := checkAck(response.Ack, response.Errors); err != nil {
		return nil, err
	}

	return &response, nil
}

// ReviseItemPrice меняет StartPrice лота. Цена уходит с двумя знаками
// после запятой, как того ждёт Trading API.
func (c *Client) ReviseItemPrice(ctx context.Context, itemID string, price float64) error {
	if !c.credentials.Configured() {
		return domain.NewError(errcodes.EbayNotConfigured, "ebay credentials are not configured")
	}

	request := reviseItemRequest{Xmlns: xmlnsTrading} //nolint:exhaustruct
	request.Item.ItemID = itemID
	request.Item.StartPrice = fmt.Sprintf("%.2f", price)

	var response reviseItemResponse

	if err := c.call(ctx, callReviseItem, request, &response); err != nil {
		return fmt.Errorf("call %s: %w", callReviseItem, err)
	}

	return checkAck(response.Ack, response.Errors)
}

func (c *Client) call(ctx context.Context, callName string, request, response any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter.Wait: %w", err)
	}

	logger(ctx).Debug("trading api call", logx.FieldCallName, callName)

	body, err := xml.Marshal(request)
	if err != nil {
		return fmt.Errorf("xml.Marshal: %w", err)
	}

	body = append([]byte(xml.Header), body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set(headerSiteID, siteIDUS)
	req.Header.Set(headerCompatibility, compatibilityLevel)
	req.Header.Set(headerCallName, callName)
	req.Header.Set("Content-Type", "text/xml")

	if c.credentials.DevID != "" {
		req.Header.Set(headerDevName, c.credentials.DevID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.EbayAPIError, "trading api request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return domain.NewError(
			errcodes.EbayAPIError,
			fmt.Sprintf("trading api replied %d", resp.StatusCode),
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WrapError(err, errcodes.EbayAPIError, "trading api response unreadable")
	}

	if err = xml.Unmarshal(raw, response); err != nil {
		return domain.WrapError(err, errcodes.EbayAPIError, "trading api response malformed")
	}

	return nil
}

// checkAck принимает Success и Warning, остальное — ошибка API с первым
// осмысленным сообщением из ответа.
func checkAck(ack string, errs []apiError) error {
	if ack == "Success" || ack == "Warning" {
		return nil
	}

	message := "trading api returned " + ack

	if len(errs) > 0 && errs[0].LongMessage != "" {
		message = errs[0].LongMessage
	}

	return domain.NewError(errcodes.EbayAPIError, message)
}

func newListing(item sellingItem) entity.Listing {
	return entity.Listing{
		ID:       item.ItemID,
		Title:    item.Title,
		Price:    item.SellingStatus.CurrentPrice.Value,
		Quantity: item.Quantity,
		Image:    item.PictureDetails.GalleryURL,
		URL:      item.ListingDetails.ViewItemURL,
		Format:   item.ListingType,
		EndTime:  item.ListingDetails.EndTime,
	}
}
