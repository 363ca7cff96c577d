package ebay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"ebay_pricer/internal/domain"
	"ebay_pricer/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultTokenEndpoint = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // не кредсы

	tradingScopes = "https://api.ebay.com/oauth/api_scope https://api.ebay.com/oauth/api_scope/sell.inventory"

	// Токен объявляется протухшим за 5 минут до реального истечения, чтобы
	// запрос не улетел с токеном, который умрёт в полёте.
	tokenExpiryMargin = 300 * time.Second

	defaultExpiresInSeconds = 7200
)

// Credentials — учётные данные приложения eBay. Пустые значения допустимы:
// сервис работает без маркетплейса, отдавая пустой инвентарь.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	DevID        string
}

// Configured сообщает, достаточно ли данных для вызовов Trading API.
// DevID опционален.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenSource выпускает access token по refresh-токену (OAuth2 grant
// refresh_token) и кэширует его до истечения. Потокобезопасен.
type TokenSource struct {
	credentials Credentials
	endpoint    string
	httpClient  *http.Client
	now         func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenSource(credentials Credentials) *TokenSource {
	return &TokenSource{ //nolint:exhaustruct
		credentials: credentials,
		endpoint:    defaultTokenEndpoint,
		httpClient:  http.DefaultClient,
		now:         time.Now,
	}
}

func (s *TokenSource) WithEndpoint(endpoint string) *TokenSource {
	s.endpoint = endpoint
	return s
}

// WithHTTPClient задаёт клиент для запросов к token endpoint. Клиент не
// должен ходить через авторизующий транспорт, иначе получится рекурсия.
func (s *TokenSource) WithHTTPClient(httpClient *http.Client) *TokenSource {
	s.httpClient = httpClient
	return s
}

func (s *TokenSource) WithNow(now func() time.Time) *TokenSource {
	s.now = now
	return s
}

// Token возвращает закэшированный токен или пустую строку, если токена нет
// либо он на грани истечения.
func (s *TokenSource) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || !s.now().Before(s.expiresAt) {
		return ""
	}

	return s.token
}

// Authenticate обменивает refresh-токен на свежий access token.
func (s *TokenSource) Authenticate(ctx context.Context) error {
	if !s.credentials.Configured() {
		return domain.NewError(errcodes.EbayNotConfigured, "ebay credentials are not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {s.credentials.RefreshToken},
		"scope":         {tradingScopes},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.SetBasicAuth(s.credentials.ClientID, s.credentials.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.EbayAuthFailed, "token request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return domain.NewError(
			errcodes.EbayAuthFailed,
			fmt.Sprintf("token endpoint replied %d", resp.StatusCode),
		)
	}

	var token tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return domain.WrapError(err, errcodes.EbayAuthFailed, "malformed token response")
	}

	if token.AccessToken == "" {
		return domain.NewError(errcodes.EbayAuthFailed, "token response has no access_token")
	}

	if token.ExpiresIn == 0 {
		token.ExpiresIn = defaultExpiresInSeconds
	}

	s.token = token.AccessToken
	s.expiresAt = s.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)

	logger(ctx).Debug("ebay access token refreshed", "expires_at", s.expiresAt)

	return nil
}
