package httpx

import (
	"context"
	"fmt"
	"net/http"
)

type authenticator interface {
	Authenticate(context.Context) error
	Token() string
}

// HeaderAuthRoundTripper ставит токен в произвольный заголовок (например
// Authorization или X-EBAY-API-IAF-TOKEN) и один раз переавторизуется,
// если апстрим ответил 401.
type HeaderAuthRoundTripper struct {
	next          http.RoundTripper
	authenticator authenticator
	headerName    string
	valuePrefix   string
}

func NewHeaderAuthRoundTripper(
	next http.RoundTripper,
	authenticator authenticator,
	headerName string,
	valuePrefix string,
) HeaderAuthRoundTripper {
	return HeaderAuthRoundTripper{
		next:          next,
		authenticator: authenticator,
		headerName:    headerName,
		valuePrefix:   valuePrefix,
	}
}

func (rt HeaderAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.authenticator.Token() == "" {
		if err := rt.authenticator.Authenticate(req.Context()); err != nil {
			return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
		}
	}

	rt.setAuthHeader(req)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		if err = rt.authenticator.Authenticate(req.Context()); err != nil {
			return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
		}

		// Тело уже прочитано первым запросом, перематываем.
		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("req.GetBody: %w", bodyErr)
			}

			req.Body = body
		}

		rt.setAuthHeader(req)

		return rt.next.RoundTrip(req) //nolint:wrapcheck
	}

	return resp, nil
}

func (rt HeaderAuthRoundTripper) setAuthHeader(req *http.Request) {
	req.Header.Set(rt.headerName, rt.valuePrefix+rt.authenticator.Token())
}
