package pms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	authPath   = "/v1/auth/token"
	tokenSkew  = 30 * time.Second
	defaultTTL = 1 * time.Hour
	dateLayout = "2006-01-02"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the external PMS over bearer-token REST. It never retries
// failed calls on its own; the only internal re-attempt is a single token
// refresh after a 401. Retry policy belongs to the caller.
type Client struct {
	cfg  Config
	http *http.Client

	// token cache. Refresh runs while mu is held, so concurrent callers
	// share one in-flight refresh instead of stampeding the auth endpoint.
	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Authenticate forces a token refresh and returns the cached token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refreshTokenLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}
	if err := c.refreshTokenLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExp = time.Time{}
	c.mu.Unlock()
}

func (c *Client) refreshTokenLocked(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+authPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: auth: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: auth returned %d", ErrRemoteUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: auth returned %d", ErrRemoteRejected, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("%w: auth: decode: %v", ErrRemoteUnavailable, err)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("%w: auth returned empty token", ErrRemoteRejected)
	}

	ttl := defaultTTL
	if tr.ExpiresIn > 0 {
		ttl = time.Duration(tr.ExpiresIn) * time.Second
	}

	c.token = tr.AccessToken
	c.tokenExp = time.Now().Add(ttl - tokenSkew)
	return nil
}

// get performs one authenticated GET. A 401 invalidates the cached token
// and the request is re-sent once with a fresh one.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	retried := false
	for {
		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		u := strings.TrimRight(c.cfg.BaseURL, "/") + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && !retried {
			resp.Body.Close()
			c.invalidateToken()
			retried = true
			continue
		}

		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: GET %s returned %d", ErrRemoteUnavailable, path, resp.StatusCode)
		case resp.StatusCode >= 400:
			return fmt.Errorf("%w: GET %s returned %d", ErrRemoteRejected, path, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: GET %s: decode: %v", ErrRemoteUnavailable, path, err)
		}
		return nil
	}
}

func (c *Client) ListListings(ctx context.Context) ([]Listing, error) {
	var body struct {
		Listings []Listing `json:"listings"`
	}
	if err := c.get(ctx, "/v1/listings", nil, &body); err != nil {
		return nil, err
	}
	return body.Listings, nil
}

func (c *Client) GetListingCalendar(ctx context.Context, externalID string, from, to time.Time) ([]CalendarDay, error) {
	q := url.Values{}
	q.Set("from", from.Format(dateLayout))
	q.Set("to", to.Format(dateLayout))

	var body struct {
		Calendar []CalendarDay `json:"calendar"`
	}
	if err := c.get(ctx, "/v1/listings/"+url.PathEscape(externalID)+"/calendar", q, &body); err != nil {
		return nil, err
	}
	return body.Calendar, nil
}

// GetListingReservations returns the listing's reservations departing on or
// after from. This is how bookings beyond the sync horizon are discovered.
func (c *Client) GetListingReservations(ctx context.Context, externalID string, from time.Time) ([]Reservation, error) {
	q := url.Values{}
	q.Set("from", from.Format(dateLayout))

	var body struct {
		Reservations []Reservation `json:"reservations"`
	}
	if err := c.get(ctx, "/v1/listings/"+url.PathEscape(externalID)+"/reservations", q, &body); err != nil {
		return nil, err
	}
	return body.Reservations, nil
}

// HealthCheck reports connectivity and the reachable listing count. It does
// not return an error: the failure is part of the report.
func (c *Client) HealthCheck(ctx context.Context) Health {
	listings, err := c.ListListings(ctx)
	if err != nil {
		return Health{Connected: false, Error: err.Error()}
	}
	return Health{Connected: true, ListingsCount: len(listings)}
}
