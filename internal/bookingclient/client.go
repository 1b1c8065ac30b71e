package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
)

// Messages shown to the guest after a submission attempt.
const (
	DefaultSuccessMessage = "Booking request sent successfully."
	FallbackMessage       = "Your request was saved locally, but we could not reach the booking service. Please contact the hotel directly."
)

// Client posts booking requests to the booking API.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a client for the API at baseURL, e.g. http://localhost:4000.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type forwardedForKey struct{}

// WithForwardedFor returns a context whose requests carry ip in
// X-Forwarded-For, so the API throttles the visitor rather than the caller.
func WithForwardedFor(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, forwardedForKey{}, ip)
}

// Result is what the guest sees after submitting.
type Result struct {
	// Message is the server's message, DefaultSuccessMessage, or FallbackMessage.
	Message string
	// Delivered reports whether the API accepted the request.
	Delivered bool
	// Err is the transport or API failure behind a fallback message.
	Err error
}

// submitBody is the wire payload: the form fields plus the summary's quote.
type submitBody struct {
	Form
	Nights        int `json:"nights"`
	PricePerNight int `json:"pricePerNight"`
	Total         int `json:"total"`
}

type messageBody struct {
	Message string `json:"message"`
}

// Submit posts the form with its summary. It never returns an error: any
// failure, including a non-2xx answer, produces the fallback message with
// Err set. There is no retry.
func (c *Client) Submit(ctx context.Context, f Form, s Summary) Result {
	payload, err := json.Marshal(submitBody{
		Form:          f,
		Nights:        s.Nights,
		PricePerNight: s.PricePerNight,
		Total:         s.Total,
	})
	if err != nil {
		return fallback(fmt.Errorf("bookingclient.Client.Submit: encode: %w", err))
	}

	var body messageBody
	status, err := c.do(ctx, http.MethodPost, "/api/bookings", payload, &body)
	if err != nil {
		return fallback(fmt.Errorf("bookingclient.Client.Submit: %w", err))
	}
	if status < 200 || status > 299 {
		return fallback(&StatusError{Code: status, Message: body.Message})
	}

	msg := body.Message
	if msg == "" {
		msg = DefaultSuccessMessage
	}
	return Result{Message: msg, Delivered: true}
}

func fallback(err error) Result {
	return Result{Message: FallbackMessage, Err: err}
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api: status %d", e.Code)
	}
	return fmt.Sprintf("booking api: status %d: %s", e.Code, e.Message)
}

// Rates fetches the API's rate table.
func (c *Client) Rates(ctx context.Context) (catalog.RateTable, error) {
	var rates catalog.RateTable
	if err := c.get(ctx, "/api/rates", &rates); err != nil {
		return nil, fmt.Errorf("bookingclient.Client.Rates: %w", err)
	}
	return rates, nil
}

// Rooms fetches the room list.
func (c *Client) Rooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.get(ctx, "/api/rooms", &rooms); err != nil {
		return nil, fmt.Errorf("bookingclient.Client.Rooms: %w", err)
	}
	return rooms, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	var errBody messageBody
	raw := json.RawMessage{}
	status, err := c.do(ctx, http.MethodGet, path, nil, &raw)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		_ = json.Unmarshal(raw, &errBody)
		return &StatusError{Code: status, Message: errBody.Message}
	}
	return json.Unmarshal(raw, out)
}

// do sends one request and decodes a JSON response body into out when there
// is one. A body that is not JSON is ignored.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ip, _ := ctx.Value(forwardedForKey{}).(string); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			var syntaxErr *json.SyntaxError
			if !errors.As(err, &syntaxErr) {
				return resp.StatusCode, err
			}
		}
	}
	return resp.StatusCode, nil
}
