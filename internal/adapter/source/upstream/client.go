package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

type Config struct {
	BaseURL      string
	User         string
	Password     string
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client talks to the supplier exchange. Each call is retried a bounded
// number of times with exponential backoff, then surfaced as an
// UpstreamError.
type Client struct {
	http     *retryablehttp.Client
	baseURL  string
	user     string
	password string
	log      logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	rc.Backoff = retryablehttp.DefaultBackoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// Request URLs carry credentials, so the library must not log them.
	rc.Logger = nil
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}

	return &Client{
		http:     rc,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		user:     cfg.User,
		password: cfg.Password,
		log:      log,
	}
}

type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	var resp struct {
		envelope
		Suppliers []domain.Supplier `json:"suppliers"`
	}
	if err := c.get(ctx, "getSuppliers", url.Values{}, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return resp.Suppliers, nil
}

func (c *Client) Methods(ctx context.Context, supplierID string) ([]domain.TravelMethod, error) {
	var resp struct {
		envelope
		Methods []domain.TravelMethod `json:"methods"`
	}
	params := url.Values{"supplierId": {supplierID}}
	if err := c.get(ctx, "getMethodsOfTravel", params, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return resp.Methods, nil
}

// Sailings queries one supplier, or every listed supplier when
// q.SupplierID is empty. A failure for any supplier fails the whole call.
func (c *Client) Sailings(ctx context.Context, q ports.SailingQuery) ([]domain.Sailing, error) {
	if q.SupplierID != "" {
		return c.supplierSailings(ctx, q)
	}

	suppliers, err := c.Suppliers(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]domain.Sailing, len(suppliers))
	g, gctx := errgroup.WithContext(ctx)
	for i, sup := range suppliers {
		sq := q
		sq.SupplierID = sup.SupplierID
		g.Go(func() error {
			sailings, err := c.supplierSailings(gctx, sq)
			if err != nil {
				return err
			}
			results[i] = sailings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Sailing
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (c *Client) supplierSailings(ctx context.Context, q ports.SailingQuery) ([]domain.Sailing, error) {
	var resp struct {
		envelope
		Sailings []domain.Sailing `json:"sailings"`
	}
	params := url.Values{
		"supplierId": {q.SupplierID},
		"departDate": {domain.ExchangeDate(q.Date)},
		"departPort": {q.DepartPort},
		"arrivePort": {q.ArrivePort},
	}
	if err := c.get(ctx, "getSailingTimes", params, &resp, &resp.envelope); err != nil {
		return nil, err
	}
	return resp.Sailings, nil
}

func (c *Client) get(ctx context.Context, op string, params url.Values, out any, env *envelope) error {
	if c.baseURL == "" {
		return domain.UpstreamError{Op: op, Err: fmt.Errorf("exchange base URL is not configured")}
	}

	params.Set("xchangeUser", c.user)
	params.Set("xchangePSW", c.password)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+op+"?"+params.Encode(), nil)
	if err != nil {
		return domain.UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = redact(err)
		c.log.Error("Exchange request failed", "op", op, "error", err)
		return domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("Exchange request", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("Exchange returned error status", "op", op, "status", resp.StatusCode)
		return domain.UpstreamError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = "exchange reported failure"
		}
		return domain.UpstreamError{Op: op, Err: fmt.Errorf("%s", msg)}
	}

	return nil
}

// redact drops the request URL, which carries the exchange credentials,
// from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s exchange request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
