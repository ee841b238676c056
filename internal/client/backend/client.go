// Package backend is the HTTP client for the remote business API: orders,
// closings, sales aggregates, the pricing policy and the product catalog.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pos-terminal/internal/domain"

	"github.com/shopspring/decimal"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
}

func New(baseURL, appID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		appID:      appID,
	}
}

// CreateOrder submits a finalized order. The order ID travels as an
// idempotency key so a retried submission cannot be double-counted.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) error {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/orders", map[string]string{"X-Idempotency-Key": order.ID}, order, &out)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

type salesQuery struct {
	SellerID string    `json:"sellerId"`
	BranchID string    `json:"branchId"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
}

// FetchSales asks the order service to aggregate sales between the two
// boundaries. The response is used as-is; this client never recomputes
// or corrects the buckets.
func (c *Client) FetchSales(ctx context.Context, sellerID, branchID string, start, end time.Time) (domain.SalesSummary, error) {
	var out struct {
		TotalsByMethod map[string]decimal.Decimal `json:"totalsByMethod"`
		TotalsBySeller map[string]decimal.Decimal `json:"totalsBySeller"`
		TotalAmount    decimal.Decimal            `json:"totalAmount"`
		SaleCount      int                        `json:"saleCount"`
	}
	q := salesQuery{SellerID: sellerID, BranchID: branchID, StartAt: start, EndAt: end}
	if err := c.do(ctx, http.MethodPost, "/api/orders/sales", nil, q, &out); err != nil {
		return domain.SalesSummary{}, fmt.Errorf("fetch sales: %w", err)
	}

	summary := domain.SalesSummary{
		TotalsByMethod: make(map[domain.PaymentMethod]decimal.Decimal, len(out.TotalsByMethod)),
		TotalsBySeller: out.TotalsBySeller,
		TotalAmount:    out.TotalAmount,
		SaleCount:      out.SaleCount,
	}
	for method, amount := range out.TotalsByMethod {
		summary.TotalsByMethod[domain.PaymentMethod(method)] = amount
	}
	return summary, nil
}

// CreateClosing registers a closing with the backend.
func (c *Client) CreateClosing(ctx context.Context, rec domain.ClosingRecord) error {
	if err := c.do(ctx, http.MethodPost, "/api/closings", nil, rec, nil); err != nil {
		return fmt.Errorf("create closing: %w", err)
	}
	return nil
}

// LastClosing returns the seller's most recent closing, or nil when none
// exists.
func (c *Client) LastClosing(ctx context.Context, sellerID string) (*domain.ClosingRecord, error) {
	path := "/api/closings?last=true&sellerId=" + url.QueryEscape(sellerID)
	var rec *domain.ClosingRecord
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("last closing: %w", err)
	}
	return rec, nil
}

// FetchPolicy retrieves the business pricing configuration.
func (c *Client) FetchPolicy(ctx context.Context, businessID string) (domain.PricingPolicy, error) {
	var policy domain.PricingPolicy
	path := "/api/business/" + url.PathEscape(businessID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &policy); err != nil {
		return domain.PricingPolicy{}, fmt.Errorf("fetch policy: %w", err)
	}
	return policy, nil
}

// ListProducts retrieves the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.appID != "" {
		req.Header.Set("X-App-ID", c.appID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
