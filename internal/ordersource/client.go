// Package ordersource fetches raw orders from the upstream ERP order-list API.
package ordersource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/config"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
)

// ErrUpstreamFetch is returned for transport failures, non-2xx responses and
// payloads without a "data" key.
var ErrUpstreamFetch = errors.New("upstream order fetch failed")

const maxResponseSize = 64 << 20

// View selects which orders a fetch returns
type View int

const (
	// Gross returns orders of every status
	Gross View = iota
	// Net excludes cancelled and split orders
	Net
)

func (v View) String() string {
	if v == Net {
		return "net"
	}
	return "gross"
}

// Client talks to the order-list endpoint
type Client struct {
	baseURL    string
	token      string
	coID       string
	uid        string
	pageSize   int
	maxPages   int
	httpClient *http.Client
}

// NewClient builds a client from the upstream config section
func NewClient(cfg config.UpstreamConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 999
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		coID:       cfg.CoID,
		uid:        cfg.UID,
		pageSize:   pageSize,
		maxPages:   maxPages,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type listRequest struct {
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	DateQueryType string   `json:"dateQueryType"`
	OrderTypeEnum string   `json:"orderTypeEnum"`
	OrderStatus   []string `json:"orderStatus,omitempty"`
	CoID          string   `json:"coId,omitempty"`
	UID           string   `json:"uid,omitempty"`
	PageNum       int      `json:"pageNum"`
	PageSize      int      `json:"pageSize"`
}

// Fetch returns all orders placed on day for the given view. Pages are followed
// until a short page or the configured page cap.
func (c *Client) Fetch(ctx context.Context, day time.Time, view View) ([]model.RawOrder, error) {
	req := listRequest{
		StartTime:     day.Format("2006-01-02") + " 00:00:00",
		EndTime:       day.Format("2006-01-02") + " 23:59:59",
		DateQueryType: "OrderDate",
		OrderTypeEnum: "ALL",
		CoID:          c.coID,
		UID:           c.uid,
		PageSize:      c.pageSize,
	}
	if view == Net {
		req.OrderStatus = model.NetOrderStatuses
	}

	var orders []model.RawOrder
	for page := 1; page <= c.maxPages; page++ {
		req.PageNum = page
		batch, err := c.fetchPage(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%s view page %d: %w", view, page, err)
		}
		orders = append(orders, batch...)
		if len(batch) < c.pageSize {
			return orders, nil
		}
	}
	// The last allowed page was full, so the day may hold more orders.
	return nil, fmt.Errorf("%s view: %w: page cap %d reached", view, ErrUpstreamFetch, c.maxPages)
}

func (c *Client) fetchPage(ctx context.Context, payload listRequest) ([]model.RawOrder, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ordersource: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ordersource: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUpstreamFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamFetch, resp.StatusCode)
	}

	var envelope map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUpstreamFetch, err)
	}
	data, ok := envelope["data"]
	if !ok {
		return nil, fmt.Errorf("%w: response has no data", ErrUpstreamFetch)
	}

	var orders []model.RawOrder
	if string(data) == "null" {
		return orders, nil
	}
	dec = json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&orders); err != nil {
		return nil, fmt.Errorf("%w: data is not an order list: %v", ErrUpstreamFetch, err)
	}
	return orders, nil
}
