package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradebridge/internal/gateway"
)

// Client submits orders to the Binance.US REST API. Credentials are fixed at
// construction and never mutated, so a single Client is safe for concurrent
// use. The injected http.Client's timeout bounds every venue call.
type Client struct {
	host       string
	apiKey     string
	apiSecret  string
	recvWindow time.Duration
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey, apiSecret string, recvWindow time.Duration) *Client {
	if host == "" {
		host = "https://api.binance.us"
	}
	host = strings.TrimRight(host, "/")
	if recvWindow <= 0 {
		recvWindow = 5 * time.Second
	}
	return &Client{
		host:       host,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		recvWindow: recvWindow,
		httpClient: httpClient,
	}
}

// PlaceMarketOrder submits one market order, fire-once: no retry, no local
// rate limiting. Venue rejections and transport failures come back as errors
// with the venue's message intact.
func (c *Client) PlaceMarketOrder(ctx context.Context, symbol, side string, quantity float64) (*gateway.OrderConfirmation, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("binance: client is nil")
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("binance: symbol is required")
	}

	clientOrderID := uuid.NewString()

	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("side", side)
	query.Set("type", "MARKET")
	query.Set("quantity", decimal.NewFromFloat(quantity).String())
	query.Set("newClientOrderId", clientOrderID)
	query.Set("recvWindow", strconv.FormatInt(c.recvWindow.Milliseconds(), 10))
	query.Set("timestamp", strconv.FormatInt(time.Now().UTC().UnixMilli(), 10))

	body, err := c.doSigned(ctx, http.MethodPost, "/api/v3/order", query)
	if err != nil {
		return nil, err
	}
	conf, err := parseOrderConfirmation(body)
	if err != nil {
		return nil, err
	}
	if conf.ClientOrderID == "" {
		conf.ClientOrderID = clientOrderID
	}
	return conf, nil
}

// doSigned appends an HMAC-SHA256 signature of the encoded query string, per
// the venue's SIGNED endpoint rules, and sends the request with the API key
// header. Binance order endpoints take parameters in the query string even on
// POST; the body stays empty.
func (c *Client) doSigned(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	payload := query.Encode()
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	_, _ = mac.Write([]byte(payload))
	payload += "&signature=" + hex.EncodeToString(mac.Sum(nil))

	fullURL := c.host + path + "?" + payload
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("binance: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance: request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: venueMessage(respBody)}
	}
	return respBody, nil
}

// venueMessage extracts the venue's human message from an error body like
// {"code":-1013,"msg":"Invalid quantity."} and falls back to the raw body.
func venueMessage(raw []byte) string {
	var e struct {
		Code int64  `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && strings.TrimSpace(e.Msg) != "" {
		return strings.TrimSpace(e.Msg)
	}
	return strings.TrimSpace(string(raw))
}
