package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "test-key"
	testSecret = "test-secret"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := &http.Client{Timeout: 2 * time.Second}
	return NewClient(httpClient, srv.URL, testKey, testSecret, 5*time.Second), srv
}

func TestPlaceMarketOrder_RequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-MBX-APIKEY")
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"symbol":"BTCUSD","orderId":77,"clientOrderId":"abc","status":"FILLED","executedQty":"0.01000000","transactTime":1700000000000}`))
	})

	conf, err := client.PlaceMarketOrder(context.Background(), "BTCUSD", "BUY", 0.01)
	require.NoError(t, err)

	assert.Equal(t, "/api/v3/order", gotPath)
	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, "BTCUSD", gotQuery.Get("symbol"))
	assert.Equal(t, "BUY", gotQuery.Get("side"))
	assert.Equal(t, "MARKET", gotQuery.Get("type"))
	assert.Equal(t, "0.01", gotQuery.Get("quantity"))
	assert.NotEmpty(t, gotQuery.Get("newClientOrderId"))
	assert.NotEmpty(t, gotQuery.Get("timestamp"))

	assert.Equal(t, "BTCUSD", conf.Symbol)
	assert.Equal(t, "77", conf.OrderID)
	assert.Equal(t, "abc", conf.ClientOrderID)
	assert.Equal(t, "FILLED", conf.VenueStatus)
	assert.Equal(t, 0.01, conf.ExecutedQty)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), conf.TransactTime)
}

func TestPlaceMarketOrder_SignatureCoversQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sig := q.Get("signature")
		require.NotEmpty(t, sig)

		q.Del("signature")
		mac := hmac.New(sha256.New, []byte(testSecret))
		mac.Write([]byte(q.Encode()))
		want := hex.EncodeToString(mac.Sum(nil))
		assert.Equal(t, want, sig)

		w.Write([]byte(`{"symbol":"BTCUSD","orderId":1,"status":"FILLED"}`))
	})

	_, err := client.PlaceMarketOrder(context.Background(), "BTCUSD", "SELL", 1.5)
	require.NoError(t, err)
}

func TestPlaceMarketOrder_VenueRejectionPassthrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1013,"msg":"Invalid quantity."}`))
	})

	_, err := client.PlaceMarketOrder(context.Background(), "BTCUSD", "BUY", 0)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "Invalid quantity.")
}

func TestPlaceMarketOrder_TimeoutSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	httpClient := &http.Client{Timeout: 20 * time.Millisecond}
	client := NewClient(httpClient, srv.URL, testKey, testSecret, 5*time.Second)

	_, err := client.PlaceMarketOrder(context.Background(), "BTCUSD", "BUY", 1)
	require.Error(t, err)
}

func TestPlaceMarketOrder_QuantitySerializationAvoidsExponent(t *testing.T) {
	var gotQty string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQty = r.URL.Query().Get("quantity")
		w.Write([]byte(`{"symbol":"SHIBUSD","orderId":2,"status":"FILLED"}`))
	})

	_, err := client.PlaceMarketOrder(context.Background(), "SHIBUSD", "BUY", 0.0000001)
	require.NoError(t, err)
	assert.Equal(t, "0.0000001", gotQty)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(&http.Client{}, "", testKey, testSecret, 0)
	assert.Equal(t, "https://api.binance.us", client.host)
	assert.Equal(t, 5*time.Second, client.recvWindow)
}
