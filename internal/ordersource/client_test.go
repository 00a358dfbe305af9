package ordersource

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/config"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func newClient(url string, pageSize int) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL:  url,
		Token:    "secret-token",
		CoID:     "co-1",
		Timeout:  2 * time.Second,
		PageSize: pageSize,
		MaxPages: 5,
	})
}

func TestFetch_GrossView(t *testing.T) {
	var got listRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":0,"data":[{"oid":"1001","payAmount":12.5},{"oid":"1002"}]}`))
	}))
	defer srv.Close()

	orders, err := newClient(srv.URL, 10).Fetch(t.Context(), day, Gross)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, json.Number("12.5"), orders[0]["payAmount"])

	assert.Equal(t, "2024-01-15 00:00:00", got.StartTime)
	assert.Equal(t, "2024-01-15 23:59:59", got.EndTime)
	assert.Equal(t, "OrderDate", got.DateQueryType)
	assert.Equal(t, "co-1", got.CoID)
	assert.Empty(t, got.OrderStatus)
}

func TestFetch_NetViewSendsStatusFilter(t *testing.T) {
	var got listRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	orders, err := newClient(srv.URL, 10).Fetch(t.Context(), day, Net)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, model.NetOrderStatuses, got.OrderStatus)
	assert.NotContains(t, got.OrderStatus, model.OrderStatusCancelled)
}

func TestFetch_FollowsPages(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		atomic.AddInt32(&calls, 1)
		switch req.PageNum {
		case 1:
			_, _ = w.Write([]byte(`{"data":[{"oid":"1"},{"oid":"2"}]}`))
		default:
			_, _ = w.Write([]byte(`{"data":[{"oid":"3"}]}`))
		}
	}))
	defer srv.Close()

	orders, err := newClient(srv.URL, 2).Fetch(t.Context(), day, Gross)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetch_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"missing data": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":401,"msg":"token expired"}`))
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"data not a list": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":"oops"}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := newClient(srv.URL, 10).Fetch(t.Context(), day, Gross)
			assert.ErrorIs(t, err, ErrUpstreamFetch)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newClient(url, 10).Fetch(t.Context(), day, Gross)
	assert.ErrorIs(t, err, ErrUpstreamFetch)
}

func TestFetch_PageCapWithFullLastPage(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"data":[{"oid":"1"},{"oid":"2"}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, PageSize: 2, MaxPages: 1})
	orders, err := c.Fetch(t.Context(), day, Gross)
	assert.ErrorIs(t, err, ErrUpstreamFetch)
	assert.Nil(t, orders)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_ShortPageAtCapIsComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"oid":"1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, PageSize: 2, MaxPages: 1})
	orders, err := c.Fetch(t.Context(), day, Gross)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
