package naver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchLocal_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "id-1", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret-1", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "강남역 카페", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("display"))
		assert.Equal(t, "1", r.URL.Query().Get("start"))
		assert.Equal(t, "random", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 1, "start": 1, "display": 1,
			"items": []map[string]string{{
				"title":       "<b>스타벅스</b> 강남R점",
				"category":    "카페,디저트>카페",
				"address":     "서울특별시 강남구 역삼동 825",
				"roadAddress": "서울특별시 강남구 강남대로 390",
				"mapx":        "314333",
				"mapy":        "544537",
				"telephone":   "",
			}},
		})
	}))
	defer srv.Close()

	c := NewClient("id-1", "secret-1", WithBaseURL(srv.URL))
	resp, err := c.SearchLocal(context.Background(), "강남역 카페", 5, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	it := resp.Items[0]
	assert.Equal(t, "<b>스타벅스</b> 강남R점", it.Title)
	assert.Equal(t, "서울특별시 강남구 강남대로 390", it.RoadAddress)
	assert.Equal(t, "서울특별시 강남구 역삼동 825", it.Address)
	assert.Equal(t, "314333", it.MapX)
	assert.Equal(t, "544537", it.MapY)
}

func TestSearchLocal_ClampsPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("display"))
		assert.Equal(t, "1", r.URL.Query().Get("start"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	resp, err := NewClient("id", "secret", WithBaseURL(srv.URL)).SearchLocal(context.Background(), "q", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestSearchLocal_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessage":"Authentication failed","errorCode":"024"}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", "bad", WithBaseURL(srv.URL)).SearchLocal(context.Background(), "q", 5, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "024")
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestSearchLocal_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorMessage":"API not permitted","errorCode":"010"}`))
	}))
	defer srv.Close()

	_, err := NewClient("id", "secret", WithBaseURL(srv.URL)).SearchLocal(context.Background(), "q", 5, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSearchLocal_RateLimitedIsNotUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errorMessage":"Rate limit exceeded","errorCode":"012"}`))
	}))
	defer srv.Close()

	_, err := NewClient("id", "secret", WithBaseURL(srv.URL)).SearchLocal(context.Background(), "q", 5, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "012")
}

func TestSearchLocal_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>busy</html>`))
	}))
	defer srv.Close()

	_, err := NewClient("id", "secret", WithBaseURL(srv.URL)).SearchLocal(context.Background(), "q", 5, 1)
	assert.Error(t, err)
}
