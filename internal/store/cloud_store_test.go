package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudStore(handler http.HandlerFunc, opts ...CloudOption) (*CloudStore, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cs := NewCloudStore(srv.URL, "test-api-key", opts...)
	return cs, srv
}

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestCloudStore_Export(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		jsonResponse(w, 200, map[string]any{
			"data": []map[string]any{
				{
					"uuid":        "a1b2c3d4-0000-0000-0000-000000000001",
					"id":          1,
					"description": "Write report",
					"status":      "pending",
					"tags":        []string{"focus"},
					"sortOrder":   2.5,
				},
				{
					"uuid":        "a1b2c3d4-0000-0000-0000-000000000002",
					"id":          2,
					"description": "Call bank",
					"status":      "pending",
				},
			},
		})
	})
	defer srv.Close()

	items, err := cs.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Write report", items[0].Description)
	assert.True(t, items[0].HasTag("focus"))
	v, ok := items[0].Field("sortOrder")
	require.True(t, ok)
	assert.Equal(t, json.Number("2.5"), v)
	assert.False(t, items[1].HasField("sortOrder"))
}

func TestCloudStore_Export_APIError(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 401, map[string]any{
			"error": map[string]any{"code": "unauthorized", "message": "bad key"},
		})
	})
	defer srv.Close()

	_, err := cs.Export(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "bad key")
}

func TestCloudStore_Export_BadBody(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("not json"))
	})
	defer srv.Close()

	_, err := cs.Export(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCloudStore_SetField(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/items/a1b2c3d4-0000-0000-0000-000000000001", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Fields map[string]float64 `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]float64{"sortOrder": -1}, body.Fields)

		w.WriteHeader(204)
	})
	defer srv.Close()

	err := cs.SetField(context.Background(), "a1b2c3d4-0000-0000-0000-000000000001", "sortOrder", -1)
	assert.NoError(t, err)
}

func TestCloudStore_ClearField(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/items/a1b2c3d4-0000-0000-0000-000000000001/fields/sortOrder", r.URL.Path)
		jsonResponse(w, 200, map[string]any{"data": nil})
	})
	defer srv.Close()

	err := cs.ClearField(context.Background(), "a1b2c3d4-0000-0000-0000-000000000001", "sortOrder")
	assert.NoError(t, err)
}

func TestCloudStore_SetField_Rejected(t *testing.T) {
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 404, map[string]any{
			"error": map[string]any{"code": "not_found", "message": "no such item"},
		})
	})
	defer srv.Close()

	err := cs.SetField(context.Background(), "missing", "sortOrder", 0)
	require.ErrorIs(t, err, ErrMutationFailed)
	assert.Contains(t, err.Error(), "no such item")
}

func TestCloudStore_RateLimitHonorsContext(t *testing.T) {
	calls := 0
	cs, srv := newTestCloudStore(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(204)
	}, WithRateLimit(0.001))
	defer srv.Close()

	// The limiter starts with one token: the first write goes through and the
	// second has to wait far longer than the cancelled context allows.
	require.NoError(t, cs.SetField(context.Background(), "u1", "sortOrder", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cs.SetField(ctx, "u2", "sortOrder", 2)
	assert.ErrorIs(t, err, ErrMutationFailed)
	assert.Equal(t, 1, calls)
}

func TestCloudStore_TrimsTrailingSlash(t *testing.T) {
	cs := NewCloudStore("https://tasks.example.com/api/", "k")
	assert.Equal(t, "https://tasks.example.com/api", cs.apiURL)
}
