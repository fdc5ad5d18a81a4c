package openfoodfacts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dietcheck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	// Generous rate so retries never stall the test run.
	return NewClient(baseURL, "dietcheck-test/1.0", 600)
}

func TestNewClient(t *testing.T) {
	client := NewClient("https://world.openfoodfacts.org/", "dietcheck/1.0", 10)

	assert.NotNil(t, client)
	assert.Equal(t, "https://world.openfoodfacts.org", client.baseURL)
	assert.Equal(t, "dietcheck/1.0", client.userAgent)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestSearchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "chocolate", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))
		assert.Equal(t, "dietcheck-test/1.0", r.Header.Get("User-Agent"))
		assert.Empty(t, r.URL.Query().Get("tagtype_0"))

		response := searchResponse{
			Products: []domain.ProductRecord{
				{Code: "123", ProductName: "Dark Chocolate"},
				{Code: "456", ProductName: "Milk Chocolate"},
			},
			Count: 2,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "chocolate")

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "123", result[0].Code)
	assert.Equal(t, "Dark Chocolate", result[0].ProductName)
}

func TestSearchProducts_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := searchResponse{Products: []domain.ProductRecord{}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "nonexistent-product")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSearchProducts_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "missing")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSearchProducts_ServerError_Retries(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		response := searchResponse{
			Products: []domain.ProductRecord{
				{Code: "789", ProductName: "Success after retry"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "retry-test")

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 3, attempts)
}

func TestSearchProducts_AllRetriesFail(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "all-fail")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, 3, attempts)
}

func TestSearchProducts_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "invalid-json")

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestSearchProducts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := client.SearchProducts(ctx, "timeout-test")

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestSearchProducts_RequestCreationError(t *testing.T) {
	client := newTestClient("://invalid-url")
	ctx := context.Background()

	result, err := client.SearchProducts(ctx, "test")

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestSearchProductsByLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "labels", r.URL.Query().Get("tagtype_0"))
		assert.Equal(t, "contains", r.URL.Query().Get("tag_contains_0"))
		assert.Equal(t, "vegan", r.URL.Query().Get("tag_0"))

		response := searchResponse{
			Products: []domain.ProductRecord{
				{Code: "1", ProductName: "Oat Drink", Labels: "Vegan, Organic"},
				{Code: "2", ProductName: "Mislabeled Yogurt", Labels: "Organic"},
				{Code: "3", ProductName: "Tofu", Labels: "vegan"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProductsByLabel(ctx, "snack", "vegan")

	require.NoError(t, err)
	// Only records whose labels text carries the label survive.
	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].Code)
	assert.Equal(t, "3", result[1].Code)
}

func TestSearchProductsByLabel_NoneVerified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := searchResponse{
			Products: []domain.ProductRecord{
				{Code: "2", ProductName: "Mislabeled Yogurt", Labels: "Organic"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.SearchProductsByLabel(ctx, "yogurt", "vegan")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/3017620422003.json", r.URL.Path)
		assert.Equal(t, "dietcheck-test/1.0", r.Header.Get("User-Agent"))

		response := productResponse{
			Status: 1,
			Product: domain.ProductRecord{
				Code:        "3017620422003",
				ProductName: "Hazelnut Spread",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.GetProduct(ctx, "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, "3017620422003", result.Code)
	assert.Equal(t, "Hazelnut Spread", result.ProductName)
}

func TestGetProduct_StatusZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := productResponse{Status: 0}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.GetProduct(ctx, "0000000000000")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.GetProduct(ctx, "nonexistent")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.GetProduct(ctx, "error-test")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestGetProduct_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	result, err := client.GetProduct(ctx, "invalid-json")

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
