package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dietcheck/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// searchResponse is the OFF search payload envelope.
type searchResponse struct {
	Products []domain.ProductRecord `json:"products"`
	Count    int                    `json:"count"`
}

// productResponse is the OFF barcode lookup envelope. Status 1 means found.
type productResponse struct {
	Status  int                  `json:"status"`
	Product domain.ProductRecord `json:"product"`
}

// NewClient creates a new Open Food Facts API client. requestsPerMinute
// bounds the search request rate per OFF API etiquette.
func NewClient(baseURL, userAgent string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// searchURL builds a v1 search URL, optionally constrained to a label tag.
func (c *Client) searchURL(query, label string) string {
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	if label != "" {
		params.Add("tagtype_0", "labels")
		params.Add("tag_contains_0", "contains")
		params.Add("tag_0", label)
	}
	return fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())
}

// SearchProducts searches the catalog by product name
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.ProductRecord, error) {
	log.Printf("[OFF] SearchProducts called with query: %q", query)
	return c.search(ctx, c.searchURL(query, ""))
}

// SearchProductsByLabel searches constrained to a label tag (e.g. "vegan")
// and keeps only records whose labels text actually carries the label; the
// tag filter alone is not reliable.
func (c *Client) SearchProductsByLabel(ctx context.Context, query, label string) ([]domain.ProductRecord, error) {
	log.Printf("[OFF] SearchProductsByLabel called with query: %q, label: %q", query, label)

	products, err := c.search(ctx, c.searchURL(query, label))
	if err != nil {
		return nil, err
	}

	verified := make([]domain.ProductRecord, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Labels), label) {
			verified = append(verified, p)
		}
	}
	if len(verified) == 0 {
		return nil, domain.ErrProductNotFound
	}
	log.Printf("[OFF] %d of %d products verified %s-labeled", len(verified), len(products), label)
	return verified, nil
}

// search executes a search request with retries on transient failures.
func (c *Client) search(ctx context.Context, reqURL string) ([]domain.ProductRecord, error) {
	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[OFF] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrProductNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			log.Printf("[OFF] JSON decode error: %v", err)
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if len(searchResp.Products) == 0 {
			log.Printf("[OFF] No products found")
			return nil, domain.ErrProductNotFound
		}

		log.Printf("[OFF] Found %d products", len(searchResp.Products))
		return searchResp.Products, nil
	}

	log.Printf("[OFF] All retries failed")
	return nil, lastErr
}

// GetProduct retrieves one product by barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var productResp productResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if productResp.Status != 1 {
		return nil, domain.ErrProductNotFound
	}

	return &productResp.Product, nil
}
