package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/pkg/httpclient"
)

// pageSize is the number of products requested per feed page.
const pageSize = 100

// page is the feed's paginated envelope.
type page struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// Client fetches the product catalog from a DummyJSON-compatible feed.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a feed client for the given base URL, e.g.
// "https://dummyjson.com/products".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    httpclient.New(httpclient.DefaultConfig()),
		baseURL: baseURL,
		logger:  logger,
	}
}

// FetchAll retrieves the complete catalog by walking the feed's pages until
// the reported total is reached.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	var all []domain.Product

	skip := 0
	total := -1

	for total < 0 || skip < total {
		p, err := c.fetchPage(ctx, skip)
		if err != nil {
			return nil, err
		}

		all = append(all, p.Products...)

		total = p.Total
		if total <= 0 {
			total = len(all)
		}
		skip += pageSize
	}

	c.logger.Info("fetched products from feed", "count", len(all))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, skip int) (*page, error) {
	url := fmt.Sprintf("%s?limit=%d&skip=%d", c.baseURL, pageSize, skip)

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed page at skip=%d: %w", skip, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed page at skip=%d: unexpected status %d", skip, resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode feed page at skip=%d: %w", skip, err)
	}
	return &p, nil
}
