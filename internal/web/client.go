// Package web is the catalog client: it fetches products from the catalog
// service and renders them as HTML pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rogerio-castellano/product-catalog/internal/models"
)

// ErrProductNotFound is returned when the service answers 404 for a product.
var ErrProductNotFound = errors.New("product not found")

type apiError struct {
	Message string `json:"message"`
}

// Client talks to the catalog service. BaseURL is the prefix the product
// routes hang off, e.g. http://localhost:5000/api.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(10 * time.Second),
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&products).
		SetError(&apiError{}).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list products: %w", statusError(resp))
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&product).
		SetError(&apiError{}).
		Get("/products/{id}")
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.Product{}, ErrProductNotFound
	}
	if resp.IsError() {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, statusError(resp))
	}
	return product, nil
}

func statusError(resp *resty.Response) error {
	if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), e.Message)
	}
	return fmt.Errorf("status %d", resp.StatusCode())
}
