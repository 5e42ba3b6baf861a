package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

// ProductRepository defines the read operations the catalog service needs.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Ping(ctx context.Context) error
}

// ProductSeeder loads fixture data out-of-band. The HTTP service never uses it.
type ProductSeeder interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error)
}

// ProductStore is implemented by every backing store.
type ProductStore interface {
	ProductRepository
	ProductSeeder
}

var (
	// ErrProductNotFound is returned when no product has the requested identifier.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProductID is returned when the store rejects the identifier format.
	ErrInvalidProductID = errors.New("invalid product id")
)
