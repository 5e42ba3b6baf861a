// Package seed loads the static fixture products into a store.
package seed

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Products returns a fresh copy of the fixture set.
func Products() []models.Product {
	return []models.Product{
		{
			Name:         "Smartphone XYZ",
			Price:        29999,
			Description:  "A powerful smartphone with amazing features.",
			Image:        "/images/phone.jpg",
			CountInStock: 10,
		},
		{
			Name:         "Wireless Headphones",
			Price:        4999,
			Description:  "Noise cancelling wireless headphones.",
			Image:        "/images/headphones.jpg",
			CountInStock: 15,
		},
		{
			Name:         "Gaming Laptop",
			Price:        89999,
			Description:  "High performance laptop for gaming and work.",
			Image:        "/images/laptop.jpg",
			CountInStock: 5,
		},
	}
}

type schemaMigrator interface {
	EnsureSchema(ctx context.Context) error
}

// Import replaces the store contents with products and returns them with their
// store-assigned IDs.
func Import(ctx context.Context, store repo.ProductSeeder, products []models.Product) ([]models.Product, error) {
	for _, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid fixture %q: %w", p.Name, err)
		}
	}

	if m, ok := store.(schemaMigrator); ok {
		if err := m.EnsureSchema(ctx); err != nil {
			return nil, err
		}
	}

	if err := store.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear products: %w", err)
	}

	created, err := store.InsertMany(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("import products: %w", err)
	}
	return created, nil
}

// Destroy removes every product from the store.
func Destroy(ctx context.Context, store repo.ProductSeeder) error {
	if m, ok := store.(schemaMigrator); ok {
		if err := m.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	if err := store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("destroy products: %w", err)
	}
	return nil
}
