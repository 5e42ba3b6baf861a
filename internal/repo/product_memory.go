package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryProductRepository is an in-memory implementation of ProductStore.
// Identifiers are generated the same way the document store generates them.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// GetAll retrieves all products in insertion order.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Ping(_ context.Context) error {
	return nil
}

// InsertMany adds products, assigning each a fresh ID.
func (r *InMemoryProductRepository) InsertMany(_ context.Context, products []models.Product) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]models.Product, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID().Hex()
		created[i] = p
	}
	r.products = append(r.products, created...)
	return created, nil
}

func (r *InMemoryProductRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	return nil
}
