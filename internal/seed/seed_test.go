package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*repo.InMemoryProductRepository
	deleteErr error
}

func (s failingStore) DeleteAll(ctx context.Context) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.InMemoryProductRepository.DeleteAll(ctx)
}

type migratingStore struct {
	*repo.InMemoryProductRepository
	migrated int
}

func (s *migratingStore) EnsureSchema(context.Context) error {
	s.migrated++
	return nil
}

func TestProductsFixture(t *testing.T) {
	products := Products()
	require.Len(t, products, 3)

	names := []string{products[0].Name, products[1].Name, products[2].Name}
	assert.Equal(t, []string{"Smartphone XYZ", "Wireless Headphones", "Gaming Laptop"}, names)
	for _, p := range products {
		assert.Empty(t, p.ID, "fixture IDs are assigned by the store")
		assert.GreaterOrEqual(t, p.CountInStock, 0)
	}
}

func TestImportReplacesStoreContents(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemoryProductRepository()
	_, err := store.InsertMany(ctx, []models.Product{{Name: "Stale", Price: 1}})
	require.NoError(t, err)

	created, err := Import(ctx, store, Products())
	require.NoError(t, err)
	require.Len(t, created, 3)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, all)
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemoryProductRepository()

	_, err := Import(ctx, store, Products())
	require.NoError(t, err)
	_, err = Import(ctx, store, Products())
	require.NoError(t, err)

	all, _ := store.GetAll(ctx)
	assert.Len(t, all, 3)
}

func TestImportRejectsInvalidFixtures(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
	}{
		{name: "missing name", product: models.Product{Price: 10}},
		{name: "negative price", product: models.Product{Name: "Broken", Price: -1}},
		{name: "negative stock", product: models.Product{Name: "Broken", Price: 1, CountInStock: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repo.NewInMemoryProductRepository()
			_, err := Import(context.Background(), store, []models.Product{tt.product})
			assert.Error(t, err)

			all, _ := store.GetAll(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestImportPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("store unavailable")
	store := failingStore{InMemoryProductRepository: repo.NewInMemoryProductRepository(), deleteErr: boom}

	_, err := Import(context.Background(), store, Products())
	assert.ErrorIs(t, err, boom)
}

func TestImportAndDestroyEnsureSchema(t *testing.T) {
	ctx := context.Background()
	store := &migratingStore{InMemoryProductRepository: repo.NewInMemoryProductRepository()}

	_, err := Import(ctx, store, Products())
	require.NoError(t, err)
	require.NoError(t, Destroy(ctx, store))

	assert.Equal(t, 2, store.migrated)
	all, _ := store.GetAll(ctx)
	assert.Empty(t, all)
}
