package db

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// CloseFunc releases the connections behind a store.
type CloseFunc func(ctx context.Context) error

// OpenProductStore connects to the configured backing store.
func OpenProductStore(ctx context.Context, cfg config.Config) (repo.ProductStore, CloseFunc, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		client, database, err := ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewMongoProductRepository(database), client.Disconnect, nil

	case DriverPostgres:
		database, err := Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewPostgresProductRepository(database), func(context.Context) error { return database.Close() }, nil

	case DriverMemory:
		return repo.NewInMemoryProductRepository(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
