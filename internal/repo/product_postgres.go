package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	models "github.com/rogerio-castellano/product-catalog/internal/models"
)

// invalid_text_representation, raised when a non-UUID string is compared to the id column.
const pgInvalidTextRepresentation = "22P02"

const productsSchema = `
CREATE TABLE IF NOT EXISTS products (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name           TEXT NOT NULL,
	price          DOUBLE PRECISION NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	image          TEXT NOT NULL DEFAULT '',
	count_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// EnsureSchema creates the products table when it does not exist yet.
func (r *PostgresProductRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, productsSchema); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, price, description, image, count_in_stock FROM products ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.CountInStock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	query := `SELECT id, name, price, description, image, count_in_stock FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.CountInStock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidProductID, id)
	}
	return p, err
}

func (r *PostgresProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

func (r *PostgresProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	query := `INSERT INTO products (name, price, description, image, count_in_stock) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created := make([]models.Product, len(products))
	for i, p := range products {
		if err := tx.QueryRowContext(ctx, query, p.Name, p.Price, p.Description, p.Image, p.CountInStock).Scan(&p.ID); err != nil {
			return nil, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		created[i] = p
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PostgresProductRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM products`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query)
	return err
}
