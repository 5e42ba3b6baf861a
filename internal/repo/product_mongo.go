package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const ProductsCollection = "products"

type productDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Price        float64            `bson:"price"`
	Description  string             `bson:"description"`
	Image        string             `bson:"image"`
	CountInStock int                `bson:"countInStock"`
}

func (d productDocument) toModel() models.Product {
	return models.Product{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Price:        d.Price,
		Description:  d.Description,
		Image:        d.Image,
		CountInStock: d.CountInStock,
	}
}

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]models.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toModel()
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidProductID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if len(products) == 0 {
		return []models.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]any, len(products))
	for i, p := range products {
		docs[i] = productDocument{
			Name:         p.Name,
			Price:        p.Price,
			Description:  p.Description,
			Image:        p.Image,
			CountInStock: p.CountInStock,
		}
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}

	created := make([]models.Product, len(products))
	for i, p := range products {
		if oid, ok := res.InsertedIDs[i].(primitive.ObjectID); ok {
			p.ID = oid.Hex()
		}
		created[i] = p
	}
	return created, nil
}

func (r *MongoProductRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}
