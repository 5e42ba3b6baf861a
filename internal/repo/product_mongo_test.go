package repo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(id primitive.ObjectID, name string, price float64, stock int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: price},
		{Key: "description", Value: name + " description"},
		{Key: "image", Value: "/images/" + name + ".jpg"},
		{Key: "countInStock", Value: stock},
	}
}

// Runs against the driver's mock deployment; no server is needed.
func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetAll decodes every document", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ProductsCollection
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			productDoc(first, "Phone", 999.99, 1),
			productDoc(second, "Mouse", 29.99, 0),
		))

		products, err := NewMongoProductRepository(mt.DB).GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
		if products[0].ID != first.Hex() || products[0].Name != "Phone" || products[0].CountInStock != 1 {
			t.Errorf("unexpected first product %+v", products[0])
		}
		if products[1].ID != second.Hex() || products[1].Price != 29.99 {
			t.Errorf("unexpected second product %+v", products[1])
		}
	})

	mt.Run("GetAll on an empty collection is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+ProductsCollection, mtest.FirstBatch))

		products, err := NewMongoProductRepository(mt.DB).GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if products == nil || len(products) != 0 {
			t.Errorf("expected an empty non-nil slice, got %#v", products)
		}
	})

	mt.Run("GetAll surfaces store errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom"}))

		if _, err := NewMongoProductRepository(mt.DB).GetAll(context.Background()); err == nil {
			t.Fatal("expected an error")
		}
	})

	mt.Run("GetByID returns the matching document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+ProductsCollection, mtest.FirstBatch,
			productDoc(id, "Tablet", 499.99, 2),
		))

		p, err := NewMongoProductRepository(mt.DB).GetByID(context.Background(), id.Hex())
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if p.ID != id.Hex() || p.Name != "Tablet" {
			t.Errorf("unexpected product %+v", p)
		}
	})

	mt.Run("GetByID maps no documents to not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+ProductsCollection, mtest.FirstBatch))

		_, err := NewMongoProductRepository(mt.DB).GetByID(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})

	mt.Run("GetByID rejects malformed ids before querying", func(mt *mtest.T) {
		_, err := NewMongoProductRepository(mt.DB).GetByID(context.Background(), "not-an-object-id")
		if !errors.Is(err, ErrInvalidProductID) {
			t.Errorf("expected ErrInvalidProductID, got %v", err)
		}
	})

	mt.Run("InsertMany assigns object ids", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := NewMongoProductRepository(mt.DB).InsertMany(context.Background(), sampleProducts())
		if err != nil {
			t.Fatalf("InsertMany: %v", err)
		}
		if len(created) != len(sampleProducts()) {
			t.Fatalf("expected %d products, got %d", len(sampleProducts()), len(created))
		}
		for _, p := range created {
			if _, err := primitive.ObjectIDFromHex(p.ID); err != nil {
				t.Errorf("product %q got id %q: %v", p.Name, p.ID, err)
			}
		}
	})

	mt.Run("DeleteAll", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		if err := NewMongoProductRepository(mt.DB).DeleteAll(context.Background()); err != nil {
			t.Fatalf("DeleteAll: %v", err)
		}
	})

	mt.Run("Ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := NewMongoProductRepository(mt.DB).Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}
