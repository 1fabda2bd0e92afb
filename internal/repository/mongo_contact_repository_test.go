package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoContactRepository_Save(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	dbName := fmt.Sprintf("portfolio_test_%d", time.Now().UnixNano())
	store, err := Open(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer store.Close(ctx)
	defer func() { _ = store.mongo.Database(dbName).Drop(ctx) }()

	if store.Backend != BackendMongo {
		t.Fatalf("expected mongodb backend, got %q", store.Backend)
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	repo := store.Contacts.(*MongoContactRepository)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	msg := &model.ContactMessage{Name: "A", Email: "a@example.com", Subject: "project", Message: "hi"}
	if err := repo.Save(ctx, msg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected ID to be set after Save")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set after Save")
	}

	oid, err := primitive.ObjectIDFromHex(msg.ID)
	if err != nil {
		t.Fatalf("ID is not an ObjectID hex: %v", err)
	}
	var doc contactDocument
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if doc.Subject != "project" || doc.Message != "hi" {
		t.Errorf("unexpected stored document: %+v", doc)
	}
}
