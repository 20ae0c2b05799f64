package performance

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"perftrack/internal/platform/config"
	"perftrack/internal/platform/docstore"
)

func TestMemoryStoreFiltersByEmployee(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Insert(ctx, Review{EmployeeID: 1, ReviewerName: "a", OverallRating: 3}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	store.Put(map[string]any{"_id": "x", FieldEmployeeID: int32(1), FieldReviewerName: "legacy"})
	store.Put(map[string]any{FieldEmployeeID: "1", FieldReviewerName: "string id"})
	if err := store.Insert(ctx, Review{EmployeeID: 2, ReviewerName: "b"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	docs, err := store.FindByEmployee(ctx, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0][FieldReviewerName] != "a" || docs[1][FieldReviewerName] != "legacy" {
		t.Fatalf("documents out of insertion order: %v", docs)
	}
	if _, ok := docs[1]["_id"]; ok {
		t.Fatal("_id must be stripped")
	}

	total, err := store.Count(ctx)
	if err != nil || total != 4 {
		t.Fatalf("expected 4 documents, got %d (%v)", total, err)
	}
}

func TestMongoStoreLive(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	cfg := config.Config{
		DocumentStoreURI:   uri,
		DocumentDatabase:   "perftrack_test",
		DocumentCollection: "reviews_" + time.Now().Format("20060102150405"),
		DocumentTimeout:    5 * time.Second,
	}
	client, err := docstore.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	collection := docstore.Collection(client, cfg)
	defer func() { _ = collection.Drop(context.Background()) }()

	store := NewMongoStore(collection)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	if err := store.Insert(ctx, Review{EmployeeID: 5, ReviewDate: "2024-01-01", ReviewerName: "Pat", OnTimeDelivery: 4, OverallRating: 3.2}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := collection.InsertOne(ctx, bson.M{FieldEmployeeID: 6}); err != nil {
		t.Fatalf("insert other: %v", err)
	}

	docs, err := store.FindByEmployee(ctx, 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 1 || docs[0][FieldReviewerName] != "Pat" {
		t.Fatalf("unexpected documents: %v", docs)
	}
	if _, ok := docs[0]["_id"]; ok {
		t.Fatal("_id must be projected out")
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
