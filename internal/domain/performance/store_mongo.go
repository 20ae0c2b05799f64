package performance

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"perftrack/internal/platform/docstore"
)

var ReviewIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: FieldEmployeeID, Value: 1}},
		Options: options.Index().SetName("idx_employee_id"),
	},
}

type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: collection}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateMany(ctx, ReviewIndexes)
	return docstore.Classify(err, "create review indexes")
}

func (s *MongoStore) Insert(ctx context.Context, review Review) error {
	_, err := s.Collection.InsertOne(ctx, review)
	return docstore.Classify(err, "insert review")
}

func (s *MongoStore) FindByEmployee(ctx context.Context, employeeID int64) ([]Document, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := s.Collection.Find(ctx, bson.M{FieldEmployeeID: employeeID}, opts)
	if err != nil {
		return nil, docstore.Classify(err, "find reviews")
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, docstore.Classify(err, "decode reviews")
	}
	out := make([]Document, 0, len(raw))
	for _, doc := range raw {
		out = append(out, Document(doc))
	}
	return out, nil
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	total, err := s.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, docstore.Classify(err, "count reviews")
	}
	return total, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	err := s.Collection.Database().Client().Ping(ctx, readpref.Primary())
	return docstore.Classify(err, "ping document store")
}
