package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/orbit/pkg/graph"
)

// LayoutsCollection is the MongoDB collection layouts are stored in.
const LayoutsCollection = "layouts"

// MongoStore stores layouts as documents keyed by ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type layoutDoc struct {
	graph.Layout `bson:",inline"`
	CreatedAt    time.Time `bson:"created_at"`
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(LayoutsCollection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, l graph.Layout) (string, error) {
	l.ID = NewID()
	doc := layoutDoc{Layout: l, CreatedAt: time.Now().UTC()}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert layout: %w", err)
	}
	return l.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (graph.Layout, error) {
	var doc layoutDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return graph.Layout{}, notFound(id)
	}
	if err != nil {
		return graph.Layout{}, fmt.Errorf("find layout %s: %w", id, err)
	}
	return doc.Layout, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
