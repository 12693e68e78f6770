package store

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
)

// mapDocument is the stored shape of a map.
type mapDocument struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per map, keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get returns the map text.
func (s *MongoStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateMapName(name); err != nil {
		return nil, err
	}
	var doc mapDocument
	err := retry(ctx, func() error {
		err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "mongo get %s", name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

// Put upserts the map document.
func (s *MongoStore) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	doc := mapDocument{Name: name, Data: string(data), UpdatedAt: time.Now().UTC()}
	return retry(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "mongo put %s", name))
		}
		return nil
	})
}

// Delete removes the map document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	return retry(ctx, func() error {
		res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "mongo delete %s", name))
		}
		if res.DeletedCount == 0 {
			return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		return nil
	})
}

// List returns the document ids in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := retry(ctx, func() error {
		ids, err := s.coll.Distinct(ctx, "_id", bson.M{})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "mongo list"))
		}
		names = names[:0]
		for _, id := range ids {
			if name, ok := id.(string); ok {
				names = append(names, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Backend returns "mongo:" followed by the database and collection.
func (s *MongoStore) Backend() string {
	return "mongo:" + s.coll.Database().Name() + "." + s.coll.Name()
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
