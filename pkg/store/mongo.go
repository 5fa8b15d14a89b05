package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/familytower/pkg/family"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	// Key is the document _id; defaults to DefaultKey.
	Key string `toml:"-"`
}

// MongoStore keeps the snapshot as one document {_id, members, updatedAt}.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	key    string
}

type snapshotDoc struct {
	ID        string          `bson:"_id"`
	Members   []family.Member `bson:"members"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// NewMongoStore connects and pings the server. Database defaults to
// "familytower", Collection to "trees".
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "familytower"
	}
	if cfg.Collection == "" {
		cfg.Collection = "trees"
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		key:    cfg.Key,
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) ([]family.Member, error) {
	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", s.key, err)
	}
	return doc.Members, nil
}

func (s *MongoStore) Save(ctx context.Context, members []family.Member) error {
	if members == nil {
		members = []family.Member{}
	}
	doc := snapshotDoc{ID: s.key, Members: members, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", s.key, err)
	}
	return nil
}

func (s *MongoStore) Backend() string { return "mongo" }

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
