package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig locates the database.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStore maps each collection path onto a MongoDB collection; nested
// paths become dotted names ("courses.<id>.lectures"). Documents use string
// ids in _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects and pings the server.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(cfg.Database)}, nil
}

// MongoCollectionName converts a collection path to a MongoDB collection name.
func MongoCollectionName(path Path) string {
	return strings.ReplaceAll(string(path), "/", ".")
}

func (s *MongoStore) coll(path Path) *mongo.Collection {
	return s.db.Collection(MongoCollectionName(path))
}

// List finds all matching documents.
func (s *MongoStore) List(ctx context.Context, path Path, q Query) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	filter := bson.D{}
	for _, f := range q.Where {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}

	cur, err := s.coll(path).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", path, err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("mongo decode %s: %w", path, err)
	}

	out := make([]Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, mongoDocument(m))
	}
	return out, nil
}

// Get finds one document by id.
func (s *MongoStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := checkArgs(path, id); err != nil {
		return Document{}, err
	}
	var m bson.M
	err := s.coll(path).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("mongo get %s/%s: %w", path, id, err)
	}
	return mongoDocument(m), nil
}

// Create inserts a document under a new UUID.
func (s *MongoStore) Create(ctx context.Context, path Path, data map[string]any) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	doc := bson.M{"_id": id}
	for k, v := range cloneMap(data) {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	if _, err := s.coll(path).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo insert %s: %w", path, err)
	}
	return id, nil
}

// Update applies $set with the given fields.
func (s *MongoStore) Update(ctx context.Context, path Path, id string, fields map[string]any) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	set := bson.M{}
	for k, v := range cloneMap(fields) {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		_, err := s.Get(ctx, path, id)
		return err
	}
	res, err := s.coll(path).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mongo update %s/%s: %w", path, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one document.
func (s *MongoStore) Delete(ctx context.Context, path Path, id string) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	res, err := s.coll(path).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete %s/%s: %w", path, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func mongoDocument(m bson.M) Document {
	id := fmt.Sprint(m["_id"])
	if oid, ok := m["_id"].(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	data := make(map[string]any, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		data[k] = normalizeMongoValue(v)
	}
	return Document{ID: id, Data: data}
}

// normalizeMongoValue converts BSON driver types into the plain Go shapes
// the rest of the module expects.
func normalizeMongoValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeMongoValue(t[i])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeMongoValue(t[i])
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeMongoValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeMongoValue(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeMongoValue(e.Value)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}
