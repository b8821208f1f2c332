package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a mongo database handle. The handle is
// created once at startup and injected; see internal/database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func toBSON(f Filter) bson.M {
	out := bson.M{}
	for field, c := range f {
		switch c.op {
		case "eq":
			out[field] = c.value
		case "in":
			out[field] = bson.M{"$in": c.values}
		case "gte":
			out[field] = bson.M{"$gte": c.value}
		case "lte":
			out[field] = bson.M{"$lte": c.value}
		}
	}
	return out
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc any) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, f Filter, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, toBSON(f)).Decode(out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *MongoStore) FindMany(ctx context.Context, collection string, f Filter, opts *FindOpts, out any) error {
	findOpts := options.Find()
	if opts != nil {
		if len(opts.Sort) > 0 {
			sort := bson.D{}
			for _, sf := range opts.Sort {
				dir := 1
				if sf.Desc {
					dir = -1
				}
				sort = append(sort, bson.E{Key: sf.Field, Value: dir})
			}
			findOpts.SetSort(sort)
		}
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
	}
	cur, err := s.db.Collection(collection).Find(ctx, toBSON(f), findOpts)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection string, f Filter, set map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, toBSON(f), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) EnsureUniqueIndex(ctx context.Context, collection string, fields ...string) error {
	keys := bson.D{}
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	model := mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model)
	return err
}
