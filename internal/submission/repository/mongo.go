package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modgate/modgate/internal/submission"
)

// MongoRepo implements a MongoDB-backed repository for submissions. Records
// are keyed by an "id" string field; the classifier signature gets its own
// index since moderation tooling looks records up by it.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "signature", Value: 1}}},
	}
	col.Indexes().CreateMany(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, s *submission.Submission) (string, error) {
	now := time.Now()
	if s.ID == "" {
		s.ID = "sub_" + now.Format("20060102T150405.000000000")
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, s); err != nil {
		return "", err
	}
	return s.ID, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*submission.Submission, error) {
	var s submission.Submission
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoRepo) GetBySignature(ctx context.Context, signature string) (*submission.Submission, error) {
	var s submission.Submission
	err := m.col.FindOne(ctx, bson.M{"signature": signature}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*submission.Submission, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*submission.Submission{}
	for cur.Next(ctx) {
		var s submission.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (m *MongoRepo) SetAllow(ctx context.Context, id string, allow bool) error {
	set := bson.M{"allow": allow, "updatedAt": time.Now()}
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
