package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"server/internal/domain"
	"server/internal/infra"
)

// FundRepositoryMongo implements domain.FundRepository backed by the
// funds collection.
type FundRepositoryMongo struct {
	coll *mongo.Collection
}

// NewFundRepository creates a new FundRepositoryMongo.
func NewFundRepository(db *mongo.Database) *FundRepositoryMongo {
	return &FundRepositoryMongo{coll: db.Collection(infra.CollFunds)}
}

// Create appends a contribution record.
func (r *FundRepositoryMongo) Create(ctx context.Context, fund *domain.Fund) error {
	if fund.Date.IsZero() {
		fund.Date = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, fund)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		fund.ID = oid
	}
	return nil
}

// List returns every contribution record.
func (r *FundRepositoryMongo) List(ctx context.Context) ([]domain.Fund, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var funds []domain.Fund
	if err := cur.All(ctx, &funds); err != nil {
		return nil, err
	}
	return funds, nil
}

// Total sums the amount field across all records; zero records yield 0.
func (r *FundRepositoryMongo) Total(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

var _ domain.FundRepository = (*FundRepositoryMongo)(nil)
