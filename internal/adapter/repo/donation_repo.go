package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
	"server/internal/infra"
)

// DonationRepositoryMongo implements domain.DonationRepository backed by
// the donations collection.
type DonationRepositoryMongo struct {
	coll *mongo.Collection
}

// NewDonationRepository creates a new DonationRepositoryMongo.
func NewDonationRepository(db *mongo.Database) *DonationRepositoryMongo {
	return &DonationRepositoryMongo{coll: db.Collection(infra.CollDonations)}
}

// Create inserts a donation request and fills in the generated id.
func (r *DonationRepositoryMongo) Create(ctx context.Context, donation *domain.Donation) error {
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, donation)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		donation.ID = oid
	}
	return nil
}

// List returns donation requests newest first. A non-empty status
// narrows the result.
func (r *DonationRepositoryMongo) List(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var donations []domain.Donation
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// UpdateStatus sets the status of one request. A malformed or unmatched
// id reports ErrNotFound.
func (r *DonationRepositoryMongo) UpdateStatus(ctx context.Context, id string, status domain.DonationStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes one request by id.
func (r *DonationRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.DonationRepository = (*DonationRepositoryMongo)(nil)
