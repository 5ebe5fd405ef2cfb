package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
	"server/internal/infra"
)

// GeoRepositoryMongo serves the divisions and districts reference
// collections. The API only reads them; writes happen through the seed
// command.
type GeoRepositoryMongo struct {
	divisions *mongo.Collection
	districts *mongo.Collection
}

// NewGeoRepository creates a new GeoRepositoryMongo.
func NewGeoRepository(db *mongo.Database) *GeoRepositoryMongo {
	return &GeoRepositoryMongo{
		divisions: db.Collection(infra.CollDivisions),
		districts: db.Collection(infra.CollDistricts),
	}
}

// ListDivisions returns every division.
func (r *GeoRepositoryMongo) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	cur, err := r.divisions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var divisions []domain.Division
	if err := cur.All(ctx, &divisions); err != nil {
		return nil, err
	}
	return divisions, nil
}

// ListDistricts returns districts, narrowed to one division when
// divisionID is non-empty.
func (r *GeoRepositoryMongo) ListDistricts(ctx context.Context, divisionID string) ([]domain.District, error) {
	query := bson.M{}
	if divisionID != "" {
		query["divisionId"] = divisionID
	}

	cur, err := r.districts.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var districts []domain.District
	if err := cur.All(ctx, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// SeedDivisions upserts divisions by id so reruns are idempotent.
func (r *GeoRepositoryMongo) SeedDivisions(ctx context.Context, divisions []domain.Division) error {
	opts := options.Replace().SetUpsert(true)
	for _, d := range divisions {
		if _, err := r.divisions.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts); err != nil {
			return err
		}
	}
	return nil
}

// SeedDistricts upserts districts by id.
func (r *GeoRepositoryMongo) SeedDistricts(ctx context.Context, districts []domain.District) error {
	opts := options.Replace().SetUpsert(true)
	for _, d := range districts {
		if _, err := r.districts.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts); err != nil {
			return err
		}
	}
	return nil
}

var _ domain.GeoRepository = (*GeoRepositoryMongo)(nil)
