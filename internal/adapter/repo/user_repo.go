package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"server/internal/domain"
	"server/internal/infra"
)

// UserRepositoryMongo implements domain.UserRepository backed by the
// users collection.
type UserRepositoryMongo struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepositoryMongo.
func NewUserRepository(db *mongo.Database) *UserRepositoryMongo {
	return &UserRepositoryMongo{coll: db.Collection(infra.CollUsers)}
}

// Upsert inserts or merges a user keyed by email. Role, status and
// createdAt are written only when the document is first created, so
// repeat submissions can never elevate a role or resurrect a blocked
// account.
func (r *UserRepositoryMongo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	if user.Name != "" {
		set["name"] = user.Name
	}
	if user.BloodGroup != "" {
		set["bloodGroup"] = user.BloodGroup
	}
	if user.Division != "" {
		set["division"] = user.Division
	}
	if user.District != "" {
		set["district"] = user.District
	}
	if user.Upazila != "" {
		set["upazila"] = user.Upazila
	}
	if user.Avatar != "" {
		set["avatar"] = user.Avatar
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"email":     user.Email,
			"role":      domain.UserRoleDonor,
			"status":    domain.UserStatusActive,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out domain.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByEmail fetches a user by its identity key.
func (r *UserRepositoryMongo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// List returns every user record.
func (r *UserRepositoryMongo) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListDonors returns active donors, narrowed by the optional filter fields.
func (r *UserRepositoryMongo) ListDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.User, error) {
	query := bson.M{
		"role":   domain.UserRoleDonor,
		"status": domain.UserStatusActive,
	}
	if filter.BloodGroup != "" {
		query["bloodGroup"] = filter.BloodGroup
	}
	if filter.Division != "" {
		query["division"] = filter.Division
	}
	if filter.District != "" {
		query["district"] = filter.District
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var donors []domain.User
	if err := cur.All(ctx, &donors); err != nil {
		return nil, err
	}
	return donors, nil
}

// UpdateProfile applies the caller-editable fields to an existing user.
// The profile type cannot carry role or status, so this path cannot
// change either.
func (r *UserRepositoryMongo) UpdateProfile(ctx context.Context, email string, profile domain.UserProfile) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if profile.Name != "" {
		set["name"] = profile.Name
	}
	if profile.BloodGroup != "" {
		set["bloodGroup"] = profile.BloodGroup
	}
	if profile.Division != "" {
		set["division"] = profile.Division
	}
	if profile.District != "" {
		set["district"] = profile.District
	}
	if profile.Upazila != "" {
		set["upazila"] = profile.Upazila
	}
	if profile.Avatar != "" {
		set["avatar"] = profile.Avatar
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus blocks or unblocks an account.
func (r *UserRepositoryMongo) SetStatus(ctx context.Context, email string, status domain.UserStatus) error {
	return r.setField(ctx, email, "status", status)
}

// SetRole changes a user's role. This is the only write path for roles.
func (r *UserRepositoryMongo) SetRole(ctx context.Context, email string, role domain.UserRole) error {
	return r.setField(ctx, email, "role", role)
}

func (r *UserRepositoryMongo) setField(ctx context.Context, email, field string, value any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{field: value, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.UserRepository = (*UserRepositoryMongo)(nil)
