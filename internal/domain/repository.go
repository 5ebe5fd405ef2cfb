package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	// Upsert inserts the user keyed by email, or merges profile fields
	// into the existing record. Role, status and createdAt are set only
	// on insert.
	Upsert(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListDonors(ctx context.Context, filter DonorFilter) ([]User, error)
	UpdateProfile(ctx context.Context, email string, profile UserProfile) error
	SetStatus(ctx context.Context, email string, status UserStatus) error
	SetRole(ctx context.Context, email string, role UserRole) error
}

// DonationRepository handles donation request persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	// List returns donations newest first; status narrows when non-empty.
	List(ctx context.Context, status DonationStatus) ([]Donation, error)
	UpdateStatus(ctx context.Context, id string, status DonationStatus) error
	Delete(ctx context.Context, id string) error
}

// FundRepository handles contribution records.
type FundRepository interface {
	Create(ctx context.Context, fund *Fund) error
	List(ctx context.Context) ([]Fund, error)
	Total(ctx context.Context) (float64, error)
}

// GeoRepository serves the division/district reference collections.
type GeoRepository interface {
	ListDivisions(ctx context.Context) ([]Division, error)
	// ListDistricts filters by division id when divisionID is non-empty.
	ListDistricts(ctx context.Context, divisionID string) ([]District, error)
	SeedDivisions(ctx context.Context, divisions []Division) error
	SeedDistricts(ctx context.Context, districts []District) error
}
