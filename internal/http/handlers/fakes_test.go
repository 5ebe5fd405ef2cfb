package handlers

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
)

// In-memory repository fakes mirroring the store semantics the Mongo
// adapters provide.

type fakeUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	existing, ok := f.users[user.Email]
	if !ok {
		created := *user
		created.Role = domain.UserRoleDonor
		created.Status = domain.UserStatusActive
		created.CreatedAt = time.Now().UTC()
		created.UpdatedAt = created.CreatedAt
		f.users[user.Email] = &created
		out := created
		return &out, nil
	}
	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.BloodGroup != "" {
		existing.BloodGroup = user.BloodGroup
	}
	if user.Division != "" {
		existing.Division = user.Division
	}
	if user.District != "" {
		existing.District = user.District
	}
	if user.Upazila != "" {
		existing.Upazila = user.Upazila
	}
	if user.Avatar != "" {
		existing.Avatar = user.Avatar
	}
	existing.UpdatedAt = time.Now().UTC()
	out := *existing
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) ListDonors(_ context.Context, filter domain.DonorFilter) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.User
	for _, u := range f.users {
		if u.Role != domain.UserRoleDonor || u.Status != domain.UserStatusActive {
			continue
		}
		if filter.BloodGroup != "" && u.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.Division != "" && u.Division != filter.Division {
			continue
		}
		if filter.District != "" && u.District != filter.District {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, email string, profile domain.UserProfile) error {
	if f.err != nil {
		return f.err
	}
	user, ok := f.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	if profile.Name != "" {
		user.Name = profile.Name
	}
	if profile.BloodGroup != "" {
		user.BloodGroup = profile.BloodGroup
	}
	if profile.Division != "" {
		user.Division = profile.Division
	}
	if profile.District != "" {
		user.District = profile.District
	}
	if profile.Upazila != "" {
		user.Upazila = profile.Upazila
	}
	if profile.Avatar != "" {
		user.Avatar = profile.Avatar
	}
	return nil
}

func (f *fakeUserRepo) SetStatus(_ context.Context, email string, status domain.UserStatus) error {
	if f.err != nil {
		return f.err
	}
	user, ok := f.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	user.Status = status
	return nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, email string, role domain.UserRole) error {
	if f.err != nil {
		return f.err
	}
	user, ok := f.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	user.Role = role
	return nil
}

type fakeDonationRepo struct {
	donations []*domain.Donation
	err       error
}

func (f *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) error {
	if f.err != nil {
		return f.err
	}
	donation.ID = primitive.NewObjectID()
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}
	stored := *donation
	f.donations = append(f.donations, &stored)
	return nil
}

func (f *fakeDonationRepo) List(_ context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Donation
	for _, d := range f.donations {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDonationRepo) UpdateStatus(_ context.Context, id string, status domain.DonationStatus) error {
	if f.err != nil {
		return f.err
	}
	for _, d := range f.donations {
		if d.ID.Hex() == id {
			d.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDonationRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range f.donations {
		if d.ID.Hex() == id {
			f.donations = append(f.donations[:i], f.donations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeFundRepo struct {
	funds []domain.Fund
	err   error
}

func (f *fakeFundRepo) Create(_ context.Context, fund *domain.Fund) error {
	if f.err != nil {
		return f.err
	}
	fund.ID = primitive.NewObjectID()
	if fund.Date.IsZero() {
		fund.Date = time.Now().UTC()
	}
	f.funds = append(f.funds, *fund)
	return nil
}

func (f *fakeFundRepo) List(context.Context) ([]domain.Fund, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Fund(nil), f.funds...), nil
}

func (f *fakeFundRepo) Total(context.Context) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var total float64
	for _, fund := range f.funds {
		total += fund.Amount
	}
	return total, nil
}

type fakeGeoRepo struct {
	divisions []domain.Division
	districts []domain.District
}

func (f *fakeGeoRepo) ListDivisions(context.Context) ([]domain.Division, error) {
	return append([]domain.Division(nil), f.divisions...), nil
}

func (f *fakeGeoRepo) ListDistricts(_ context.Context, divisionID string) ([]domain.District, error) {
	var out []domain.District
	for _, d := range f.districts {
		if divisionID != "" && d.DivisionID != divisionID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeGeoRepo) SeedDivisions(_ context.Context, divisions []domain.Division) error {
	for _, d := range divisions {
		replaced := false
		for i := range f.divisions {
			if f.divisions[i].ID == d.ID {
				f.divisions[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			f.divisions = append(f.divisions, d)
		}
	}
	return nil
}

func (f *fakeGeoRepo) SeedDistricts(_ context.Context, districts []domain.District) error {
	for _, d := range districts {
		replaced := false
		for i := range f.districts {
			if f.districts[i].ID == d.ID {
				f.districts[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			f.districts = append(f.districts, d)
		}
	}
	return nil
}

type fakePayments struct {
	secret     string
	err        error
	calls      int
	lastAmount int64
}

func (f *fakePayments) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	f.calls++
	f.lastAmount = amountMinor
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}
