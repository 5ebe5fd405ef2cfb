package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/infra/identity"
)

// tokenVerifier maps literal tokens to principal emails.
type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (*identity.Principal, error) {
	if email, ok := v[token]; ok {
		return &identity.Principal{Email: email}, nil
	}
	return nil, errors.New("rejected")
}

type userStore map[string]*domain.User

func (s userStore) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	s[user.Email] = user
	return user, nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s userStore) List(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s {
		out = append(out, *u)
	}
	return out, nil
}

func (s userStore) ListDonors(context.Context, domain.DonorFilter) ([]domain.User, error) {
	return nil, nil
}

func (s userStore) UpdateProfile(context.Context, string, domain.UserProfile) error { return nil }
func (s userStore) SetStatus(context.Context, string, domain.UserStatus) error      { return nil }
func (s userStore) SetRole(context.Context, string, domain.UserRole) error          { return nil }

type donationStore struct{}

func (donationStore) Create(context.Context, *domain.Donation) error { return nil }
func (donationStore) List(context.Context, domain.DonationStatus) ([]domain.Donation, error) {
	return nil, nil
}
func (donationStore) UpdateStatus(context.Context, string, domain.DonationStatus) error {
	return domain.ErrNotFound
}
func (donationStore) Delete(context.Context, string) error { return domain.ErrNotFound }

type geoStore struct{}

func (geoStore) ListDivisions(context.Context) ([]domain.Division, error) { return nil, nil }
func (geoStore) ListDistricts(context.Context, string) ([]domain.District, error) {
	return nil, nil
}
func (geoStore) SeedDivisions(context.Context, []domain.Division) error { return nil }
func (geoStore) SeedDistricts(context.Context, []domain.District) error { return nil }

type fundStore struct{}

func (fundStore) Create(context.Context, *domain.Fund) error  { return nil }
func (fundStore) List(context.Context) ([]domain.Fund, error) { return nil, nil }
func (fundStore) Total(context.Context) (float64, error)      { return 0, nil }

func newTestRouter() http.Handler {
	users := userStore{
		"admin@example.com": {Email: "admin@example.com", Role: domain.UserRoleAdmin, Status: domain.UserStatusActive},
		"donor@example.com": {Email: "donor@example.com", Role: domain.UserRoleDonor, Status: domain.UserStatusActive},
	}
	app := handlers.NewApp(users, donationStore{}, fundStore{}, geoStore{}, nil, zerolog.Nop())

	return NewRouter(app, Options{
		Verifier: tokenVerifier{
			"admin-token": "admin@example.com",
			"donor-token": "donor@example.com",
		},
		AdminLookup: users,
		Logger:      zerolog.Nop(),
	})
}

func TestRouter_GuardChains(t *testing.T) {
	router := newTestRouter()
	donationID := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{"health is open", "GET", "/v1/healthz", "", 200},
		{"donor listing is open", "GET", "/v1/donors", "", 200},
		{"divisions are open", "GET", "/v1/divisions", "", 200},
		{"districts are open", "GET", "/v1/districts", "", 200},
		{"user list needs a token", "GET", "/v1/users/", "", 401},
		{"user list rejects bad token", "GET", "/v1/users/", "bogus", 401},
		{"user list rejects non-admin", "GET", "/v1/users/", "donor-token", 403},
		{"user list allows admin", "GET", "/v1/users/", "admin-token", 200},
		{"donation list needs a token", "GET", "/v1/donations/", "", 401},
		{"donation delete needs a token", "DELETE", "/v1/donations/" + donationID, "", 401},
		{"donation delete rejects non-admin", "DELETE", "/v1/donations/" + donationID, "donor-token", 403},
		{"donation delete as admin reaches handler", "DELETE", "/v1/donations/" + donationID, "admin-token", 404},
		{"fund total rejects non-admin", "GET", "/v1/funds/total", "donor-token", 403},
		{"fund total allows admin", "GET", "/v1/funds/total", "admin-token", 200},
		{"payment intent needs a token", "POST", "/v1/payments/intent", "", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("%s %s: got status %d, want %d", tt.method, tt.target, rr.Code, tt.wantStatus)
			}
		})
	}
}
