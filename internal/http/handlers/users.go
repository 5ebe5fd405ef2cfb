package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/middleware"
)

// upsertUserRequest is the body of the public profile submission. Role
// and status have no field here on purpose; values smuggled into the
// payload are dropped at decode time.
type upsertUserRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	BloodGroup string `json:"bloodGroup"`
	Division   string `json:"division"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

// UsersUpsert handles PUT /v1/users: create-or-merge keyed by email.
// First submission defaults role=donor, status=active; later ones touch
// profile fields only.
func (a *App) UsersUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email is required")
		return
	}

	user, err := a.Users.Upsert(r.Context(), &domain.User{
		Email:      email,
		Name:       canonicalName(req.Name),
		BloodGroup: req.BloodGroup,
		Division:   req.Division,
		District:   req.District,
		Upazila:    req.Upazila,
		Avatar:     req.Avatar,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// UsersList handles GET /v1/users (admin only).
func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.Users.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": users})
}

// UsersGet handles GET /v1/users/{email}. An unknown email yields an
// empty object, not an error.
func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	email := normalizeEmail(chi.URLParam(r, "email"))
	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusOK, map[string]any{})
			return
		}
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// UsersUpdateSelf handles PATCH /v1/users/{email}: a caller may update
// their own profile only, and the body cannot carry role or status.
func (a *App) UsersUpdateSelf(w http.ResponseWriter, r *http.Request) {
	email := normalizeEmail(chi.URLParam(r, "email"))
	if middleware.PrincipalEmail(r.Context()) != email {
		a.error(w, http.StatusForbidden, "forbidden", "cannot update another user's profile")
		return
	}

	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	profile.Name = canonicalName(profile.Name)

	if err := a.Users.UpdateProfile(r.Context(), email, profile); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"email": email})
}

// UsersSetStatus handles PATCH /v1/users/{email}/status (admin only):
// block or unblock an account.
func (a *App) UsersSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !domain.ValidStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be 'active' or 'blocked'")
		return
	}

	email := normalizeEmail(chi.URLParam(r, "email"))
	if err := a.Users.SetStatus(r.Context(), email, req.Status); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"email": email, "status": string(req.Status)})
}

// UsersSetRole handles PATCH /v1/users/{email}/role (admin only). This
// is the only route through which a role ever changes.
func (a *App) UsersSetRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role domain.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !domain.ValidRole(req.Role) {
		a.error(w, http.StatusBadRequest, "bad_request", "role must be 'donor' or 'admin'")
		return
	}

	email := normalizeEmail(chi.URLParam(r, "email"))
	if err := a.Users.SetRole(r.Context(), email, req.Role); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"email": email, "role": string(req.Role)})
}

// DonorsList handles GET /v1/donors: public listing of active donors,
// optionally narrowed by bloodGroup, division and district.
func (a *App) DonorsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	donors, err := a.Users.ListDonors(r.Context(), domain.DonorFilter{
		BloodGroup: q.Get("bloodGroup"),
		Division:   q.Get("division"),
		District:   q.Get("district"),
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	if donors == nil {
		donors = []domain.User{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": donors})
}
