package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/middleware"
)

type createDonationRequest struct {
	RequesterName string `json:"requesterName"`
	BloodGroup    string `json:"bloodGroup"`
	Division      string `json:"division"`
	District      string `json:"district"`
	Upazila       string `json:"upazila"`
	Hospital      string `json:"hospital"`
	Address       string `json:"address"`
	DonationDate  string `json:"donationDate"`
	DonationTime  string `json:"donationTime"`
	Reason        string `json:"reason"`
}

// DonationsCreate handles POST /v1/donations. The requester email is
// always the verified principal and the status always starts pending,
// whatever the payload claims.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.BloodGroup == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "bloodGroup is required")
		return
	}

	donation := &domain.Donation{
		RequesterName:  canonicalName(req.RequesterName),
		RequesterEmail: middleware.PrincipalEmail(r.Context()),
		BloodGroup:     req.BloodGroup,
		Division:       req.Division,
		District:       req.District,
		Upazila:        req.Upazila,
		Hospital:       req.Hospital,
		Address:        req.Address,
		DonationDate:   req.DonationDate,
		DonationTime:   req.DonationTime,
		Reason:         req.Reason,
		Status:         domain.DonationStatusPending,
	}
	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, donation)
}

// DonationsList handles GET /v1/donations, newest first, optionally
// narrowed by the `status` query parameter.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	status := domain.DonationStatus(r.URL.Query().Get("status"))
	if status != "" && !domain.ValidDonationStatus(status) {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}

	donations, err := a.Donations.List(r.Context(), status)
	if err != nil {
		a.fail(w, err)
		return
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": donations})
}

// DonationsUpdateStatus handles PATCH /v1/donations/{id}/status. The
// body must carry a status from the known set.
func (a *App) DonationsUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.DonationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Status == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "status is required")
		return
	}
	if !domain.ValidDonationStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := a.Donations.UpdateStatus(r.Context(), id, req.Status); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// DonationsDelete handles DELETE /v1/donations/{id} (admin only).
func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Donations.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id})
}
