package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/domain"
)

type createFundRequest struct {
	Amount     float64 `json:"amount"`
	DonorName  string  `json:"donorName"`
	DonorEmail string  `json:"donorEmail"`
}

// FundsCreate handles POST /v1/funds. Amount, donor name and donor
// email are all required.
func (a *App) FundsCreate(w http.ResponseWriter, r *http.Request) {
	var req createFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	if req.DonorName == "" || req.DonorEmail == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donorName and donorEmail are required")
		return
	}

	fund := &domain.Fund{
		Amount:     req.Amount,
		DonorName:  canonicalName(req.DonorName),
		DonorEmail: normalizeEmail(req.DonorEmail),
	}
	if err := a.Funds.Create(r.Context(), fund); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, fund)
}

// FundsList handles GET /v1/funds.
func (a *App) FundsList(w http.ResponseWriter, r *http.Request) {
	funds, err := a.Funds.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	if funds == nil {
		funds = []domain.Fund{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": funds})
}

// FundsTotal handles GET /v1/funds/total (admin only).
func (a *App) FundsTotal(w http.ResponseWriter, r *http.Request) {
	total, err := a.Funds.Total(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]float64{"total": total})
}
