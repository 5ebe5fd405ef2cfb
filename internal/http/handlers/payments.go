package handlers

import (
	"encoding/json"
	"math"
	"net/http"
)

type createIntentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentsCreateIntent handles POST /v1/payments/intent. The amount
// arrives in major currency units and is converted to minor units for
// the processor; the client secret comes back verbatim.
func (a *App) PaymentsCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	minor := int64(math.Round(req.Amount * 100))
	secret, err := a.Payments.CreateIntent(r.Context(), minor)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"clientSecret": secret})
}
