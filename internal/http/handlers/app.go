package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/domain"
	"server/internal/providers/payment"
)

// App is the handler container. Repositories and the payment bridge are
// injected at startup; handlers hold no other state.
type App struct {
	Users     domain.UserRepository
	Donations domain.DonationRepository
	Funds     domain.FundRepository
	Geo       domain.GeoRepository
	Payments  payment.IntentCreator
	Logger    zerolog.Logger
}

func NewApp(users domain.UserRepository, donations domain.DonationRepository, funds domain.FundRepository, geo domain.GeoRepository, payments payment.IntentCreator, logger zerolog.Logger) *App {
	return &App{
		Users:     users,
		Donations: donations,
		Funds:     funds,
		Geo:       geo,
		Payments:  payments,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

// fail maps domain sentinel errors to HTTP statuses. Anything unmapped
// is an internal error and gets logged.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing or malformed credential")
	case errors.Is(err, domain.ErrInvalidToken):
		a.error(w, http.StatusUnauthorized, "invalid_credential", "token verification failed")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "insufficient permissions")
	case errors.Is(err, domain.ErrUpstream):
		a.error(w, http.StatusBadGateway, "upstream_failure", "upstream call failed")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// canonicalName trims and title-cases a person name so listings stay
// consistent regardless of how callers typed it.
func canonicalName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	c := cases.Title(language.Und)
	return c.String(strings.ToLower(name))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
