package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra/geoip"
	"server/internal/middleware"
)

// Options carries everything the router needs beyond the handler
// container.
type Options struct {
	Verifier        middleware.TokenVerifier
	AdminLookup     middleware.UserLookup
	Logger          zerolog.Logger
	Countries       geoip.CountryResolver
	CORSOrigins     []string
	RateLimitPerMin int
}

// NewRouter wires every route with its guard chain: none, identity, or
// identity+admin. Each endpoint is registered exactly once.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger, opts.Countries),
		middleware.CORS(opts.CORSOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	authed := middleware.Authenticate(opts.Verifier)
	admin := middleware.RequireAdmin(opts.AdminLookup)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/users", func(r chi.Router) {
		r.Put("/", app.UsersUpsert)
		r.Get("/{email}", app.UsersGet)

		r.With(authed).Patch("/{email}", app.UsersUpdateSelf)

		r.Group(func(r chi.Router) {
			r.Use(authed, admin)
			r.Get("/", app.UsersList)
			r.Patch("/{email}/status", app.UsersSetStatus)
			r.Patch("/{email}/role", app.UsersSetRole)
		})
	})

	r.Get("/v1/donors", app.DonorsList)
	r.Get("/v1/divisions", app.DivisionsList)
	r.Get("/v1/districts", app.DistrictsList)

	r.Route("/v1/donations", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", app.DonationsCreate)
		r.Get("/", app.DonationsList)
		r.Patch("/{id}/status", app.DonationsUpdateStatus)
		r.With(admin).Delete("/{id}", app.DonationsDelete)
	})

	r.Route("/v1/funds", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", app.FundsCreate)
		r.Get("/", app.FundsList)
		r.With(admin).Get("/total", app.FundsTotal)
	})

	r.With(authed).Post("/v1/payments/intent", app.PaymentsCreateIntent)

	return r
}
