// Package http wires the chi router: public auth routes, the JWT-protected
// API, and the operational endpoints.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authpkg "github.com/mtilda/chipin/internal/auth"
	authHandler "github.com/mtilda/chipin/internal/http/auth"
	balanceHandler "github.com/mtilda/chipin/internal/http/balance"
	expenseHandler "github.com/mtilda/chipin/internal/http/expense"
	groupHandler "github.com/mtilda/chipin/internal/http/group"
	settlementHandler "github.com/mtilda/chipin/internal/http/settlement"
	"github.com/mtilda/chipin/internal/middleware"
)

func New(
	jwtManager *authpkg.JWTManager,
	allowedOrigins []string,
	authV1 *authHandler.Handler,
	groupsV1 *groupHandler.Handler,
	expensesV1 *expenseHandler.Handler,
	settlementsV1 *settlementHandler.Handler,
	balancesV1 *balanceHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestLogger)
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))
			r.Use(chimw.AllowContentType("application/json"))

			r.Get("/me", authV1.Me)

			r.Route("/groups", func(r chi.Router) {
				groupsV1.Routes(r)
				r.Get("/{groupID}/balances", balancesV1.GroupBalances)
			})

			r.Route("/trips/{tripID}", func(r chi.Router) {
				r.Route("/expenses", expensesV1.TripRoutes)
				r.Route("/settlements", settlementsV1.TripRoutes)
				r.Get("/balances", balancesV1.TripBalances)
			})

			r.Delete("/expenses/{expenseID}", expensesV1.Delete)
			r.Route("/settlements/{settlementID}", settlementsV1.ItemRoutes)
		})
	})

	return router
}
