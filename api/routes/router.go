package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tcghub/tcghub-backend/api/controllers"
	"github.com/tcghub/tcghub-backend/api/middleware"
	"github.com/tcghub/tcghub-backend/pkg/auth/session"
	"github.com/tcghub/tcghub-backend/pkg/config"
	"github.com/tcghub/tcghub-backend/pkg/logger"
	"github.com/tcghub/tcghub-backend/pkg/metrics"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.RequestMetrics
	Sessions    session.AccessSessionChecker
	Health      *controllers.HealthController
	Auth        *controllers.AuthController
	Cards       *controllers.CardsController
	Shops       *controllers.ShopsController
	Collections *controllers.CollectionsController
	Checkout    *controllers.CheckoutController
	Orders      *controllers.OrdersController
}

// New assembles the HTTP router.
func New(deps Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(deps.Logger))
	router.Use(middleware.Logging(deps.Logger))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.App.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", deps.Health.Live)
	router.Get("/readyz", deps.Health.Ready)
	router.Handle("/metrics", promhttp.Handler())

	authenticated := middleware.Auth(deps.Config.JWT, deps.Sessions)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/logout", deps.Auth.Logout)
				r.Get("/me", deps.Auth.Me)
				r.Put("/me", deps.Auth.UpdateProfile)
			})
		})

		api.Route("/cards", func(r chi.Router) {
			r.Get("/", deps.Cards.Search)
			r.Get("/facets", deps.Cards.Facets)
			r.Get("/{cardID}", deps.Cards.Get)
			r.With(authenticated).Post("/{cardID}/prices", deps.Cards.RecordPrice)
		})

		api.Route("/shops", func(r chi.Router) {
			r.Get("/", deps.Shops.List)
			r.Get("/{shopID}", deps.Shops.Get)
		})

		api.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", deps.Collections.List)
				r.Post("/", deps.Collections.Create)
				r.Get("/wishlist", deps.Collections.Wishlist)
				r.Get("/{collectionID}", deps.Collections.Get)
				r.Put("/{collectionID}", deps.Collections.Rename)
				r.Delete("/{collectionID}", deps.Collections.Delete)
				r.Put("/{collectionID}/cards/{cardID}", deps.Collections.SetCard)
				r.Delete("/{collectionID}/cards/{cardID}", deps.Collections.RemoveCard)
			})

			r.Post("/checkout", deps.Checkout.Execute)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", deps.Orders.List)
				r.Get("/{deliveryID}", deps.Orders.Get)
			})
		})
	})

	return router
}
