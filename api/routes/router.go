package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rendypratama/invoicehub-backend/api/controllers"
	"github.com/rendypratama/invoicehub-backend/api/middleware"
	"github.com/rendypratama/invoicehub-backend/internal/catalog"
	"github.com/rendypratama/invoicehub-backend/internal/invoices"
	"github.com/rendypratama/invoicehub-backend/pkg/config"
	"github.com/rendypratama/invoicehub-backend/pkg/logger"
	pkgredis "github.com/rendypratama/invoicehub-backend/pkg/redis"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	IdemStore pkgredis.IdempotencyStore

	Products catalog.Service
	Invoices invoices.Service
}

// NewRouter assembles the HTTP surface: middleware chain, health checks,
// the /api routes and the static uploads directory.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.IdemStore, logg))

		r.Route("/invoice", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(deps.Invoices, logg))
			r.Get("/", controllers.ListInvoices(deps.Invoices, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(deps.Invoices, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(deps.Products, cfg.Uploads, logg))
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/search", controllers.SearchProducts(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})
	})

	fileServer := http.StripPrefix(cfg.Uploads.PublicPath+"/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Method(http.MethodGet, cfg.Uploads.PublicPath+"/*", fileServer)

	return r
}
