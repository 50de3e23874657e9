package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	"github.com/freshmart/storefront/internal/service/models/order"
	"github.com/freshmart/storefront/internal/service/models/product"
	"github.com/freshmart/storefront/internal/service/models/promotion"
	"github.com/freshmart/storefront/internal/service/models/store"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/freshmart/storefront/internal/service/services/authsvc"
	createstore "github.com/freshmart/storefront/internal/transport/http/create_store"
	listcategories "github.com/freshmart/storefront/internal/transport/http/list_categories"
	listorders "github.com/freshmart/storefront/internal/transport/http/list_orders"
	listproducts "github.com/freshmart/storefront/internal/transport/http/list_products"
	listpromotions "github.com/freshmart/storefront/internal/transport/http/list_promotions"
	liststores "github.com/freshmart/storefront/internal/transport/http/list_stores"
	"github.com/freshmart/storefront/internal/transport/http/login"
	loyaltysummary "github.com/freshmart/storefront/internal/transport/http/loyalty_summary"
	authmw "github.com/freshmart/storefront/internal/transport/http/middleware/auth"
	placeorder "github.com/freshmart/storefront/internal/transport/http/place_order"
	"github.com/freshmart/storefront/internal/transport/http/register"
	"github.com/freshmart/storefront/pkg/http/middleware/trace"
	"github.com/freshmart/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	PlaceOrder(ctx context.Context, model order.PlaceOrderModel) (*order.Order, error)
	GetOrders(ctx context.Context, model order.QueryOrdersModel) ([]order.Order, error)
}

type loyaltyService interface {
	Summary(ctx context.Context, userID int64, limit int) (*loyalty.Summary, error)
}

type catalogService interface {
	ListProducts(ctx context.Context, filter product.QueryProductsModel) (*product.Page, error)
	ListCategories(ctx context.Context) ([]category.Category, error)
	ListPromotions(ctx context.Context) ([]promotion.Promotion, error)
}

type storeService interface {
	ListStores(ctx context.Context, filter store.QueryStoresModel) ([]store.Store, error)
	CreateStore(ctx context.Context, st store.Store) (*store.Store, error)
}

type authService interface {
	Register(ctx context.Context, model authsvc.RegisterModel) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	tokens  *auth.TokenService
	orders  orderService
	loyalty loyaltyService
	catalog catalogService
	stores  storeService
	auth    authService
}

func NewHTTPTransport(
	tokens *auth.TokenService,
	orders orderService,
	loyalty loyaltyService,
	catalog catalogService,
	stores storeService,
	authSvc authService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		tokens:  tokens,
		orders:  orders,
		loyalty: loyalty,
		catalog: catalog,
		stores:  stores,
		auth:    authSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Orders and
// loyalty require a bearer token; the rest of the API is public.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Get("/products", h.listProducts)
		r.Get("/categories", h.listCategories)
		r.Get("/promotions", h.listPromotions)
		r.Get("/stores", h.listStores)
		r.Post("/stores", h.createStore)

		r.Group(func(r chi.Router) {
			r.Use(authmw.NewAuthMiddleware(h.tokens))
			r.Get("/orders", h.listOrders)
			r.Post("/orders", h.placeOrder)
			r.Get("/loyalty", h.loyaltySummary)
		})
	})
}

func (h *HTTPTransport) register(w http.ResponseWriter, r *http.Request) {
	register.Register(w, r, h.auth)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	login.Login(w, r, h.auth)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	listcategories.ListCategories(w, r, h.catalog)
}

func (h *HTTPTransport) listPromotions(w http.ResponseWriter, r *http.Request) {
	listpromotions.ListPromotions(w, r, h.catalog)
}

func (h *HTTPTransport) listStores(w http.ResponseWriter, r *http.Request) {
	liststores.ListStores(w, r, h.stores)
}

func (h *HTTPTransport) createStore(w http.ResponseWriter, r *http.Request) {
	createstore.CreateStore(w, r, h.stores)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orders)
}

func (h *HTTPTransport) loyaltySummary(w http.ResponseWriter, r *http.Request) {
	loyaltysummary.GetSummary(w, r, h.loyalty)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
