package api

import (
	"encoding/json"
	"net/http"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/middleware"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// App holds application dependencies
type App struct {
	adapter *Adapter
	graphql http.Handler
	metrics *metrics.AppMetrics
	logger  *zap.Logger
}

// NewApp creates a new application instance. graphqlHandler is mounted at
// /graphql when non-nil.
func NewApp(adapter *Adapter, graphqlHandler http.Handler, m *metrics.AppMetrics, logger *zap.Logger) *App {
	return &App{
		adapter: adapter,
		graphql: graphqlHandler,
		metrics: m,
		logger:  logger,
	}
}

// SetupRoutes configures the HTTP routes
func (a *App) SetupRoutes(r *mux.Router) {
	// Middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RecoveryMiddleware(a.logger))
	r.Use(middleware.MetricsMiddleware(a.metrics, a.logger))

	if a.graphql != nil {
		r.Handle("/graphql", a.graphql).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	}

	// API Routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Products
	api.HandleFunc("/products", a.ListProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/search", a.SearchProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", a.GetProductHandler).Methods(http.MethodGet)

	// Cart
	api.HandleFunc("/cart", a.GetCartHandler).Methods(http.MethodGet)
	api.HandleFunc("/cart", a.ClearCartHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/summary", a.CheckoutSummaryHandler).Methods(http.MethodGet)
	api.HandleFunc("/cart/select", a.SelectItemsHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart/select-all", a.SelectAllItemsHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart/items", a.AddToCartHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id}", a.GetCartItemHandler).Methods(http.MethodGet)
	api.HandleFunc("/cart/items/{id}", a.UpdateCartItemHandler).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{id}", a.RemoveFromCartHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items/{id}/increment", a.IncrementQuantityHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id}/decrement", a.DecrementQuantityHandler).Methods(http.MethodPost)

	// Checkout
	api.HandleFunc("/checkout", a.CheckoutHandler).Methods(http.MethodPost)

	// Health
	r.HandleFunc("/health", a.HealthHandler).Methods(http.MethodGet)
}

// HealthHandler handles health check requests
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListProductsHandler handles GET /api/v1/products
func (a *App) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.adapter.Products(r.Context()))
}

// SearchProductsHandler handles GET /api/v1/products/search?q=
func (a *App) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.adapter.SearchProducts(r.Context(), r.URL.Query().Get("q")))
}

// GetProductHandler handles GET /api/v1/products/{id}
func (a *App) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := a.adapter.Product(r.Context(), mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetCartHandler handles GET /api/v1/cart
func (a *App) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := a.adapter.Cart(r.Context(), userID(r))
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// GetCartItemHandler handles GET /api/v1/cart/items/{id}
func (a *App) GetCartItemHandler(w http.ResponseWriter, r *http.Request) {
	item, ok, err := a.adapter.CartItem(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// summaryView adds display strings to a checkout summary
type summaryView struct {
	*models.CheckoutSummary
	FormattedSubtotal string `json:"formattedSubtotal"`
	FormattedTax      string `json:"formattedTax"`
	FormattedShipping string `json:"formattedShipping"`
	FormattedTotal    string `json:"formattedTotal"`
}

// CheckoutSummaryHandler handles GET /api/v1/cart/summary
func (a *App) CheckoutSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := a.adapter.CheckoutSummary(r.Context(), userID(r))
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	c := a.adapter.Currency()
	writeJSON(w, http.StatusOK, summaryView{
		CheckoutSummary:   summary,
		FormattedSubtotal: c.Price(summary.Subtotal),
		FormattedTax:      c.Price(summary.Tax),
		FormattedShipping: c.Shipping(summary.Shipping),
		FormattedTotal:    c.Price(summary.Total),
	})
}

// AddToCartHandler handles POST /api/v1/cart/items
func (a *App) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.respond(w, r)(a.adapter.AddToCart(r.Context(), userID(r), req))
}

// UpdateCartItemHandler handles PUT /api/v1/cart/items/{id}
func (a *App) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.respond(w, r)(a.adapter.UpdateCartItem(r.Context(), userID(r), mux.Vars(r)["id"], req.Quantity))
}

// RemoveFromCartHandler handles DELETE /api/v1/cart/items/{id}
func (a *App) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r)(a.adapter.RemoveFromCart(r.Context(), userID(r), mux.Vars(r)["id"]))
}

// IncrementQuantityHandler handles POST /api/v1/cart/items/{id}/increment
func (a *App) IncrementQuantityHandler(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r)(a.adapter.IncrementQuantity(r.Context(), userID(r), mux.Vars(r)["id"]))
}

// DecrementQuantityHandler handles POST /api/v1/cart/items/{id}/decrement
func (a *App) DecrementQuantityHandler(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r)(a.adapter.DecrementQuantity(r.Context(), userID(r), mux.Vars(r)["id"]))
}

// ClearCartHandler handles DELETE /api/v1/cart
func (a *App) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r)(a.adapter.ClearCart(r.Context(), userID(r)))
}

// SelectItemsHandler handles POST /api/v1/cart/select
func (a *App) SelectItemsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SelectItemsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.respond(w, r)(a.adapter.SelectItems(r.Context(), userID(r), req))
}

// SelectAllItemsHandler handles POST /api/v1/cart/select-all
func (a *App) SelectAllItemsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SelectAllRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.respond(w, r)(a.adapter.SelectAllItems(r.Context(), userID(r), req.Selected))
}

// CheckoutHandler handles POST /api/v1/checkout
func (a *App) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := a.adapter.Checkout(r.Context(), userID(r))
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// respond writes a cart envelope. Domain failures are still 200.
func (a *App) respond(w http.ResponseWriter, r *http.Request) func(*models.CartResponse, error) {
	return func(resp *models.CartResponse, err error) {
		if err != nil {
			a.internalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (a *App) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func userID(r *http.Request) string {
	return r.URL.Query().Get("user_id")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
