package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
	"github.com/ecoscan/ecoscan-api/internal/usecase/query"
)

// Commands groups the write-side use cases
type Commands struct {
	RegisterUser   *command.RegisterUserHandler
	LoginUser      *command.LoginUserHandler
	AddFavorite    *command.AddFavoriteHandler
	RemoveFavorite *command.RemoveFavoriteHandler
}

// Queries groups the read-side use cases
type Queries struct {
	GetProductByBarcode *query.GetProductByBarcodeHandler
	SearchProducts      *query.SearchProductsHandler
	GetProduct          *query.GetProductHandler
	ListAlternatives    *query.ListAlternativesHandler
	ListFavorites       *query.ListFavoritesHandler
	RecentSearches      *query.RecentSearchesHandler
}

// Handler handles HTTP requests of the EcoScan API
type Handler struct {
	commands Commands
	queries  Queries
	auth     Authenticator
	sessions SessionManager
	limiter  *RateLimiter
	metrics  *Metrics
}

// NewHandler creates a new API handler. limiter may be nil.
func NewHandler(
	commands Commands,
	queries Queries,
	authenticator Authenticator,
	sessions SessionManager,
	limiter *RateLimiter,
	metrics *Metrics,
) *Handler {
	return &Handler{
		commands: commands,
		queries:  queries,
		auth:     authenticator,
		sessions: sessions,
		limiter:  limiter,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	m := h.metrics.instrument

	// Auth
	router.HandleFunc("/api/register", m("/api/register", h.limiter.Wrap("register", h.Register))).Methods("POST")
	router.HandleFunc("/api/login", m("/api/login", h.limiter.Wrap("login", h.Login))).Methods("POST")
	router.HandleFunc("/api/logout", m("/api/logout", h.Logout)).Methods("POST")
	router.HandleFunc("/api/user", m("/api/user", h.requireUser(h.CurrentUser))).Methods("GET")

	// Products (public). search and barcode are registered before {id}.
	router.HandleFunc("/api/products/search", m("/api/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/barcode/{barcode}", m("/api/products/barcode/{barcode}", h.GetProductByBarcode)).Methods("GET")
	router.HandleFunc("/api/products/{id}/alternatives", m("/api/products/{id}/alternatives", h.ListAlternatives)).Methods("GET")
	router.HandleFunc("/api/products/{id}", m("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Favorites and history (session required)
	router.HandleFunc("/api/favorites", m("/api/favorites", h.requireUser(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/api/favorites", m("/api/favorites", h.requireUser(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/favorites/{id}", m("/api/favorites/{id}", h.requireUser(h.RemoveFavorite))).Methods("DELETE")
	router.HandleFunc("/api/search-history", m("/api/search-history", h.requireUser(h.RecentSearches))).Methods("GET")
}

// pathID parses a positive integer path variable
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
