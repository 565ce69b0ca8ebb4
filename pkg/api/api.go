// Package api exposes the storefront over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	gotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"lightshop/pkg/cart"
	"lightshop/pkg/catalog"
	"lightshop/pkg/logger"
	"lightshop/pkg/otel"
	"lightshop/pkg/session"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handlers' dependencies.
type Server struct {
	carts      *cart.Service
	store      Pinger
	log        *logger.Logger
	tracer     trace.Tracer
	sessionTTL time.Duration
}

// New builds a Server. store is pinged by the health check.
func New(carts *cart.Service, store Pinger, log *logger.Logger, tracer trace.Tracer, sessionTTL time.Duration) *Server {
	return &Server{carts: carts, store: store, log: log, tracer: tracer, sessionTTL: sessionTTL}
}

// Handler returns the router with every route registered.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.traceMiddleware)

	r.HandleFunc("/products", s.listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", s.getProductHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/cart").Subrouter()
	api.Use(session.Middleware(s.sessionTTL))
	api.HandleFunc("", s.getCartHandler).Methods(http.MethodGet)
	api.HandleFunc("/items", s.addItemHandler).Methods(http.MethodPost)
	api.HandleFunc("/items/{id:[0-9]+}", s.removeItemHandler).Methods(http.MethodDelete)
	api.HandleFunc("/checkout", s.checkoutHandler).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// addItemRequest names the product to put in the cart.
type addItemRequest struct {
	ProductID int `json:"product_id"`
}

// checkoutResponse is the cart result plus whether the order intent was accepted.
type checkoutResponse struct {
	cart.Result
	Placed bool `json:"placed"`
}

// listProductsHandler lists the catalog filtered by category.
// @Summary List products
// @Produce json
// @Param category query string false "all, garland or decor"
// @Success 200 {array} catalog.Product
// @Failure 400 {string} string
// @Router /products [get]
func (s *Server) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listProductsHandler")
	defer span.End()

	sel, err := catalog.ParseSelection(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("catalog.selection", sel.String()))
	writeJSON(w, http.StatusOK, s.carts.Catalog().Filter(sel))
}

// getProductHandler retrieves a product by ID.
// @Summary Get product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} catalog.Product
// @Failure 404 {string} string
// @Router /products/{id} [get]
func (s *Server) getProductHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "getProductHandler")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.carts.Catalog().Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// getCartHandler returns the visitor's cart.
// @Summary Get cart
// @Produce json
// @Success 200 {object} cart.Result
// @Router /cart [get]
func (s *Server) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()

	res, err := s.carts.Get(ctx, sessionID(ctx))
	if err != nil {
		s.fail(ctx, w, "get cart", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// addItemHandler adds one unit of a product to the cart.
// @Summary Add to cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Product"
// @Success 200 {object} cart.Result
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /cart/items [post]
func (s *Server) addItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addItemHandler")
	defer span.End()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}
	res, err := s.carts.Add(ctx, sessionID(ctx), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.fail(ctx, w, "add to cart", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// removeItemHandler removes a product line from the cart.
// @Summary Remove from cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} cart.Result
// @Router /cart/items/{id} [delete]
func (s *Server) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeItemHandler")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := s.carts.Remove(ctx, sessionID(ctx), id)
	if err != nil {
		s.fail(ctx, w, "remove from cart", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// checkoutHandler confirms the order intent.
// @Summary Checkout
// @Produce json
// @Success 200 {object} checkoutResponse
// @Router /cart/checkout [post]
func (s *Server) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()

	res, placed, err := s.carts.Checkout(ctx, sessionID(ctx))
	if err != nil {
		s.fail(ctx, w, "checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{Result: res, Placed: placed})
}

// healthHandler pings the cart store.
// @Summary Health
// @Success 204
// @Failure 503 {string} string
// @Router /healthz [get]
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn(r.Context(), "health check", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := gotel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx = otel.InjectTracing(ctx, s.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	s.log.Error(ctx, op, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func sessionID(ctx context.Context) string {
	id, _ := session.ID(ctx)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
