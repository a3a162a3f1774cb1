package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/compare"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/impact"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/matching"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/metrics"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/storage"
)

// ProductStore is the catalog source behind the API.
type ProductStore interface {
	All(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, params storage.ListParams) ([]domain.Product, int, error)
}

// Limits holds request defaults. A zero limit in a request falls back to
// these; CompareMaxItems 0 means no cap.
type Limits struct {
	RecommendDefault int
	SimilarDefault   int
	CompareMaxItems  int
}

type Server struct {
	engine  *matching.Engine
	store   ProductStore
	limits  Limits
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewServer(engine *matching.Engine, store ProductStore, limits Limits, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: engine, store: store, limits: limits, metrics: m, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/products", s.handleProductsList)
	r.Get("/products/{id}", s.handleProductGet)
	r.Get("/products/{id}/similar", s.handleSimilar)
	r.Post("/recommendations", s.handleRecommend)
	r.Post("/compare", s.handleCompare)
	r.Post("/cart/impact", s.handleCartImpact)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Catalog ----

type ProductsListResponse struct {
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Total  int              `json:"total"`
	Items  []domain.Product `json:"items"`
}

func (s *Server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := storage.ListParams{
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}
	var err error
	if params.MinPrice, err = floatParam(q.Get("min_price")); err != nil {
		badRequest(w, r, "min_price must be a number")
		return
	}
	if params.MaxPrice, err = floatParam(q.Get("max_price")); err != nil {
		badRequest(w, r, "max_price must be a number")
		return
	}
	if params.Limit, err = intParam(q.Get("limit")); err != nil {
		badRequest(w, r, "limit must be an integer")
		return
	}
	if params.Offset, err = intParam(q.Get("offset")); err != nil {
		badRequest(w, r, "offset must be an integer")
		return
	}

	items, total, err := s.store.List(r.Context(), params)
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}

	applied := params.Normalized()
	writeJSON(w, http.StatusOK, ProductsListResponse{
		Limit:  applied.Limit,
		Offset: applied.Offset,
		Total:  total,
		Items:  items,
	})
}

type ProductResponse struct {
	Product             domain.Product `json:"product"`
	SustainabilityScore int            `json:"sustainability_score"`
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{Product: p, SustainabilityScore: impact.SustainabilityScore(p)})
}

// ---- Engine ----

type SimilarResponse struct {
	Results []domain.Product `json:"results"`
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"))
	if err != nil {
		badRequest(w, r, "limit must be an integer")
		return
	}
	if limit == 0 {
		limit = s.limits.SimilarDefault
	}

	target, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	all, err := s.store.All(r.Context())
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}

	results := s.engine.Similar(target, all, limit)
	s.observeResults("similar", len(results))
	writeJSON(w, http.StatusOK, SimilarResponse{Results: results})
}

type RecommendRequest struct {
	Preferences *domain.UserPreferences `json:"preferences"`
	ExcludeID   string                  `json:"exclude_id"`
	Limit       int                     `json:"limit"`
}

type RecommendResponse struct {
	Results []domain.ProductRecommendation `json:"results"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("decode recommend request", zap.Error(err))
		badRequest(w, r, "invalid JSON")
		return
	}

	prefs := domain.DefaultPreferences()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	for _, f := range prefs.SustainabilityFactors {
		if _, err := domain.ParseFactorID(string(f.ID)); err != nil {
			s.logger.Warn("ignoring sustainability factor", zap.Error(err),
				zap.String("request_id", requestIDFrom(r.Context())))
		}
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.limits.RecommendDefault
	}

	all, err := s.store.All(r.Context())
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}

	results := s.engine.Recommend(all, prefs, req.ExcludeID, limit)
	s.observeResults("recommend", len(results))
	writeJSON(w, http.StatusOK, RecommendResponse{Results: results})
}

type CompareRequest struct {
	ProductIDs []string `json:"product_ids"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("decode compare request", zap.Error(err))
		badRequest(w, r, "invalid JSON")
		return
	}

	ids := dedupe(req.ProductIDs)
	if s.limits.CompareMaxItems > 0 && len(ids) > s.limits.CompareMaxItems {
		badRequest(w, r, fmt.Sprintf("at most %d products can be compared", s.limits.CompareMaxItems))
		return
	}

	candidates := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := s.lookup(w, r, id)
		if !ok {
			return
		}
		candidates = append(candidates, p)
	}

	result := compare.Generate(candidates)
	s.observeResults("compare", len(candidates))
	writeJSON(w, http.StatusOK, result)
}

type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type CartImpactRequest struct {
	Items []CartItemRequest `json:"items"`
}

func (s *Server) handleCartImpact(w http.ResponseWriter, r *http.Request) {
	var req CartImpactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("decode cart request", zap.Error(err))
		badRequest(w, r, "invalid JSON")
		return
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := s.lookup(w, r, it.ProductID)
		if !ok {
			return
		}
		items = append(items, domain.CartItem{Product: p, Quantity: it.Quantity, Color: it.Color, Size: it.Size})
	}
	writeJSON(w, http.StatusOK, impact.CartTotals(items))
}

// ---- helpers ----

// lookup writes the error response itself and reports whether the caller
// may continue.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (domain.Product, bool) {
	if id == "" {
		badRequest(w, r, "missing product id")
		return domain.Product{}, false
	}
	p, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		notFound(w, r, fmt.Sprintf("product %q not found", id))
		return domain.Product{}, false
	}
	if err != nil {
		s.storeFailure(w, r, err)
		return domain.Product{}, false
	}
	return p, true
}

func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("catalog store failure", zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestIDFrom(r.Context())))
	internalError(w, r, "catalog unavailable")
}

func (s *Server) observeResults(operation string, n int) {
	if s.metrics != nil {
		s.metrics.ObserveResults(operation, n)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
