package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/catalog"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/matching"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/metrics"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/storage"
)

const (
	dressID   = "organic-cotton-dress"
	shirtID   = "hemp-linen-shirt"
	sweaterID = "recycled-wool-sweater"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	products, err := catalog.New().Products()
	require.NoError(t, err)

	srv := NewServer(
		matching.NewEngine(matching.DefaultWeights()),
		storage.NewMemoryStore(products),
		Limits{RecommendDefault: 5, SimilarDefault: 4, CompareMaxItems: 2},
		metrics.New(),
		zap.NewNop(),
	)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode, "GET %s", url)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url string, body any, wantStatus int, out any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode, "POST %s", url)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func productIDs(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var got map[string]string
	resp := getJSON(t, ts.URL+"/health", http.StatusOK, &got)
	assert.Equal(t, "ok", got["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestGETProducts_FiltersAndSort(t *testing.T) {
	ts := newTestServer(t)

	var got ProductsListResponse
	getJSON(t, ts.URL+"/products?sort=price_desc&limit=2", http.StatusOK, &got)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Limit)
	assert.Equal(t, 0, got.Offset)
	assert.Equal(t, []string{sweaterID, dressID}, productIDs(got.Items))

	got = ProductsListResponse{}
	getJSON(t, ts.URL+"/products?category=Tops", http.StatusOK, &got)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 20, got.Limit)
	assert.Equal(t, []string{shirtID}, productIDs(got.Items))

	got = ProductsListResponse{}
	getJSON(t, ts.URL+"/products?min_price=160&max_price=200", http.StatusOK, &got)
	assert.Equal(t, []string{dressID}, productIDs(got.Items))

	getJSON(t, ts.URL+"/products?limit=ten", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/products?min_price=cheap", http.StatusBadRequest, nil)
}

func TestGETProduct_IncludesSustainabilityScore(t *testing.T) {
	ts := newTestServer(t)

	for id, want := range map[string]int{dressID: 22, shirtID: 15, sweaterID: 82} {
		var got ProductResponse
		getJSON(t, ts.URL+"/products/"+id, http.StatusOK, &got)
		assert.Equal(t, id, got.Product.ID)
		assert.Equal(t, want, got.SustainabilityScore, id)
	}
}

func TestGETProduct_NotFoundIsProblem(t *testing.T) {
	ts := newTestServer(t)

	var p Problem
	resp := getJSON(t, ts.URL+"/products/nope", http.StatusNotFound, &p)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, ProblemTypeNotFound, p.Type)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "/products/nope", p.Instance)
}

func TestGETSimilar(t *testing.T) {
	ts := newTestServer(t)

	var got SimilarResponse
	getJSON(t, ts.URL+"/products/"+dressID+"/similar", http.StatusOK, &got)
	// shirt is closer in price than the sweater; neither shares category,
	// materials or certifications with the dress
	assert.Equal(t, []string{shirtID, sweaterID}, productIDs(got.Results))

	got = SimilarResponse{}
	getJSON(t, ts.URL+"/products/"+dressID+"/similar?limit=1", http.StatusOK, &got)
	assert.Equal(t, []string{shirtID}, productIDs(got.Results))

	getJSON(t, ts.URL+"/products/nope/similar", http.StatusNotFound, nil)
}

func TestPOSTRecommendations_Defaults(t *testing.T) {
	ts := newTestServer(t)

	var got RecommendResponse
	postJSON(t, ts.URL+"/recommendations", map[string]any{}, http.StatusOK, &got)
	require.Len(t, got.Results, 3)

	ids := []string{got.Results[0].Product.ID, got.Results[1].Product.ID, got.Results[2].Product.ID}
	assert.Equal(t, []string{dressID, sweaterID, shirtID}, ids)

	top := got.Results[0]
	assert.InDelta(t, 0.43, top.SustainabilityMatch, 1e-9)
	assert.Equal(t, []string{
		"Within your budget",
		"Matches your preferred categories",
		"Has preferred certifications",
	}, top.Reasons)
	assert.Contains(t, top.Highlights, "Fair Trade certified")
}

func TestPOSTRecommendations_ExcludeAndPreferences(t *testing.T) {
	ts := newTestServer(t)

	var got RecommendResponse
	postJSON(t, ts.URL+"/recommendations", RecommendRequest{ExcludeID: dressID, Limit: 1}, http.StatusOK, &got)
	require.Len(t, got.Results, 1)
	assert.Equal(t, sweaterID, got.Results[0].Product.ID)

	prefs := domain.DefaultPreferences()
	prefs.Categories = []string{"Tops"}
	prefs.SustainabilityFactors = append(prefs.SustainabilityFactors,
		domain.SustainabilityFactor{ID: "vegan", Name: "Vegan", Weight: 1})

	got = RecommendResponse{}
	postJSON(t, ts.URL+"/recommendations", RecommendRequest{Preferences: &prefs}, http.StatusOK, &got)
	require.Len(t, got.Results, 3)
	for _, r := range got.Results {
		if r.Product.ID == shirtID {
			assert.Equal(t, 1.0, r.CategoryMatch)
		} else {
			assert.Equal(t, 0.3, r.CategoryMatch)
		}
	}
}

func TestPOSTRecommendations_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/recommendations", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPOSTCompare(t *testing.T) {
	ts := newTestServer(t)

	var got domain.SustainabilityComparison
	postJSON(t, ts.URL+"/compare", CompareRequest{ProductIDs: []string{dressID, sweaterID, dressID}}, http.StatusOK, &got)
	assert.Equal(t, []string{dressID, sweaterID}, productIDs(got.Products))
	require.NotNil(t, got.BestWaterSaver)
	assert.Equal(t, sweaterID, got.BestWaterSaver.ID)
	require.NotNil(t, got.MostCertifications)
	assert.Equal(t, dressID, got.MostCertifications.ID)
	assert.Equal(t, map[string]int{dressID: 22, sweaterID: 82}, got.SustainabilityScore)
	assert.Equal(t, domain.AverageImpact{WaterSaved: 5600, CO2Reduced: 9.3, RecycledMaterials: 50}, got.AverageImpact)
}

func TestPOSTCompare_Errors(t *testing.T) {
	ts := newTestServer(t)

	var p Problem
	postJSON(t, ts.URL+"/compare", CompareRequest{ProductIDs: []string{dressID, shirtID, sweaterID}}, http.StatusBadRequest, &p)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)

	postJSON(t, ts.URL+"/compare", CompareRequest{ProductIDs: []string{dressID, "nope"}}, http.StatusNotFound, nil)

	var empty domain.SustainabilityComparison
	postJSON(t, ts.URL+"/compare", CompareRequest{}, http.StatusOK, &empty)
	assert.Empty(t, empty.Products)
	assert.Nil(t, empty.BestWaterSaver)
}

func TestPOSTCartImpact(t *testing.T) {
	ts := newTestServer(t)

	req := CartImpactRequest{Items: []CartItemRequest{
		{ProductID: dressID, Quantity: 2, Color: "Sage", Size: "M"},
		{ProductID: sweaterID, Quantity: 1},
		{ProductID: shirtID, Quantity: 0},
	}}

	var got domain.CartImpact
	postJSON(t, ts.URL+"/cart/impact", req, http.StatusOK, &got)
	assert.Equal(t, 3, got.TotalItems)
	assert.InDelta(t, 607, got.TotalPrice, 1e-9)
	assert.Equal(t, 13900.0, got.TotalWaterSaved)
	assert.InDelta(t, 21.7, got.TotalCO2Reduced, 1e-9)
	assert.Equal(t, 33.0, got.AverageRecycled)
	assert.Equal(t, 3, got.ItemsWithCertifications)
	assert.Equal(t, []string{
		"GOTS Certified", "Fair Trade", "Carbon Neutral Shipping",
		"RWS Certified", "Global Recycled Standard", "B Corp",
	}, got.Certifications)

	postJSON(t, ts.URL+"/cart/impact", CartImpactRequest{Items: []CartItemRequest{{ProductID: "nope", Quantity: 1}}}, http.StatusNotFound, nil)
}

func TestMetricsEndpoint_UsesRoutePattern(t *testing.T) {
	ts := newTestServer(t)

	getJSON(t, ts.URL+"/products/"+dressID, http.StatusOK, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `route="/products/{id}"`)
	assert.NotContains(t, string(body), dressID)
}
