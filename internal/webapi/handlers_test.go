package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements ModelStore for testing.
type mockStore struct {
	models     map[string]models.PricingModel
	relatedErr error
}

func (m *mockStore) Get(id string) (models.PricingModel, bool) {
	pm, ok := m.models[id]
	return pm, ok
}

func (m *mockStore) Filter(catalog.Criteria) []models.PricingModel { return nil }

func (m *mockStore) Related(string) ([]models.PricingModel, error) {
	return nil, m.relatedErr
}

func (m *mockStore) Len() int { return len(m.models) }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	c := catalog.Default()
	engine, err := recommend.NewEngine(recommend.WithCatalog(c))
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandlers(c, engine))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

const completeBody = `{
  "outcomeMeasurability": "high",
  "clientRiskTolerance": "high",
  "relationshipMaturity": "new",
  "budgetVisibility": "fixed",
  "scopeCertainty": "clear",
  "valueClarity": "high",
  "timeline": "medium",
  "clientSophistication": "high"
}`

func TestHandleHealth(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
	assert.Equal(t, 11, resp.Models)
}

func TestHandleQuestions(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodGet, "/api/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	qs := decode[[]recommend.Question](t, rec)
	require.Len(t, qs, 8)
	assert.Equal(t, recommend.FieldOutcomeMeasurability, qs[0].Field)
	assert.Contains(t, rec.Header().Get("Content-Type"), "json")
}

func TestHandleRecommend(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodPost, "/api/recommendations", completeBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[RecommendationsResponse](t, rec)
	require.Len(t, resp.Recommendations, 2)
	first := resp.Recommendations[0]
	assert.Equal(t, "outcome-based", first.ModelID)
	assert.Equal(t, 95, first.Confidence)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "Outcome-Based Pricing", first.Title)
	assert.Equal(t, "/models/outcome-based", first.Link)
	assert.Equal(t, "value-based-roi", resp.Recommendations[1].ModelID)
	assert.Equal(t, recommend.TimelineMedium, resp.Answers.Timeline)
}

func TestHandleRecommend_InvalidInput(t *testing.T) {
	body := strings.Replace(completeBody, `"timeline": "medium"`, `"timeline": "eventually"`, 1)
	body = strings.Replace(body, `"valueClarity": "high",`, "", 1)

	rec := do(t, newRouter(t), http.MethodPost, "/api/recommendations", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "invalid input", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "valueClarity", resp.Fields[0].Field)
	assert.Equal(t, "unanswered", resp.Fields[0].Reason)
	assert.Equal(t, "timeline", resp.Fields[1].Field)
	assert.Equal(t, "eventually", resp.Fields[1].Value)
	assert.Equal(t, []string{"short", "medium", "long"}, resp.Fields[1].Allowed)
}

func TestHandleRecommend_BadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "request body is required"},
		{"malformed", "{", "invalid request body"},
		{"unknown field", `{"budget": "fixed"}`, "unknown field"},
		{"trailing data", completeBody + completeBody, "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(t), http.MethodPost, "/api/recommendations", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[ErrorResponse](t, rec).Error, tt.want)
		})
	}
}

func TestHandleShortlist(t *testing.T) {
	body := `{"outcomeMeasurability":"high","clientRiskTolerance":"low","scopeCertainty":"clear"}`
	rec := do(t, newRouter(t), http.MethodPost, "/api/shortlist", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[ShortlistResponse](t, rec)
	require.Len(t, resp.Models, 3)
	assert.Equal(t, "success-based-risk-sharing", resp.Models[0].ID)
	assert.Equal(t, "Success-Based & Risk-Sharing Models", resp.Models[0].Title)
	assert.Equal(t, "tiered-augmentation", resp.Models[1].ID)
	assert.Equal(t, "value-based-roi", resp.Models[2].ID)

	rec = do(t, newRouter(t), http.MethodPost, "/api/shortlist", `{"outcomeMeasurability":"high"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleModels(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 11, decode[ModelsResponse](t, rec).Count)

	rec = do(t, h, http.MethodGet, "/api/models?risk=high&industry=public-sector", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ModelsResponse](t, rec)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "outcome-based", resp.Models[0].ID)

	rec = do(t, h, http.MethodGet, "/api/models?calculator=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[ModelsResponse](t, rec).Count)

	rec = do(t, h, http.MethodGet, "/api/models?calculatorType=tiered", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[ModelsResponse](t, rec).Count)

	rec = do(t, h, http.MethodGet, "/api/models?risk=low&calculator=true&calculatorType=outcome-based", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"models":[]}`, rec.Body.String())
}

func TestHandleModels_BadQuery(t *testing.T) {
	h := newRouter(t)
	for _, q := range []string{"risk=extreme", "calculator=maybe", "industry=aerospace", "calculatorType=abacus"} {
		rec := do(t, h, http.MethodGet, "/api/models?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestHandleModelDetail(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/models/subscription-continuous", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[ModelDetail](t, rec)
	assert.Equal(t, "subscription-continuous-insights", detail.ID)
	require.Len(t, detail.Related, 2)
	assert.Equal(t, "platform-saas-hybrid", detail.Related[0].ID)
	assert.Equal(t, "/models/platform-saas-hybrid", detail.Related[0].Link)

	rec = do(t, h, http.MethodGet, "/api/models/barter", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, `"barter"`)
}

func TestHandleModelDetail_StoreError(t *testing.T) {
	store := &mockStore{
		models:     map[string]models.PricingModel{"x": {ID: "x", Title: "X"}},
		relatedErr: errors.New("store unavailable"),
	}
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandlers(store, recommend.Default()))

	rec := do(t, r, http.MethodGet, "/api/models/x", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "store unavailable")
}

func TestHandleOutcomeFee(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/calculators/outcome-fee", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[models.OutcomeFeeResult](t, rec)
	assert.InDelta(t, 2_860_000, res.Fee, 1e-6)

	rec = do(t, h, http.MethodPost, "/api/calculators/outcome-fee", `{"baseline":1000000,"achievementPct":100,"riskMultiplier":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[models.OutcomeFeeResult](t, rec)
	assert.InDelta(t, 2_000_000, res.Fee, 1e-6)
	assert.Equal(t, "high", res.RiskBand)

	rec = do(t, h, http.MethodPost, "/api/calculators/outcome-fee", `{"riskMultiplier":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[ErrorResponse](t, rec)
	require.Len(t, errResp.Fields, 1)
	assert.Equal(t, "riskMultiplier", errResp.Fields[0].Field)
}

func TestHandleROI(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/calculators/roi?template=supply-chain", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[models.ROIResult](t, rec)
	assert.InDelta(t, 6_040_000, res.TotalValue, 1e-6)
	assert.InDelta(t, 724_800, res.Fee, 1e-6)
	assert.Len(t, res.Timeline, 37)

	// Body fields override the template.
	rec = do(t, h, http.MethodPost, "/api/calculators/roi?template=supply-chain", `{"feePercentage":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 604_000, decode[models.ROIResult](t, rec).Fee, 1e-6)

	rec = do(t, h, http.MethodPost, "/api/calculators/roi?template=moonshot", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/calculators/roi", `{"laborSavings":-1,"feePercentage":50}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode[ErrorResponse](t, rec).Fields, 2)
}

func TestHandleROITemplates(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodGet, "/api/calculators/roi/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tmpls := decode[[]models.ROITemplate](t, rec)
	require.Len(t, tmpls, 3)
	assert.Equal(t, "change-management", tmpls[0].Key)
}

func TestUnknownAPIRoute(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/api/recommendations", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
