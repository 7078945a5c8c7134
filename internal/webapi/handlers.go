// Package webapi implements the JSON API over the recommendation engine,
// the model catalog and the fee calculators.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/recommend"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxBodyBytes bounds request bodies; every payload is a handful of fields.
const maxBodyBytes = 64 << 10

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store  ModelStore
	engine *recommend.Engine
}

// NewHandlers creates a new Handlers over the given catalog and engine.
func NewHandlers(store ModelStore, engine *recommend.Engine) *Handlers {
	return &Handlers{store: store, engine: engine}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Models:  h.store.Len(),
	})
}

// HandleQuestions returns the eight selector questions in order.
func (h *Handlers) HandleQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, recommend.Questions())
}

// HandleRecommend maps a complete answer set to ranked recommendations.
func (h *Handlers) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var answers recommend.AnswerSet
	if !decodeJSON(w, r, &answers) {
		return
	}

	recs, err := h.engine.Recommend(answers)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{Answers: answers, Recommendations: recs})
}

// HandleShortlist returns the quick playbook shortlist for three answers.
func (h *Handlers) HandleShortlist(w http.ResponseWriter, r *http.Request) {
	var s recommend.Situation
	if !decodeJSON(w, r, &s) {
		return
	}

	ids, err := recommend.Shortlist(s)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ShortlistResponse{Models: RefsFor(h.store, ids)})
}

// HandleModels lists catalog models, filtered by the optional risk,
// industry, calculator and calculatorType query parameters.
func (h *Handlers) HandleModels(w http.ResponseWriter, r *http.Request) {
	cr, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ms := h.store.Filter(cr)
	if ms == nil {
		ms = []models.PricingModel{}
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Count: len(ms), Models: ms})
}

// HandleModelDetail returns one model by id or alias.
func (h *Handlers) HandleModelDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("model %q not found", id))
		return
	}

	related, err := h.store.Related(m.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	detail := ModelDetail{PricingModel: m, Related: make([]ModelRef, 0, len(related))}
	for _, rm := range related {
		detail.Related = append(detail.Related, ToRef(rm))
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleOutcomeFee runs the outcome-based fee calculator. Omitted fields
// take the calculator defaults.
func (h *Handlers) HandleOutcomeFee(w http.ResponseWriter, r *http.Request) {
	in := calculator.DefaultOutcomeInput()
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := calculator.OutcomeFee(in)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleROI runs the Total Economic Impact calculator. The template query
// parameter preloads a template's inputs before the body is applied.
func (h *Handlers) HandleROI(w http.ResponseWriter, r *http.Request) {
	in := calculator.DefaultROIInput()
	if key := r.URL.Query().Get("template"); key != "" {
		tmpl, err := calculator.Template(key)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		in = tmpl.Inputs
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := calculator.ROI(in)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleROITemplates lists the TEI templates.
func (h *Handlers) HandleROITemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, calculator.Templates())
}

// RegisterRoutes registers all web API routes on the given router.
func RegisterRoutes(r chi.Router, h *Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/questions", h.HandleQuestions)
		r.Post("/recommendations", h.HandleRecommend)
		r.Post("/shortlist", h.HandleShortlist)

		r.Get("/models", h.HandleModels)
		r.Get("/models/{id}", h.HandleModelDetail)

		r.Post("/calculators/outcome-fee", h.HandleOutcomeFee)
		r.Post("/calculators/roi", h.HandleROI)
		r.Get("/calculators/roi/templates", h.HandleROITemplates)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	})
}

func criteriaFromQuery(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()
	cr := catalog.Criteria{
		RiskLevel:  models.Level(q.Get("risk")),
		Industry:   models.Industry(q.Get("industry")),
		Calculator: models.CalculatorType(q.Get("calculatorType")),
	}
	if v := q.Get("calculator"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cr, fmt.Errorf("calculator: invalid value %q (allowed: true, false)", v)
		}
		cr.HasCalculator = &b
	}
	return cr, cr.Validate()
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
// It writes a 400 response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request body: " + err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "request body must contain a single JSON object")
		return false
	}
	return true
}

// writeInputError maps validation failures to 400 and anything else to 500.
func writeInputError(w http.ResponseWriter, err error) {
	var fields []FieldError
	for _, fe := range recommend.InvalidFields(err) {
		fields = append(fields, FieldError{Field: fe.Field, Value: fe.Value, Reason: fe.Reason, Allowed: fe.Allowed})
	}
	for _, ie := range calculatorErrors(err) {
		fields = append(fields, FieldError{Field: ie.Field, Reason: ie.Reason})
	}

	switch {
	case errors.Is(err, recommend.ErrInvalidInput), errors.Is(err, calculator.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid input", Code: http.StatusBadRequest, Fields: fields})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func calculatorErrors(err error) []*calculator.InputError {
	var out []*calculator.InputError
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case *calculator.InputError:
			out = append(out, e)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(e.Unwrap())
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
