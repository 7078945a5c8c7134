package webapi

import (
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/recommend"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Models  int    `json:"models"`
}

// ErrorResponse is returned for errors. Fields lists the offending inputs
// when the request was rejected as invalid.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   int          `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value,omitempty"`
	Reason  string   `json:"reason"`
	Allowed []string `json:"allowed,omitempty"`
}

// RecommendationsResponse is the result of POST /api/recommendations.
type RecommendationsResponse struct {
	Answers         recommend.AnswerSet     `json:"answers"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// ShortlistResponse is the result of POST /api/shortlist.
type ShortlistResponse struct {
	Models []ModelRef `json:"models"`
}

// ModelRef identifies a model with its display title and page link.
type ModelRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}

// ModelDetail is a full catalog entry plus its resolved related models.
type ModelDetail struct {
	models.PricingModel
	Related []ModelRef `json:"related"`
}

// ModelsResponse is the catalog listing.
type ModelsResponse struct {
	Count  int                   `json:"count"`
	Models []models.PricingModel `json:"models"`
}
