package webapi

import (
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/models"
)

// ModelStore provides read access to the pricing model catalog.
// *catalog.Catalog satisfies it.
type ModelStore interface {
	// Get resolves a model id or alias.
	Get(id string) (models.PricingModel, bool)
	// Filter returns the models matching the criteria in display order.
	Filter(cr catalog.Criteria) []models.PricingModel
	// Related returns the models listed as related to id.
	Related(id string) ([]models.PricingModel, error)
	// Len returns the number of models.
	Len() int
}

var _ ModelStore = (*catalog.Catalog)(nil)

// ToRef returns the reference to m.
func ToRef(m models.PricingModel) ModelRef {
	return ModelRef{ID: m.ID, Title: m.Title, Link: m.Link()}
}

// RefsFor resolves ids to refs. Unknown ids keep only their id.
func RefsFor(store ModelStore, ids []string) []ModelRef {
	refs := make([]ModelRef, 0, len(ids))
	for _, id := range ids {
		if m, ok := store.Get(id); ok {
			refs = append(refs, ToRef(m))
		} else {
			refs = append(refs, ModelRef{ID: id})
		}
	}
	return refs
}
