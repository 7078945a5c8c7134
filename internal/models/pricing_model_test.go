package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingModel_Link(t *testing.T) {
	assert.Equal(t, "/models/outcome-based", PricingModel{ID: "outcome-based"}.Link())
}

func TestPricingModel_ServesIndustry(t *testing.T) {
	m := PricingModel{RelatedIndustries: []Industry{IndustryPublicSector, IndustryMidMarket}}

	assert.True(t, m.ServesIndustry(IndustryPublicSector))
	assert.True(t, m.ServesIndustry(IndustryMidMarket))
	assert.False(t, m.ServesIndustry(IndustryRetailCPG))
	assert.False(t, PricingModel{}.ServesIndustry(IndustryPublicSector))
}
