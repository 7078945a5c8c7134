// Package catalog holds the pricing model catalog: the embedded set of
// models the recommendation engine and every outer surface refer to.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pricingexcellence/pricing/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/models.yaml
var defaultData []byte

// ErrNotFound is returned when an id or alias matches no model.
var ErrNotFound = errors.New("pricing model not found")

// Catalog is an ordered, read-only set of pricing models.
type Catalog struct {
	models []models.PricingModel
	index  map[string]int // ids and aliases
}

type document struct {
	Models []models.PricingModel `yaml:"models"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document
// is invalid, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and parses a catalog document from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates a YAML catalog document against the schema, decodes it
// and checks cross references.
func Parse(data []byte) (*Catalog, error) {
	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("schema validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(doc.Models)
}

// New builds a catalog from models in display order. Ids and aliases must
// be unique and every related model must resolve.
func New(ms []models.PricingModel) (*Catalog, error) {
	c := &Catalog{
		models: append([]models.PricingModel(nil), ms...),
		index:  make(map[string]int, len(ms)),
	}

	var errs []error
	for i, m := range c.models {
		if _, dup := c.index[m.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate model id %q", m.ID))
			continue
		}
		c.index[m.ID] = i
	}
	for i, m := range c.models {
		for _, a := range m.Aliases {
			if _, dup := c.index[a]; dup {
				errs = append(errs, fmt.Errorf("model %q: alias %q already names a model", m.ID, a))
				continue
			}
			c.index[a] = i
		}
	}
	for _, m := range c.models {
		for _, rel := range m.RelatedModels {
			if _, ok := c.index[rel]; !ok {
				errs = append(errs, fmt.Errorf("model %q: related model %q not found", m.ID, rel))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of models.
func (c *Catalog) Len() int { return len(c.models) }

// All returns every model in display order.
func (c *Catalog) All() []models.PricingModel {
	return append([]models.PricingModel(nil), c.models...)
}

// Get resolves an id or alias.
func (c *Catalog) Get(id string) (models.PricingModel, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.PricingModel{}, false
	}
	return c.models[i], true
}

// Lookup is Get with an error wrapping ErrNotFound for unknown ids.
func (c *Catalog) Lookup(id string) (models.PricingModel, error) {
	m, ok := c.Get(id)
	if !ok {
		return models.PricingModel{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return m, nil
}

// Related returns the models listed as related to id, in listed order.
func (c *Catalog) Related(id string) ([]models.PricingModel, error) {
	m, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	out := make([]models.PricingModel, 0, len(m.RelatedModels))
	for _, rel := range m.RelatedModels {
		if r, ok := c.Get(rel); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Criteria narrows a catalog listing. Zero fields match everything.
type Criteria struct {
	RiskLevel     models.Level          `json:"riskLevel,omitempty" mapstructure:"riskLevel"`
	Industry      models.Industry       `json:"industry,omitempty" mapstructure:"industry"`
	HasCalculator *bool                 `json:"hasCalculator,omitempty" mapstructure:"hasCalculator"`
	Calculator    models.CalculatorType `json:"calculatorType,omitempty" mapstructure:"calculatorType"`
}

// Matches reports whether m satisfies every set criterion.
func (cr Criteria) Matches(m models.PricingModel) bool {
	if cr.RiskLevel != "" && m.RiskLevel != cr.RiskLevel {
		return false
	}
	if cr.Industry != "" && !m.ServesIndustry(cr.Industry) {
		return false
	}
	if cr.HasCalculator != nil && m.HasCalculator != *cr.HasCalculator {
		return false
	}
	if cr.Calculator != "" && m.CalculatorType != cr.Calculator {
		return false
	}
	return true
}

// Validate reports criteria values that no model could ever carry.
func (cr Criteria) Validate() error {
	var errs []error
	switch cr.RiskLevel {
	case "", models.LevelLow, models.LevelMedium, models.LevelHigh:
	default:
		errs = append(errs, fmt.Errorf("riskLevel: invalid value %q (allowed: low, medium, high)", cr.RiskLevel))
	}
	switch cr.Industry {
	case "", models.IndustryPublicSector, models.IndustryRetailCPG, models.IndustryLifeSciences,
		models.IndustryFinancialServices, models.IndustryMidMarket:
	default:
		errs = append(errs, fmt.Errorf("industry: invalid value %q", cr.Industry))
	}
	switch cr.Calculator {
	case "", models.CalculatorOutcomeBased, models.CalculatorValueBased, models.CalculatorTiered,
		models.CalculatorConsumption, models.CalculatorPlatform, models.CalculatorGeneric:
	default:
		errs = append(errs, fmt.Errorf("calculatorType: invalid value %q", cr.Calculator))
	}
	return errors.Join(errs...)
}

// Filter returns the models matching cr in display order.
func (c *Catalog) Filter(cr Criteria) []models.PricingModel {
	var out []models.PricingModel
	for _, m := range c.models {
		if cr.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}
