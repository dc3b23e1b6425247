package post

import (
	"strconv"
	"strings"

	"uslugi/internal/domain"
)

// Wizard steps. Both the step-by-step and single-page creation flows run
// through this one validator set so the rules cannot drift apart.
const (
	StepTitle       = 1
	StepDescription = 2
	StepCategory    = 3
	StepImages      = 4
	StepLocation    = 5
	StepPrice       = 6
	StepSummary     = 7
)

// Draft is the accumulated wizard form state.
type Draft struct {
	Type        domain.PostType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Images      []string        `json:"images"`
	City        string          `json:"city"`
	PriceType   domain.PriceType `json:"price_type"`
	Price       string          `json:"price"`
}

// StepValid reports whether one step's data is complete. Unknown steps
// (including the summary) gate nothing.
func (d Draft) StepValid(step int) bool {
	switch step {
	case StepTitle:
		return strings.TrimSpace(d.Title) != ""
	case StepDescription:
		return strings.TrimSpace(d.Description) != ""
	case StepCategory:
		return d.CategoryID != ""
	case StepImages:
		return len(d.Images) > 0
	case StepLocation:
		return strings.TrimSpace(d.City) != ""
	case StepPrice:
		if d.PriceType == domain.PriceFree {
			return true
		}
		_, ok := d.ParsedPrice()
		return ok
	default:
		return true
	}
}

// FirstInvalidStep returns the first step that blocks submission, or 0
// when the draft is complete.
func (d Draft) FirstInvalidStep() int {
	for step := StepTitle; step <= StepPrice; step++ {
		if !d.StepValid(step) {
			return step
		}
	}
	return 0
}

// ParsedPrice parses the free-text price field. Accepts "1 200,50" style
// input; must be a positive number unless the price type is free.
func (d Draft) ParsedPrice() (float64, bool) {
	raw := strings.ReplaceAll(d.Price, " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
