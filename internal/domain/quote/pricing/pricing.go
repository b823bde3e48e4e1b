// Package pricing is the pure quote calculator. It has no I/O and no
// shared state; identical inputs always produce identical results.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"squeegee-samurai/go_backend/internal/domain/quote"
)

// FirstTimeUplift is the surcharge applied to a first cleaning, as a
// fraction of the per-visit price. Never applied to the one-time tier.
const FirstTimeUplift = 0.30

// UpliftService is the additionalServices entry that requests the uplift.
const UpliftService = "First-Time Uplift"

const (
	segmentCommercial  = "Commercial"
	segmentResidential = "Residential"

	oneTimeTierName = "One-Time Clean"
)

// Tier is a commercial storefront pricing plan: a per-pane rate and the
// multiplier that projects one visit onto a monthly cost.
type Tier struct {
	Name              string
	Badge             string
	PerPaneCents      int64
	MonthlyMultiplier float64
}

var commercialTiers = []Tier{
	{Name: "Weekly Exterior", Badge: "Best Appearance", PerPaneCents: 425, MonthlyMultiplier: 4.33},
	{Name: "Biweekly Exterior", Badge: "Most Popular", PerPaneCents: 475, MonthlyMultiplier: 2.1667},
	{Name: "Monthly Exterior", Badge: "Lowest Cost", PerPaneCents: 550, MonthlyMultiplier: 1},
	{Name: "Monthly Interior + Exterior", Badge: "Interior + Exterior", PerPaneCents: 700, MonthlyMultiplier: 1},
	{Name: "Quarterly Interior + Exterior", Badge: "Interior + Exterior", PerPaneCents: 800, MonthlyMultiplier: 1.0 / 3},
	{Name: oneTimeTierName, Badge: "One-Time", PerPaneCents: 1500, MonthlyMultiplier: 0},
}

// Residential per-window rates, in cents.
const (
	exteriorRateCents   = 1000
	interiorRateCents   = 500
	secondStoryCents    = 200
	thirdPlusStoryCents = 400
	screenRateCents     = 500
)

var residentialFrequencies = map[string]bool{
	"One-Time":  true,
	"Monthly":   true,
	"Quarterly": true,
}

// Tiers returns the commercial tier table in display order.
func Tiers() []Tier {
	out := make([]Tier, len(commercialTiers))
	copy(out, commercialTiers)
	return out
}

func tierByName(name string) (Tier, bool) {
	for _, t := range commercialTiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// Compute prices a submission. Errors are validation errors: missing or
// negative counts, or selector values outside the supported sets.
func Compute(sub quote.Submission) (quote.Result, error) {
	switch strings.TrimSpace(sub.FormInput.PropertyType) {
	case segmentCommercial:
		return computeCommercial(sub.FormInput)
	case segmentResidential:
		return computeResidential(sub.FormInput)
	case "":
		return quote.Result{}, errors.New("propertyType is required")
	default:
		return quote.Result{}, fmt.Errorf("unknown propertyType %q", sub.FormInput.PropertyType)
	}
}

func computeCommercial(f quote.FormInput) (quote.Result, error) {
	if f.WindowCount == nil {
		return quote.Result{}, errors.New("windowCount is required")
	}
	panes := *f.WindowCount
	if panes < 0 {
		return quote.Result{}, errors.New("windowCount must not be negative")
	}

	tier, ok := tierByName(strings.TrimSpace(f.ServiceType))
	if !ok {
		return quote.Result{}, fmt.Errorf("unknown service tier %q", f.ServiceType)
	}

	perVisit := int64(panes) * tier.PerPaneCents
	breakdown := quote.Breakdown{
		{Label: fmt.Sprintf("%s (%d panes)", tier.Name, panes), AmountCents: perVisit},
	}
	if upliftRequested(f.AdditionalServices) && tier.Name != oneTimeTierName {
		breakdown = append(breakdown, quote.Line{
			Label:       "First-Time Uplift (+30%)",
			AmountCents: roundCents(float64(perVisit) * FirstTimeUplift),
		})
	}

	return quote.Result{
		Breakdown:              breakdown,
		TotalCents:             breakdown.TotalCents(),
		Segment:                segmentCommercial,
		MonthlyEquivalentCents: roundCents(float64(perVisit) * tier.MonthlyMultiplier),
	}, nil
}

func computeResidential(f quote.FormInput) (quote.Result, error) {
	if f.WindowCount == nil {
		return quote.Result{}, errors.New("windowCount is required")
	}
	windows := *f.WindowCount
	if windows < 0 {
		return quote.Result{}, errors.New("windowCount must not be negative")
	}
	if f.ScreenCount < 0 {
		return quote.Result{}, errors.New("screenCount must not be negative")
	}
	if f.Stories < 0 {
		return quote.Result{}, errors.New("stories must not be negative")
	}
	if freq := strings.TrimSpace(f.ServiceType); freq != "" && !residentialFrequencies[freq] {
		return quote.Result{}, fmt.Errorf("unknown service frequency %q", f.ServiceType)
	}

	perWindow := int64(exteriorRateCents)
	label := fmt.Sprintf("Window Cleaning (%d windows)", windows)
	if f.InteriorExterior {
		perWindow += interiorRateCents
		label = fmt.Sprintf("Window Cleaning (%d windows, interior + exterior)", windows)
	}
	breakdown := quote.Breakdown{
		{Label: label, AmountCents: int64(windows) * perWindow},
	}

	// Stories 0 means unanswered and prices like a single story.
	switch {
	case f.Stories == 2:
		breakdown = append(breakdown, quote.Line{
			Label:       "2nd Story Upcharge",
			AmountCents: int64(windows) * secondStoryCents,
		})
	case f.Stories >= 3:
		breakdown = append(breakdown, quote.Line{
			Label:       "3rd+ Story Upcharge",
			AmountCents: int64(windows) * thirdPlusStoryCents,
		})
	}

	if f.ScreenCount > 0 {
		breakdown = append(breakdown, quote.Line{
			Label:       fmt.Sprintf("Screen Cleaning (%d screens)", f.ScreenCount),
			AmountCents: int64(f.ScreenCount) * screenRateCents,
		})
	}

	return quote.Result{
		Breakdown:  breakdown,
		TotalCents: breakdown.TotalCents(),
		Segment:    segmentResidential,
	}, nil
}

// TierQuote is one row of the commercial instant-pricing table.
type TierQuote struct {
	Tier                   string `json:"tier"`
	Badge                  string `json:"badge,omitempty"`
	PerVisitCents          int64  `json:"perVisitCents"`
	MonthlyEquivalentCents int64  `json:"monthlyEquivalentCents"`
	FirstTimeUpliftCents   int64  `json:"firstTimeUpliftCents,omitempty"`
}

// ComputeTierTable prices every commercial tier for the given pane count,
// mirroring the instant calculator on the estimate page.
func ComputeTierTable(paneCount int, firstTime bool) ([]TierQuote, error) {
	if paneCount < 0 {
		return nil, errors.New("paneCount must not be negative")
	}
	rows := make([]TierQuote, 0, len(commercialTiers))
	for _, t := range commercialTiers {
		perVisit := int64(paneCount) * t.PerPaneCents
		row := TierQuote{
			Tier:                   t.Name,
			Badge:                  t.Badge,
			PerVisitCents:          perVisit,
			MonthlyEquivalentCents: roundCents(float64(perVisit) * t.MonthlyMultiplier),
		}
		if firstTime && t.Name != oneTimeTierName {
			row.FirstTimeUpliftCents = roundCents(float64(perVisit) * FirstTimeUplift)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func upliftRequested(services []string) bool {
	for _, s := range services {
		if strings.TrimSpace(s) == UpliftService {
			return true
		}
	}
	return false
}

// roundCents rounds a non-negative cent amount half-up to an integer.
func roundCents(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
