// Package view projects an analysis result into the fixed set of report
// sections. Every section is guarded by presence of its parent field; a
// missing section is omitted, never an error. No computation happens
// here beyond formatting.
package view

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/microcosm-cc/bluemonday"

	"github.com/duarte/imovest/internal/analysis"
	"github.com/duarte/imovest/internal/format"
)

// notePolicy strips all markup from free-text notes; the analysis
// service is an external party and its text is untrusted.
var notePolicy = bluemonday.StrictPolicy()

type Report struct {
	HasData     bool
	Failed      bool
	FailureText string

	ListingID   string
	Property    *PropertySection
	Investment  *InvestmentSection
	Rent        *RentSection
	Metrics     *MetricsSection
	Divisions   []DivisionSection
	CostSummary []CostLine
}

type PropertySection struct {
	Location  string
	Size      string
	Bedrooms  string
	Bathrooms string
}

type InvestmentSection struct {
	PurchasePrice  string
	RemodelingCost string
	TotalCost      string
}

type RentSection struct {
	Monthly  string
	Annual   string
	Strategy string
	PerRoom  string
	PerM2    string
}

type MetricsSection struct {
	GrossYield   string
	NetYield     string
	ROI          string
	MonthlyNet   string
	AnnualNet    string
	Expenses     string
	PaybackYears string
}

type DivisionSection struct {
	Name       string
	Size       string
	TotalCost  string
	Notes      template.HTML
	Conditions []ConditionLine
	CostItems  []CostLine
	Images     []string
}

type ConditionLine struct {
	Name string
	Tier format.Tier
}

type CostLine struct {
	Label  string
	Amount string
}

// Empty is the "no analysis data" state, shown when no snapshot exists
// or the stored one could not be parsed.
func Empty() Report {
	return Report{}
}

// Build turns a decoded result into a renderable report. An
// unsuccessful result yields only the failure message; none of the
// data sections are populated even if the payload carries them.
func Build(res *analysis.Result) Report {
	if res == nil || !res.Success {
		r := Report{HasData: true, Failed: true, FailureText: "The analysis could not be completed."}
		if res != nil && res.Error != "" {
			r.FailureText = res.Error
		}
		return r
	}

	r := Report{HasData: true, ListingID: string(res.ListingID)}
	r.Property = buildProperty(res.PropertyInfo)
	r.Investment = buildInvestment(res.Investment)
	r.Rent = buildRent(res.RentEstimate)
	r.Metrics = buildMetrics(res.FinancialMetrics)
	if res.RehabCosts != nil {
		r.Divisions = buildDivisions(res.RehabCosts.Divisions)
		r.CostSummary = buildCostSummary(res.RehabCosts.Summary)
	}
	return r
}

func buildProperty(p *analysis.PropertyInfo) *PropertySection {
	if p == nil {
		return nil
	}
	s := &PropertySection{}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.SizeM2 != nil {
		s.Size = format.Area(*p.SizeM2)
	}
	if p.Bedrooms != nil {
		s.Bedrooms = fmt.Sprintf("%d", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		s.Bathrooms = fmt.Sprintf("%d", *p.Bathrooms)
	}
	return s
}

func buildInvestment(inv *analysis.Investment) *InvestmentSection {
	if inv == nil {
		return nil
	}
	s := &InvestmentSection{}
	if inv.PurchasePrice != nil {
		s.PurchasePrice = format.Currency(*inv.PurchasePrice)
	}
	if inv.RemodelingCosts != nil {
		s.RemodelingCost = format.Currency(*inv.RemodelingCosts)
	}
	if inv.TotalInvestment != nil {
		s.TotalCost = format.Currency(*inv.TotalInvestment)
	}
	return s
}

func buildRent(est *analysis.RentEstimate) *RentSection {
	if est == nil {
		return nil
	}
	s := &RentSection{
		// Zero default when the estimate carries no figure at all.
		Monthly:  format.Currency(est.Monthly()),
		Strategy: format.Label(est.RentalStrategy),
	}
	if est.AnnualRent != nil {
		s.Annual = format.Currency(*est.AnnualRent)
	}
	if est.RentPerRoomMonthly != nil {
		s.PerRoom = format.Currency(*est.RentPerRoomMonthly)
	}
	if est.RentPerM2Monthly != nil {
		s.PerM2 = fmt.Sprintf("%s/m²", format.Currency(*est.RentPerM2Monthly))
	}
	return s
}

func buildMetrics(fm *analysis.FinancialMetrics) *MetricsSection {
	if fm == nil {
		return nil
	}
	s := &MetricsSection{}
	if m := fm.Metrics; m != nil {
		if m.GrossYield != nil {
			s.GrossYield = format.Percent(*m.GrossYield)
		}
		if m.NetYield != nil {
			s.NetYield = format.Percent(*m.NetYield)
		}
		if m.ROIPercentage != nil {
			s.ROI = format.Percent(*m.ROIPercentage)
		}
		if m.MonthsToBreakEven != nil {
			s.PaybackYears = fmt.Sprintf("%.1f years", *m.MonthsToBreakEven/12)
		}
	}
	if ni := fm.NetIncome; ni != nil {
		if ni.MonthlyNetIncome != nil {
			s.MonthlyNet = format.Currency(*ni.MonthlyNetIncome)
		}
		if ni.AnnualNetIncome != nil {
			s.AnnualNet = format.Currency(*ni.AnnualNetIncome)
		}
	}
	if ex := fm.Expenses; ex != nil && ex.TotalAnnualExpenses != nil {
		s.Expenses = format.Currency(*ex.TotalAnnualExpenses)
	}
	return s
}

// conditionOrder pins the rating rows to the order the service reports
// them in; unknown keys sort after these, alphabetically.
var conditionOrder = map[string]int{
	"overall_condition":    0,
	"flooring_condition":   1,
	"painting_condition":   2,
	"windows_condition":    3,
	"plumbing_condition":   4,
	"electrical_condition": 5,
	"appliances_condition": 6,
	"ceiling_condition":    7,
}

func buildDivisions(divisions []analysis.Division) []DivisionSection {
	var out []DivisionSection
	for _, d := range divisions {
		sec := DivisionSection{
			Name:   format.Label(d.RoomType),
			Notes:  template.HTML(notePolicy.Sanitize(d.DetailedNotes)),
			Images: d.Images,
		}
		if d.SizeM2 != nil {
			sec.Size = format.Area(*d.SizeM2)
		}
		if d.TotalCost != nil {
			sec.TotalCost = format.Currency(*d.TotalCost)
		}

		keys := make([]string, 0, len(d.Conditions))
		for k := range d.Conditions {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			oi, iok := conditionOrder[keys[i]]
			oj, jok := conditionOrder[keys[j]]
			switch {
			case iok && jok:
				return oi < oj
			case iok:
				return true
			case jok:
				return false
			default:
				return keys[i] < keys[j]
			}
		})
		for _, k := range keys {
			sec.Conditions = append(sec.Conditions, ConditionLine{
				Name: format.Label(k),
				Tier: format.ConditionTier(d.Conditions[k]),
			})
		}

		sec.CostItems = costLines(d.Costs, false)
		out = append(out, sec)
	}
	return out
}

// buildCostSummary keeps only entries with strictly positive cost.
func buildCostSummary(summary map[string]float64) []CostLine {
	return costLines(summary, true)
}

func costLines(m map[string]float64, positiveOnly bool) []CostLine {
	keys := make([]string, 0, len(m))
	for k := range m {
		if positiveOnly && m[k] <= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []CostLine
	for _, k := range keys {
		lines = append(lines, CostLine{Label: format.Label(k), Amount: format.Currency(m[k])})
	}
	return lines
}
