package analysis

import (
	"encoding/json"
	"fmt"
)

// Result is the analysis service's response for one listing. The service
// makes no guarantees about which sections are present, so everything
// beyond the success flag is optional and must be nil-checked before use.
type Result struct {
	Success          bool              `json:"success"`
	Error            string            `json:"error,omitempty"`
	ListingID        ListingID         `json:"listing_id,omitempty"`
	PropertyInfo     *PropertyInfo     `json:"property_info,omitempty"`
	Investment       *Investment       `json:"investment,omitempty"`
	RehabCosts       *RehabCosts       `json:"rehab_costs,omitempty"`
	RentEstimate     *RentEstimate     `json:"rent_estimate,omitempty"`
	FinancialMetrics *FinancialMetrics `json:"financial_metrics,omitempty"`
}

// ListingID tolerates both string and numeric wire encodings; the
// service extracts it either from scraped data (numeric) or from the
// listing URL (string).
type ListingID string

func (id *ListingID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ListingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("listing_id is neither string nor number: %w", err)
	}
	*id = ListingID(n.String())
	return nil
}

type PropertyInfo struct {
	Location  *string  `json:"location,omitempty"`
	SizeM2    *float64 `json:"size_m2,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
}

type Investment struct {
	PurchasePrice   *float64 `json:"purchase_price,omitempty"`
	RemodelingCosts *float64 `json:"remodeling_costs,omitempty"`
	TotalInvestment *float64 `json:"total_investment,omitempty"`
}

// RehabCosts carries the renovation estimate: a property-wide total, a
// per-category summary, and the per-room breakdown.
type RehabCosts struct {
	PropertyTotal *float64           `json:"property_total,omitempty"`
	Summary       map[string]float64 `json:"summary,omitempty"`
	Divisions     []Division         `json:"divisions,omitempty"`
}

// Division is a sub-unit (room) of the property with its own size,
// condition ratings, and itemized renovation cost.
type Division struct {
	DivisionID    string              `json:"division_id,omitempty"`
	RoomType      string              `json:"room_type,omitempty"`
	SizeM2        *float64            `json:"size_m2,omitempty"`
	Images        []string            `json:"images,omitempty"`
	Costs         map[string]float64  `json:"costs,omitempty"`
	TotalCost     *float64            `json:"total_cost,omitempty"`
	DetailedNotes string              `json:"detailed_notes,omitempty"`
	Conditions    map[string]*float64 `json:"conditions,omitempty"`
}

type RentEstimate struct {
	RentalStrategy         string   `json:"rental_strategy,omitempty"`
	BedroomCount           *int     `json:"bedroom_count,omitempty"`
	RentPerRoomMonthly     *float64 `json:"rent_per_room_monthly,omitempty"`
	PropertySizeM2         *float64 `json:"property_size_m2,omitempty"`
	RentPerM2Monthly       *float64 `json:"rent_per_m2_monthly,omitempty"`
	MonthlyRent            *float64 `json:"monthly_rent,omitempty"`
	TotalMonthlyRent       *float64 `json:"total_monthly_rent,omitempty"`
	AnnualRent             *float64 `json:"annual_rent,omitempty"`
	AnnualRentAfterVacancy *float64 `json:"annual_rent_after_vacancy,omitempty"`
	VacancyRate            *float64 `json:"vacancy_rate,omitempty"`
}

// Monthly returns the monthly rent figure, preferring the direct
// whole-apartment value over the by-room aggregate. Zero when neither
// is present.
func (r *RentEstimate) Monthly() float64 {
	if r == nil {
		return 0
	}
	if r.MonthlyRent != nil {
		return *r.MonthlyRent
	}
	if r.TotalMonthlyRent != nil {
		return *r.TotalMonthlyRent
	}
	return 0
}

type FinancialMetrics struct {
	Income    *IncomeBreakdown  `json:"income,omitempty"`
	Expenses  *ExpenseBreakdown `json:"expenses,omitempty"`
	NetIncome *NetIncome        `json:"net_income,omitempty"`
	Metrics   *Metrics          `json:"metrics,omitempty"`
}

type IncomeBreakdown struct {
	MonthlyRent *float64 `json:"monthly_rent,omitempty"`
	AnnualRent  *float64 `json:"annual_rent,omitempty"`
}

type ExpenseBreakdown struct {
	MonthlyExpenses          *float64 `json:"monthly_expenses,omitempty"`
	AnnualPropertyTax        *float64 `json:"annual_property_tax,omitempty"`
	AnnualInsurance          *float64 `json:"annual_insurance,omitempty"`
	AnnualMaintenance        *float64 `json:"annual_maintenance,omitempty"`
	AnnualManagementFee      *float64 `json:"annual_management_fee,omitempty"`
	AnnualAdditionalExpenses *float64 `json:"annual_additional_expenses,omitempty"`
	TotalAnnualExpenses      *float64 `json:"total_annual_expenses,omitempty"`
}

type NetIncome struct {
	MonthlyNetIncome *float64 `json:"monthly_net_income,omitempty"`
	AnnualNetIncome  *float64 `json:"annual_net_income,omitempty"`
}

type Metrics struct {
	ROIPercentage     *float64 `json:"roi_percentage,omitempty"`
	CashOnCashReturn  *float64 `json:"cash_on_cash_return,omitempty"`
	GrossYield        *float64 `json:"gross_yield,omitempty"`
	NetYield          *float64 `json:"net_yield,omitempty"`
	MonthsToBreakEven *float64 `json:"months_to_break_even,omitempty"`
}

// Decode parses a stored snapshot back into a Result.
func Decode(raw []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode analysis snapshot: %w", err)
	}
	return &res, nil
}
