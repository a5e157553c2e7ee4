// Command stubapi is a local stand-in for the analysis service. It
// serves a canned result for any listing URL so the front end can be
// developed and demoed without the real pipeline.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/duarte/imovest/internal/analysis"
)

type analyzeRequest struct {
	Link           string `json:"link"`
	RentalStrategy string `json:"rental_strategy,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/analyze", func(c echo.Context) error {
		var req analyzeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}
		if req.Link == "" {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "link is required"})
		}
		return c.JSON(http.StatusOK, cannedResult(req.RentalStrategy))
	})

	log.Printf("Stub analysis API listening on port %s...", port)
	log.Fatal(e.Start(":" + port))
}

func cannedResult(strategy string) *analysis.Result {
	fv := func(v float64) *float64 { return &v }
	iv := func(v int) *int { return &v }
	sv := func(v string) *string { return &v }

	rent := &analysis.RentEstimate{
		RentalStrategy:         "whole_apartment",
		PropertySizeM2:         fv(110),
		RentPerM2Monthly:       fv(12),
		MonthlyRent:            fv(1320),
		AnnualRent:             fv(15840),
		AnnualRentAfterVacancy: fv(14572.8),
		VacancyRate:            fv(0.08),
	}
	if strategy == "by_room" {
		rent = &analysis.RentEstimate{
			RentalStrategy:         "by_room",
			BedroomCount:           iv(3),
			RentPerRoomMonthly:     fv(400),
			TotalMonthlyRent:       fv(1500),
			AnnualRent:             fv(18000),
			AnnualRentAfterVacancy: fv(16560),
			VacancyRate:            fv(0.08),
		}
	}

	return &analysis.Result{
		Success:   true,
		ListingID: "34458598",
		PropertyInfo: &analysis.PropertyInfo{
			Location:  sv("Campo de Ourique, Lisboa"),
			SizeM2:    fv(110),
			Bedrooms:  iv(3),
			Bathrooms: iv(2),
		},
		Investment: &analysis.Investment{
			PurchasePrice:   fv(315000),
			RemodelingCosts: fv(49606.43),
			TotalInvestment: fv(364606.43),
		},
		RehabCosts: &analysis.RehabCosts{
			PropertyTotal: fv(49606.43),
			Summary: map[string]float64{
				"flooring":   21340.2,
				"painting":   9826.23,
				"windows":    0,
				"plumbing":   0,
				"electrical": 0,
				"appliances": 18440,
			},
			Divisions: []analysis.Division{
				{
					DivisionID:    "living_room_1",
					RoomType:      "living_room",
					SizeM2:        fv(24),
					TotalCost:     fv(8240.5),
					DetailedNotes: "Original hardwood floor is worn through near the balcony door. Walls need a full repaint.",
					Images:        []string{"https://img.example.com/34458598/living-1.jpg", "https://img.example.com/34458598/living-2.jpg"},
					Costs:         map[string]float64{"flooring": 6120.5, "painting": 2120},
					Conditions: map[string]*float64{
						"overall_condition":  fv(2.7),
						"flooring_condition": fv(1.8),
						"painting_condition": fv(2.2),
						"windows_condition":  fv(3.6),
					},
				},
				{
					DivisionID: "kitchen_1",
					RoomType:   "kitchen",
					SizeM2:     fv(12),
					TotalCost:  fv(19630),
					Images:     []string{"https://img.example.com/34458598/kitchen-1.jpg"},
					Costs:      map[string]float64{"appliances": 18440, "painting": 1190},
					Conditions: map[string]*float64{
						"overall_condition":    fv(1.4),
						"appliances_condition": fv(1.1),
						"plumbing_condition":   nil,
					},
				},
			},
		},
		RentEstimate: rent,
		FinancialMetrics: &analysis.FinancialMetrics{
			Income: &analysis.IncomeBreakdown{
				MonthlyRent: fv(1320),
				AnnualRent:  fv(14572.8),
			},
			Expenses: &analysis.ExpenseBreakdown{
				AnnualPropertyTax:   fv(1093.82),
				AnnualInsurance:     fv(729.21),
				AnnualMaintenance:   fv(3646.06),
				AnnualManagementFee: fv(1165.82),
				TotalAnnualExpenses: fv(6634.91),
			},
			NetIncome: &analysis.NetIncome{
				MonthlyNetIncome: fv(661.49),
				AnnualNetIncome:  fv(7937.89),
			},
			Metrics: &analysis.Metrics{
				ROIPercentage:     fv(2.18),
				CashOnCashReturn:  fv(16.0),
				GrossYield:        fv(4.0),
				NetYield:          fv(2.18),
				MonthsToBreakEven: fv(276.2),
			},
		},
	}
}
