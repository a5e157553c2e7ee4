package analysis

import (
	"encoding/json"
	"testing"
)

func TestListingIDAcceptsStringAndNumber(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    ListingID
	}{
		{"numeric id", `{"listing_id": 34458598}`, "34458598"},
		{"string id", `{"listing_id": "34458598"}`, "34458598"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			if err := json.Unmarshal([]byte(tt.payload), &res); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.ListingID != tt.want {
				t.Errorf("expected %q, got %q", tt.want, res.ListingID)
			}
		})
	}
}

func TestRentEstimateMonthlyFallback(t *testing.T) {
	monthly := 1320.0
	aggregate := 1500.0

	tests := []struct {
		name string
		est  *RentEstimate
		want float64
	}{
		{"nil estimate", nil, 0},
		{"direct monthly preferred", &RentEstimate{MonthlyRent: &monthly, TotalMonthlyRent: &aggregate}, 1320},
		{"by-room aggregate fallback", &RentEstimate{TotalMonthlyRent: &aggregate}, 1500},
		{"no figures", &RentEstimate{RentalStrategy: "by_room"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.est.Monthly(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConditionsDecodeWithNulls(t *testing.T) {
	payload := `{
		"success": true,
		"rehab_costs": {
			"divisions": [{
				"room_type": "living_room",
				"conditions": {
					"overall_condition": 3.5,
					"flooring_condition": null
				}
			}]
		}
	}`

	var res Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	div := res.RehabCosts.Divisions[0]
	if v := div.Conditions["overall_condition"]; v == nil || *v != 3.5 {
		t.Errorf("expected overall_condition 3.5, got %v", v)
	}
	if v := div.Conditions["flooring_condition"]; v != nil {
		t.Errorf("expected nil flooring_condition, got %v", *v)
	}
}
