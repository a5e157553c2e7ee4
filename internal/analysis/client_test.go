package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyzeSendsLink(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("expected /analyze, got %s", r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Write([]byte(`{"success": true, "listing_id": 34458598}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 0)
	raw, err := client.Analyze(context.Background(), "  https://www.idealista.pt/imovel/34458598/ ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %s", gotContentType)
	}
	// The link goes out exactly as typed, untrimmed.
	if gotBody["link"] != "  https://www.idealista.pt/imovel/34458598/ " {
		t.Errorf("link was altered: %q", gotBody["link"])
	}
	if _, ok := gotBody["rental_strategy"]; ok {
		t.Error("rental_strategy should be omitted when no options are given")
	}

	res, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !res.Success {
		t.Error("expected success flag")
	}
	if res.ListingID != "34458598" {
		t.Errorf("expected numeric listing_id coerced to string, got %q", res.ListingID)
	}
}

func TestAnalyzeForwardsRentalStrategy(t *testing.T) {
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"success": true}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 0)
	_, err := client.Analyze(context.Background(), "https://example.com/listing", &AnalyzeOptions{RentalStrategy: "by_room"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["rental_strategy"] != "by_room" {
		t.Errorf("expected rental_strategy by_room, got %q", gotBody["rental_strategy"])
	}
}

func TestAnalyzeNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("pipeline exploded"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 0)
	_, err := client.Analyze(context.Background(), "https://example.com/listing", nil)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != "pipeline exploded" {
		t.Errorf("expected body text in error, got %q", apiErr.Body)
	}
}

func TestAnalyzeReturnsBodyVerbatim(t *testing.T) {
	payload := `{"success":true,"investment":{"purchase_price":315000},"unknown_field":[1,2,3]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 0)
	raw, err := client.Analyze(context.Background(), "https://example.com/listing", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != payload {
		t.Errorf("body was not preserved byte-for-byte:\n got %s\nwant %s", raw, payload)
	}
}

func TestDecodeMissingSections(t *testing.T) {
	res, err := Decode([]byte(`{"success": true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PropertyInfo != nil || res.Investment != nil || res.RehabCosts != nil {
		t.Error("absent sections should decode to nil")
	}
	if res.RentEstimate.Monthly() != 0 {
		t.Error("nil rent estimate should report zero monthly rent")
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}
