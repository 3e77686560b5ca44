package api

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

func TestExportCSV(t *testing.T) {
	ms := newMockStore()
	b := seedBenchmark(ms)
	router := testRouter(ms, &mockEvents{}, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/compute/export?format=csv", ComputeRequest{
		BenchmarkID: b.ID.String(),
		AreaSqft:    10000,
		Selections:  allMediumSelections(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header + 7 categories + 4 summary rows.
	if len(records) != 1+budget.CategoryCount+4 {
		t.Fatalf("expected %d rows, got %d", 1+budget.CategoryCount+4, len(records))
	}
	if records[0][0] != "category" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "site" {
		t.Errorf("first category row should be site, got %s", records[1][0])
	}
	totalRow := records[1+budget.CategoryCount]
	if totalRow[0] != "total" || totalRow[4] != "19500000.00" {
		t.Errorf("unexpected total row: %v", totalRow)
	}
}

func TestExportJSON(t *testing.T) {
	ms := newMockStore()
	b := seedBenchmark(ms)
	router := testRouter(ms, &mockEvents{}, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/compute/export?format=json", ComputeRequest{
		BenchmarkID: b.ID.String(),
		AreaSqft:    10000,
		Selections:  allMediumSelections(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "scenario.json") {
		t.Errorf("unexpected content disposition: %s", cd)
	}

	var result budget.ScenarioResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode json export: %v", err)
	}
	if result.TotalCost != 19500000 {
		t.Errorf("total cost: got %v", result.TotalCost)
	}
}

func TestExportZip(t *testing.T) {
	ms := newMockStore()
	b := seedBenchmark(ms)
	router := testRouter(ms, &mockEvents{}, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/compute/export?format=zip", ComputeRequest{
		BenchmarkID: b.ID.String(),
		AreaSqft:    10000,
		Selections:  allMediumSelections(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["scenario.csv"] || !names["scenario.json"] {
		t.Errorf("zip missing entries, got %v", names)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	ms := newMockStore()
	b := seedBenchmark(ms)
	router := testRouter(ms, &mockEvents{}, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios/compute/export?format=pdf", ComputeRequest{
		BenchmarkID: b.ID.String(),
		AreaSqft:    10000,
		Selections:  allMediumSelections(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
