package api

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

// Export computes a scenario and streams it as csv, json, or a zip bundling
// both. POST /api/v1/scenarios/compute/export?format=csv|json|zip
func (h *ScenariosHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" && format != "zip" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be csv, json, or zip"})
		return
	}

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := h.compute(w, r, &req)
	if result == nil {
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="scenario.json"`)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="scenario.csv"`)
		if err := writeScenarioCSV(w, result); err != nil {
			h.logger.Warn("csv export failed", "error", err)
		}

	case "zip":
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="scenario.zip"`)
		if err := writeScenarioZip(w, result); err != nil {
			h.logger.Warn("zip export failed", "error", err)
		}
	}
}

func writeScenarioCSV(w io.Writer, result *budget.ScenarioResult) error {
	cw := csv.NewWriter(w)

	header := []string{"category", "label", "band", "unit_cost", "cost", "pct_of_total", "target_min_pct", "target_max_pct", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, cr := range result.Categories {
		row := []string{
			string(cr.CategoryID),
			cr.Label,
			string(cr.Band),
			strconv.FormatFloat(cr.UnitCostUsed, 'f', 2, 64),
			strconv.FormatFloat(cr.Cost, 'f', 2, 64),
			strconv.FormatFloat(cr.PctOfTotal, 'f', 6, 64),
			strconv.FormatFloat(cr.TargetMinPct, 'f', 6, 64),
			strconv.FormatFloat(cr.TargetMaxPct, 'f', 6, 64),
			string(cr.RangeStatus),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	summary := [][]string{
		{"total", "", "", "", strconv.FormatFloat(result.TotalCost, 'f', 2, 64), "1.000000", "", "", ""},
		{"area_sqft", strconv.FormatFloat(result.AreaSqft, 'f', 0, 64), "", "", "", "", "", "", ""},
		{"total_psqft", strconv.FormatFloat(result.TotalPsqft, 'f', 2, 64), "", "", "", "", "", "", ""},
		{"currency", result.Currency, "", "", "", "", "", "", ""},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeScenarioZip(w io.Writer, result *budget.ScenarioResult) error {
	zw := zip.NewWriter(w)

	csvEntry, err := zw.Create("scenario.csv")
	if err != nil {
		return err
	}
	if err := writeScenarioCSV(csvEntry, result); err != nil {
		return fmt.Errorf("csv entry: %w", err)
	}

	jsonEntry, err := zw.Create("scenario.json")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(jsonEntry)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("json entry: %w", err)
	}

	return zw.Close()
}
