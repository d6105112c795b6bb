package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roipulse/internal/analyze"
	"roipulse/internal/export"
	"roipulse/internal/models"
	"roipulse/internal/recommend"
	"roipulse/internal/roi"
	"roipulse/internal/store"
	"roipulse/internal/timeseries"
	"roipulse/internal/utils"
)

func NewRouter(log *slog.Logger, rs *store.RecordStore, th analyze.Thresholds) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/roi/calculate", handleCalculate)
	mux.Post("/recommendations/generate", handleGenerateRecommendations(th))
	mux.Get("/data/export", handleExport(rs))

	mux.Get("/records", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rs.Load())
	})
	mux.Post("/records", handleAddRecord(rs))
	mux.Delete("/records", func(w http.ResponseWriter, r *http.Request) {
		rs.Clear()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Get("/reports/roi", func(w http.ResponseWriter, r *http.Request) {
		filter := models.ParseTimeFilter(r.URL.Query().Get("filter"))
		writeJSON(w, roi.GenerateReport(rs.Load(), filter, time.Now().UTC()))
	})

	mux.Get("/analysis", func(w http.ResponseWriter, r *http.Request) {
		filter := models.ParseTimeFilter(r.URL.Query().Get("filter"))
		records := roi.FilterByTime(rs.Load(), filter, time.Now().UTC())
		writeJSON(w, map[string]any{
			"efficiency":  analyze.AnalyzeEfficiency(records),
			"bottlenecks": analyze.IdentifyBottlenecks(records, th),
		})
	})

	mux.Get("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, recommend.Generate(rs.Load(), th))
	})

	mux.Get("/charts/timeseries", func(w http.ResponseWriter, r *http.Request) {
		key, ok := timeseries.ParseValueKey(r.URL.Query().Get("value"))
		if !ok {
			writeError(w, 400, "value must be one of revenue, costs, roi")
			return
		}
		filter := models.ParseTimeFilter(r.URL.Query().Get("filter"))
		writeJSON(w, timeseries.Prepare(rs.Load(), filter, key, time.Now().UTC()))
	})

	mux.Get("/charts/tools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, timeseries.AggregateByTool(rs.Load()))
	})

	return mux
}

func handleCalculate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Costs          *float64 `json:"costs"`
		Revenue        *float64 `json:"revenue"`
		Period         string   `json:"period"`
		LeadsGenerated *int     `json:"leadsGenerated"`
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 500, "Failed to calculate ROI")
		return
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		// A body that is not JSON at all is an unexpected failure; valid JSON
		// carrying the wrong types is an input error.
		if !json.Valid(raw) {
			writeError(w, 500, "Failed to calculate ROI")
			return
		}
		writeError(w, 400, "Invalid input: costs and revenue must be numbers")
		return
	}
	if body.Costs == nil || body.Revenue == nil {
		writeError(w, 400, "Invalid input: costs and revenue must be numbers")
		return
	}
	costs, revenue := *body.Costs, *body.Revenue
	if costs < 0 || revenue < 0 {
		writeError(w, 400, "Invalid input: costs and revenue must be non-negative")
		return
	}
	filter := models.ParseTimeFilter(body.Period)

	var cpa float64
	if body.LeadsGenerated != nil && *body.LeadsGenerated > 0 {
		cpa = roi.CalculateCostPerAcquisition(costs, *body.LeadsGenerated)
	}
	roiPct := roi.CalculateROIPercentage(costs, revenue)
	var growth float64
	if roiPct > 0 {
		growth = roiPct / 100
	}

	writeJSON(w, models.ROIReport{
		TotalROI:      roi.CalculateROI(costs, revenue),
		ROIPercentage: roiPct,
		// Scalar input carries no time span; revenue stands in as the daily rate.
		PaybackPeriod:      roi.CalculatePaybackPeriod(costs, revenue),
		TotalCosts:         costs,
		TotalRevenue:       revenue,
		NetProfit:          revenue - costs,
		CostPerAcquisition: cpa,
		RevenueGrowthRate:  growth,
		Period:             filter,
		GeneratedAt:        time.Now().UTC(),
	})
}

func handleGenerateRecommendations(th analyze.Thresholds) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ROIData        []models.ROIRecord `json:"roiData"`
			Costs          float64            `json:"costs"`
			Revenue        float64            `json:"revenue"`
			LeadsGenerated int                `json:"leadsGenerated"`
			AutomationTool string             `json:"automationTool"`
		}
		// A non-array roiData fails the decode; an absent one leaves it nil.
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, 400, "Invalid input: roiData must be an array")
			return
		}
		if body.ROIData == nil {
			writeError(w, 400, "Invalid input: roiData must be an array")
			return
		}

		eff := analyze.EfficiencyFromTotals(body.Costs, body.Revenue, body.LeadsGenerated)
		bt := analyze.IdentifyBottlenecks(body.ROIData, th)
		writeJSON(w, recommend.FromAnalysis(eff, bt, th))
	}
}

func handleExport(rs *store.RecordStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rs.Available() {
			writeError(w, 400, "Data export requires storage access")
			return
		}
		records := rs.Load()
		now := time.Now().UTC()

		// Anything other than csv exports as JSON.
		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "roi-data-"+now.Format(time.RFC3339)+".csv"))
			if err := export.WriteCSV(w, records); err != nil {
				writeError(w, 500, "Failed to export data")
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "roi-data-"+now.Format(time.RFC3339)+".json"))
		if err := export.WriteJSON(w, records, now); err != nil {
			writeError(w, 500, "Failed to export data")
		}
	}
}

func handleAddRecord(rs *store.RecordStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Date           string   `json:"date"`
			Costs          *float64 `json:"costs"`
			Revenue        *float64 `json:"revenue"`
			AutomationTool string   `json:"automationTool"`
			LeadsGenerated *int     `json:"leadsGenerated"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Costs == nil || body.Revenue == nil || body.LeadsGenerated == nil {
			writeError(w, 400, "Invalid input: date, costs, revenue and leadsGenerated are required")
			return
		}
		date, err := models.ParseDate(body.Date)
		if err != nil {
			writeError(w, 400, "Invalid input: date must be YYYY-MM-DD")
			return
		}
		if *body.Costs < 0 || *body.Revenue < 0 || *body.LeadsGenerated < 0 {
			writeError(w, 400, "Invalid input: costs, revenue and leadsGenerated must be non-negative")
			return
		}
		rec := rs.Add(models.ROIRecord{
			Date:           date,
			Costs:          *body.Costs,
			Revenue:        *body.Revenue,
			AutomationTool: body.AutomationTool,
			LeadsGenerated: *body.LeadsGenerated,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeBody(w, rec)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	writeBody(w, v)
}

func writeBody(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
