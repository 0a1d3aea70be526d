package ui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reportlens/adapters/excel"
	"reportlens/app"
	"reportlens/domain/core"
	"reportlens/domain/snapshot"
	"reportlens/internal/errors"
	"reportlens/models"
)

// maxSnapshotBytes caps posted snapshot payloads.
const maxSnapshotBytes = 8 << 20

// maxUploadBytes caps dataset uploads.
const maxUploadBytes = 32 << 20

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateReport builds and stores a report from a posted snapshot.
func (a *App) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	bundle := app.BuildReport(snapshot.Parse(body))
	stored, err := models.NewStoredReport(bundle)
	if err != nil {
		log.Printf("[ERROR] Failed to encode report bundle: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}
	if err := a.reports.Save(r.Context(), stored); err != nil {
		log.Printf("[ERROR] Failed to save report: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save report")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":     stored.ID,
		"report": bundle,
	})
}

// handleBuildFromRun polls the analysis backend for a finished run, then
// builds and stores its report.
func (a *App) handleBuildFromRun(w http.ResponseWriter, r *http.Request) {
	if a.snapshot == nil {
		respondError(w, http.StatusServiceUnavailable, "no analysis backend configured")
		return
	}
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := a.snapshot.WaitForSnapshot(r.Context(), runID)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch snapshot for run %s: %v", runID, err)
		if errors.GetCode(err) == errors.CodeRunFailed {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "failed to fetch snapshot from backend")
		return
	}

	bundle := app.BuildReport(snap)
	stored, err := models.NewStoredReport(bundle)
	if err != nil {
		log.Printf("[ERROR] Failed to encode report bundle: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}
	if err := a.reports.Save(r.Context(), stored); err != nil {
		log.Printf("[ERROR] Failed to save report: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save report")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":     stored.ID,
		"report": bundle,
	})
}

// handleListReports returns recent report summaries, newest first.
func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	stored, err := a.reports.List(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] Failed to list reports: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	summaries := make([]models.ReportSummary, 0, len(stored))
	for _, s := range stored {
		summaries = append(summaries, s.Summary())
	}
	respondJSON(w, http.StatusOK, summaries)
}

// handleGetReport returns one stored report including its bundle.
func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := a.reports.GetByID(r.Context(), id)
	if err != nil {
		if errors.GetCode(err) == errors.CodeNotFound {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		log.Printf("[ERROR] Failed to get report %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to get report")
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// handleProfileDataset profiles an uploaded .xlsx and previews it through the
// same pipeline a finished run uses.
func (a *App) handleProfileDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	profile, err := excel.NewProfileReader().ReadProfile(file)
	if err != nil {
		log.Printf("[ERROR] Failed to profile upload: %v", err)
		respondError(w, http.StatusUnprocessableEntity, "could not profile the uploaded workbook")
		return
	}

	payload := profile.SnapshotPayload()
	preview := app.BuildReport(snapshot.Parse(payload))
	respondJSON(w, http.StatusOK, map[string]any{
		"snapshot": json.RawMessage(payload),
		"preview":  preview,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
