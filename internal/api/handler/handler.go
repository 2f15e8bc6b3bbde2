// Package handler implements the HTTP trigger surface. Every response uses
// the same envelope so callers and cron wrappers can check one field.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/core"
	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

type AttendanceHandler struct {
	Service *core.ReconcileService
}

func writeJSON(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Data:      data,
	})
}

// Index lists the available operations.
func (h *AttendanceHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, true, "Spine attendance service", map[string]string{
		"GET /health":        "driver and scheduler health",
		"GET /attendance":    "today's attendance record",
		"GET /gaps":          "missing attendance review",
		"GET /swipes/recent": "recent swipe applications",
		"POST /clock-in":     "clock in now",
		"POST /clock-out":    "clock out now",
		"POST /reconcile":    "run the daily reconciliation",
		"POST /swipes":       "submit one swipe application",
		"POST /swipes/batch": "submit a batch of swipe applications",
	})
}

// Health reports driver reachability and pending jobs.
func (h *AttendanceHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.Service.HealthCheck(r.Context())
	status := http.StatusOK
	message := "Service is operational."
	if !health.DriverOK {
		status = http.StatusInternalServerError
		message = "Automation driver is unreachable."
	}
	writeJSON(w, status, health.DriverOK, message, health)
}

// Attendance returns today's normalized attendance record.
func (h *AttendanceHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	rec := h.Service.CheckAttendance(r.Context())
	if rec.Status == model.StatusError {
		writeJSON(w, http.StatusInternalServerError, false, "Failed to read attendance page.", rec)
		return
	}
	writeJSON(w, http.StatusOK, true, "Attendance check complete.", rec)
}

// ClockIn presses the portal clock-in control.
func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClockIn(r.Context()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Clock-in failed")
		writeJSON(w, http.StatusInternalServerError, false, "Clock-in failed.", nil)
		return
	}
	writeJSON(w, http.StatusOK, true, "Clocked in.", nil)
}

// ClockOut presses the portal clock-out control.
func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClockOut(r.Context()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Clock-out failed")
		writeJSON(w, http.StatusInternalServerError, false, "Clock-out failed.", nil)
		return
	}
	writeJSON(w, http.StatusOK, true, "Clocked out.", nil)
}

// Reconcile runs the full daily reconciliation synchronously.
func (h *AttendanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RunDailyReconciliation(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, false, "Reconciliation failed: "+err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, true, "Reconciliation complete.", nil)
}

// Gaps runs the missing attendance review.
func (h *AttendanceHandler) Gaps(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.ReviewMissingAttendance(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, false, "Missing attendance review failed.", nil)
		return
	}
	writeJSON(w, http.StatusOK, true, "Missing attendance review complete.", report)
}

// RecentSwipes lists recent swipe applications.
func (h *AttendanceHandler) RecentSwipes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, false, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}
	apps, err := h.Service.RecentSwipes(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, false, "Failed to fetch swipe applications.", nil)
		return
	}
	writeJSON(w, http.StatusOK, true, "Swipe applications fetched.", apps)
}

// SubmitSwipe files one swipe application.
func (h *AttendanceHandler) SubmitSwipe(w http.ResponseWriter, r *http.Request) {
	var sub core.SwipeSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, false, "Invalid request body.", nil)
		return
	}

	result, err := h.Service.SubmitSwipe(r.Context(), sub)
	if err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, false, verr.Error(), nil)
			return
		}
		writeJSON(w, http.StatusInternalServerError, false, "Swipe submission failed.", nil)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, false, result.Message, result)
		return
	}
	writeJSON(w, http.StatusOK, true, "Swipe application submitted.", result)
}

// SubmitBatch files a batch of swipe applications.
func (h *AttendanceHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var subs []core.SwipeSubmission
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		writeJSON(w, http.StatusBadRequest, false, "Invalid request body.", nil)
		return
	}

	report := h.Service.SubmitBatchSwipes(r.Context(), subs)
	status := http.StatusOK
	if report.Failed > 0 && report.Successful == 0 && report.Total > 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report.Failed == 0, report.Message, report)
}
