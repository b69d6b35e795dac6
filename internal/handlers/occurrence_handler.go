package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/Dauren914/Reminder_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OccurrenceHandler handles HTTP requests related to occurrences.
type OccurrenceHandler struct {
	Service *services.OccurrenceService
	Scanner *services.ScannerService
}

// NewOccurrenceHandler creates a new instance of OccurrenceHandler.
func NewOccurrenceHandler(service *services.OccurrenceService, scanner *services.ScannerService) *OccurrenceHandler {
	return &OccurrenceHandler{
		Service: service,
		Scanner: scanner,
	}
}

// cutoffFromQuery parses the optional ?before= parameter, defaulting to now.
func cutoffFromQuery(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("before")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

// GetDueOccurrencesHandler handles GET /occurrences/due?before=RFC3339.
func (h *OccurrenceHandler) GetDueOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	cutoff, err := cutoffFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid before parameter, expected RFC 3339", http.StatusBadRequest)
		return
	}

	due, err := h.Service.FindDueBefore(r.Context(), cutoff)
	if err != nil {
		log.WithError(err).Error("Failed to fetch due occurrences")
		http.Error(w, "Failed to fetch occurrences", http.StatusInternalServerError)
		return
	}

	if due == nil {
		due = []models.OccurrenceWithReminder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(due)
}

// GetUnacknowledgedHandler handles GET /occurrences/unacknowledged, scoped to
// the caller.
func (h *OccurrenceHandler) GetUnacknowledgedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	employeeID, err := primitive.ObjectIDFromHex(claims.EmployeeID)
	if err != nil {
		http.Error(w, "Invalid token subject", http.StatusUnauthorized)
		return
	}

	cutoff, err := cutoffFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid before parameter, expected RFC 3339", http.StatusBadRequest)
		return
	}

	due, err := h.Service.FindUnacknowledgedDueBefore(r.Context(), cutoff, employeeID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch unacknowledged occurrences")
		http.Error(w, "Failed to fetch occurrences", http.StatusInternalServerError)
		return
	}

	if due == nil {
		due = []models.OccurrenceWithReminder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(due)
}

// GetOccurrenceHandler handles GET /occurrences/{id}.
func (h *OccurrenceHandler) GetOccurrenceHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid occurrence ID", http.StatusBadRequest)
		return
	}

	item, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to fetch occurrence")
		http.Error(w, "Failed to fetch occurrence", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "Occurrence not found", http.StatusNotFound)
		return
	}
	if item.Reminder.EmployeeID.Hex() != claims.EmployeeID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// AcknowledgeHandler handles POST /occurrences/{id}/acknowledge.
func (h *OccurrenceHandler) AcknowledgeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid occurrence ID", http.StatusBadRequest)
		return
	}

	item, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to fetch occurrence")
		http.Error(w, "Failed to fetch occurrence", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "Occurrence not found", http.StatusNotFound)
		return
	}
	if item.Reminder.EmployeeID.Hex() != claims.EmployeeID {
		http.Error(w, "Forbidden: not your occurrence", http.StatusForbidden)
		return
	}

	if err := h.Service.Acknowledge(r.Context(), id); err != nil {
		log.WithError(err).Error("Failed to acknowledge occurrence")
		http.Error(w, "Failed to acknowledge occurrence", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Occurrence acknowledged"})
}

// ScanHandler handles POST /occurrences/scan, materializing all currently
// due occurrences. Same code path as the cron job.
func (h *OccurrenceHandler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	created, err := h.Scanner.MaterializeDueOccurrences(r.Context(), time.Now())
	if err != nil {
		log.WithError(err).Error("Manual occurrence scan failed")
		http.Error(w, "Scan failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"materialized": created})
}
