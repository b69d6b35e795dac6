package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/Dauren914/Reminder_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderHandler handles HTTP requests related to reminders.
type ReminderHandler struct {
	Service *services.ReminderService
}

// NewReminderHandler creates a new instance of ReminderHandler.
func NewReminderHandler(service *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: service}
}

// CreateReminderHandler handles POST /reminders.
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode reminder request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	// Reminders may only be created for the authenticated employee.
	if req.EmployeeID == "" {
		req.EmployeeID = claims.EmployeeID
	}
	if req.EmployeeID != claims.EmployeeID {
		http.Error(w, "Forbidden: reminders can only be created for yourself", http.StatusForbidden)
		return
	}

	reminder, err := h.Service.CreateReminder(r.Context(), &req)
	if err != nil {
		log.WithError(err).Warn("Failed to create reminder")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reminder)
}

// GetReminderHandler handles GET /reminders/{id}.
func (h *ReminderHandler) GetReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	reminder, err := h.Service.GetReminder(r.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to fetch reminder")
		http.Error(w, "Failed to fetch reminder", http.StatusInternalServerError)
		return
	}
	if reminder == nil {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}
	if reminder.EmployeeID.Hex() != claims.EmployeeID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}

// GetRemindersHandler handles GET /reminders, returning the caller's
// reminders.
func (h *ReminderHandler) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
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

	reminders, err := h.Service.GetEmployeeReminders(r.Context(), employeeID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch reminders")
		http.Error(w, "Failed to fetch reminders", http.StatusInternalServerError)
		return
	}

	if reminders == nil {
		reminders = []models.Reminder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}
