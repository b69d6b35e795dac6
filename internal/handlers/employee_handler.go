package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dauren914/Reminder_Manager/internal/config"
	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	jwtutil "github.com/Dauren914/Reminder_Manager/pkg/jwt"
	log "github.com/sirupsen/logrus"
)

// EmployeeHandler handles HTTP requests related to employee accounts.
type EmployeeHandler struct {
	Service *services.EmployeeService
	Config  *config.Config
}

// NewEmployeeHandler creates a new instance of EmployeeHandler.
func NewEmployeeHandler(service *services.EmployeeService, cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterEmployeeHandler handles employee registration.
func (h *EmployeeHandler) RegisterEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode registration request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	employee, err := h.Service.RegisterEmployee(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to register employee")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.PublicEmployee{ID: employee.ID, Name: employee.Name, Email: employee.Email})
}

// LoginEmployeeHandler handles employee login and issues a JWT.
func (h *EmployeeHandler) LoginEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	employee, err := h.Service.AuthenticateEmployee(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).Warn("Authentication failed")
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(employee.ID.Hex(), employee.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("employee_id", employee.ID.Hex()).Info("Employee logged in")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":    token,
		"employee": models.PublicEmployee{ID: employee.ID, Name: employee.Name, Email: employee.Email},
	})
}
