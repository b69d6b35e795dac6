package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Dauren914/Reminder_Manager/internal/config"
	"github.com/Dauren914/Reminder_Manager/internal/database"
	"github.com/Dauren914/Reminder_Manager/internal/handlers"
	"github.com/Dauren914/Reminder_Manager/internal/jobs"
	"github.com/Dauren914/Reminder_Manager/internal/repository"
	cronjobs "github.com/Dauren914/Reminder_Manager/internal/scheduler"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/Dauren914/Reminder_Manager/pkg/email"
	"github.com/Dauren914/Reminder_Manager/pkg/logger"
	"github.com/Dauren914/Reminder_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	employeeRepo := repository.NewEmployeeRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	occurrenceRepo := repository.NewOccurrenceRepository(db)

	// --- Services ---
	employeeService := services.NewEmployeeService(employeeRepo)
	reminderService := services.NewReminderService(reminderRepo, employeeRepo)
	occurrenceService := services.NewOccurrenceService(occurrenceRepo)
	scannerService := services.NewScannerService(reminderRepo, occurrenceRepo)

	// --- Handlers ---
	employeeHandler := handlers.NewEmployeeHandler(employeeService, cfg)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService, scannerService)

	// --- Background jobs ---
	sender := email.NewSMTPSender(cfg.SMTPSender, cfg.SMTPPassword, cfg.SMTPHost, cfg.SMTPPort)
	notifier := jobs.NewDueNotifier(occurrenceService, employeeService, sender)
	if _, err := cronjobs.StartOccurrenceCronJobs(cfg.ScanSpec, cfg.NotifySpec, scannerService, notifier); err != nil {
		log.Fatalf("Failed to start cron jobs: %v", err)
	}

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public employee routes
	router.HandleFunc("/employees/register", employeeHandler.RegisterEmployeeHandler).Methods("POST")
	router.HandleFunc("/employees/login", employeeHandler.LoginEmployeeHandler).Methods("POST")

	// Reminder routes
	protectedReminderRoutes := router.PathPrefix("/reminders").Subrouter()
	protectedReminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	protectedReminderRoutes.HandleFunc("", reminderHandler.GetRemindersHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.GetReminderHandler).Methods("GET")

	// Occurrence routes
	protectedOccurrenceRoutes := router.PathPrefix("/occurrences").Subrouter()
	protectedOccurrenceRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedOccurrenceRoutes.HandleFunc("/due", occurrenceHandler.GetDueOccurrencesHandler).Methods("GET")
	protectedOccurrenceRoutes.HandleFunc("/unacknowledged", occurrenceHandler.GetUnacknowledgedHandler).Methods("GET")
	protectedOccurrenceRoutes.HandleFunc("/scan", occurrenceHandler.ScanHandler).Methods("POST")
	protectedOccurrenceRoutes.HandleFunc("/{id}", occurrenceHandler.GetOccurrenceHandler).Methods("GET")
	protectedOccurrenceRoutes.HandleFunc("/{id}/acknowledge", occurrenceHandler.AcknowledgeHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
