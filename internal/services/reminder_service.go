package services

import (
	"context"
	"fmt"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderService encapsulates the business logic for reminders.
type ReminderService struct {
	reminders ReminderStore
	employees EmployeeStore
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(reminders ReminderStore, employees EmployeeStore) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		employees: employees,
	}
}

// CreateReminder validates the request and persists the reminder. Reminders
// are immutable after this point.
func (s *ReminderService) CreateReminder(ctx context.Context, req *models.CreateReminderRequest) (*models.Reminder, error) {
	reminder, err := req.ToReminder()
	if err != nil {
		logrus.WithError(err).Warn("Rejected invalid reminder request")
		return nil, err
	}

	employee, err := s.employees.GetEmployeeByID(ctx, reminder.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify employee: %w", err)
	}
	if employee == nil {
		return nil, fmt.Errorf("employee %s does not exist", reminder.EmployeeID.Hex())
	}

	created, err := s.reminders.InsertReminder(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reminder_id": created.ID.Hex(),
		"employee_id": created.EmployeeID.Hex(),
		"recurring":   created.IsRecurring,
	}).Info("Reminder created")
	return created, nil
}

// GetReminder fetches one reminder, (nil, nil) when absent.
func (s *ReminderService) GetReminder(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	return s.reminders.GetReminderByID(ctx, id)
}

// GetEmployeeReminders fetches all reminders owned by one employee.
func (s *ReminderService) GetEmployeeReminders(ctx context.Context, employeeID primitive.ObjectID) ([]models.Reminder, error) {
	return s.reminders.GetRemindersByEmployee(ctx, employeeID)
}
