package services

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmployeeService encapsulates the business logic for employee accounts.
type EmployeeService struct {
	store EmployeeStore
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(store EmployeeStore) *EmployeeService {
	return &EmployeeService{store: store}
}

// RegisterEmployee registers a new employee after hashing their password.
func (s *EmployeeService) RegisterEmployee(ctx context.Context, name, email, password string) (*models.Employee, error) {
	if name == "" || email == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("name, email and password are required")
	}

	if !emailRegex.MatchString(email) {
		logrus.WithField("email", email).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}

	existing, err := s.store.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing employee: %w", err)
	}
	if existing != nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
	}

	created, err := s.store.CreateEmployee(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to register employee: %w", err)
	}

	logrus.WithField("employee_id", created.ID.Hex()).Info("Employee registered")
	return created, nil
}

// AuthenticateEmployee verifies credentials and returns the account.
func (s *EmployeeService) AuthenticateEmployee(ctx context.Context, email, password string) (*models.Employee, error) {
	employee, err := s.store.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	if employee == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return employee, nil
}

// GetEmployee fetches one employee, (nil, nil) when absent.
func (s *EmployeeService) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return s.store.GetEmployeeByID(ctx, id)
}
