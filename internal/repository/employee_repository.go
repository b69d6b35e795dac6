package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EmployeeRepository handles database operations related to employees.
type EmployeeRepository struct {
	collection *mongo.Collection
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{
		collection: db.Collection("employees"),
	}
}

// CreateEmployee inserts a new employee account.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert employee")
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted employee ID")
		return nil, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	employee.ID = insertedID

	logger.Log.WithField("employee_id", employee.ID.Hex()).Info("Employee created")
	return employee, nil
}

// GetEmployeeByID fetches an employee by ID. Returns (nil, nil) when absent.
func (r *EmployeeRepository) GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("employee_id", id.Hex()).Error("Failed to find employee by ID")
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}

	return &employee, nil
}

// GetEmployeeByEmail fetches an employee by email. Returns (nil, nil) when
// absent.
func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee

	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to find employee by email")
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}

	return &employee, nil
}
