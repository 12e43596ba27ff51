package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.Subtask{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func seedUser(t *testing.T, db *gorm.DB, email string, active bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		Name:      "Test User",
		Email:     email,
		Active:    active,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if !active {
		deleted := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
		user.DeletedAt = &deleted
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return user
}

func seedTask(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, status types.TaskStatus) *models.Task {
	t.Helper()

	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		CreatedAt: time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC),
		UserID:    userID,
	}
	if status == types.StatusCompleted {
		completed := time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)
		task.CompletedAt = &completed
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	return task
}

func seedSubtask(t *testing.T, db *gorm.DB, taskID uuid.UUID, title string, status types.TaskStatus) *models.Subtask {
	t.Helper()

	subtask := &models.Subtask{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		CreatedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		TaskID:    taskID,
	}
	if status == types.StatusCompleted {
		completed := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
		subtask.CompletedAt = &completed
	}
	if err := db.Create(subtask).Error; err != nil {
		t.Fatalf("failed to seed subtask: %v", err)
	}

	return subtask
}
