package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/types"
	"gorm.io/gorm"
)

// SubtaskService implements the subtask lifecycle. Subtasks have no
// transition restrictions of their own; they only feed the task completion
// gate.
type SubtaskService struct {
	db  *gorm.DB
	now func() time.Time
}

type SubtaskOption func(*SubtaskService)

// WithSubtaskClock overrides the timestamp source, used by tests.
func WithSubtaskClock(clock func() time.Time) SubtaskOption {
	return func(s *SubtaskService) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewSubtaskService(db *gorm.DB, opts ...SubtaskOption) *SubtaskService {
	s := &SubtaskService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a subtask under an existing task. The initial status is always
// PENDING, whatever the caller asked for.
func (s *SubtaskService) Create(taskID uuid.UUID, title, description string) (*models.Subtask, error) {
	subtask := models.Subtask{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      types.StatusPending,
		CreatedAt:   s.now(),
		TaskID:      taskID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
		}
		return tx.Create(&subtask).Error
	})
	if err != nil {
		return nil, err
	}

	return &subtask, nil
}

// Get returns the subtask with the given id.
func (s *SubtaskService) Get(id uuid.UUID) (*models.Subtask, error) {
	var subtask models.Subtask

	if err := s.db.First(&subtask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSubtaskNotFound, id)
		}
		return nil, err
	}

	return &subtask, nil
}

// SetStatus re-sets a subtask's status. Any transition is allowed, including
// a no-op. The completion timestamp tracks the status: set when entering
// COMPLETED, cleared otherwise.
func (s *SubtaskService) SetStatus(id uuid.UUID, newStatus types.TaskStatus) (*models.Subtask, error) {
	var subtask models.Subtask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&subtask, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrSubtaskNotFound, id)
			}
			return err
		}

		now := s.now()
		subtask.Status = newStatus
		subtask.UpdatedAt = &now
		if newStatus == types.StatusCompleted {
			subtask.CompletedAt = &now
		} else {
			subtask.CompletedAt = nil
		}

		return tx.Save(&subtask).Error
	})
	if err != nil {
		return nil, err
	}

	return &subtask, nil
}

// ListByTask returns every subtask of an existing task; an empty result is
// valid, a missing task is not.
func (s *SubtaskService) ListByTask(taskID uuid.UUID) ([]models.Subtask, error) {
	var count int64
	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	var subtasks []models.Subtask
	if err := s.db.Where("task_id = ?", taskID).Find(&subtasks).Error; err != nil {
		return nil, err
	}

	return subtasks, nil
}
