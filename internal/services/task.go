package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskService implements the task lifecycle: creation gated on an active
// owner, the status transition protocol, and the filtered/paginated query.
type TaskService struct {
	db  *gorm.DB
	now func() time.Time
}

type TaskOption func(*TaskService)

// WithTaskClock overrides the timestamp source, used by tests.
func WithTaskClock(clock func() time.Time) TaskOption {
	return func(s *TaskService) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewTaskService(db *gorm.DB, opts ...TaskOption) *TaskService {
	s := &TaskService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TaskFilter carries the optional query filters and the page window.
type TaskFilter struct {
	UserID *uuid.UUID
	Status *types.TaskStatus
	Title  string
	Page   int
	Size   int
}

// TaskPage is one page of query results. TotalElements counts the rows
// matching the user/status filters before the title filter is applied.
type TaskPage struct {
	Tasks         []models.Task
	TotalElements int64
	TotalPages    int
	PageNumber    int
	PageSize      int
	HasNext       bool
	HasPrevious   bool
}

// Create opens a new PENDING task owned by the given user. The owner must
// exist and still be active; nothing is written otherwise.
func (s *TaskService) Create(title, description string, userID uuid.UUID) (*models.Task, error) {
	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      types.StatusPending,
		CreatedAt:   s.now(),
		UserID:      userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
			}
			return err
		}
		if !user.Active {
			return fmt.Errorf("cannot create task for inactive user: %s: %w", userID, ErrUserInactive)
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		task.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Get returns the task with its owner and subtasks loaded.
func (s *TaskService) Get(id uuid.UUID) (*models.Task, error) {
	var task models.Task

	err := s.db.Preload("User").Preload("Subtasks").First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return nil, err
	}

	return &task, nil
}

// SetStatus applies the transition protocol: no-op transitions are rejected,
// COMPLETED is terminal, and entering COMPLETED passes through the completion
// gate over the task's current subtasks.
func (s *TaskService) SetStatus(id uuid.UUID, newStatus types.TaskStatus) (*models.Task, error) {
	var task models.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
			}
			return err
		}

		if err := validateTransition(task.Status, newStatus); err != nil {
			return err
		}

		if newStatus == types.StatusCompleted {
			var subtasks []models.Subtask
			if err := tx.Where("task_id = ?", task.ID).Find(&subtasks).Error; err != nil {
				return err
			}
			if err := checkCompletionGate(task.ID, subtasks); err != nil {
				return err
			}
			task.Subtasks = subtasks
		}

		now := s.now()
		task.Status = newStatus
		task.UpdatedAt = &now
		if newStatus == types.StatusCompleted {
			task.CompletedAt = &now
		}

		// The preloaded owner and subtasks are read-only here
		return tx.Omit(clause.Associations).Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Query lists tasks page by page. Owner and status filters run in SQL, and
// the total is counted at that point; the title substring filter is applied
// case-insensitively to the fetched page afterwards, so a page may hold fewer
// than Size rows while the totals still reflect the unfiltered count.
func (s *TaskService) Query(filter TaskFilter) (*TaskPage, error) {
	query := s.db.Model(&models.Task{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	err := query.Session(&gorm.Session{}).
		Preload("User").Preload("Subtasks").
		Offset(filter.Page * filter.Size).Limit(filter.Size).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	if filter.Title != "" {
		needle := strings.ToLower(filter.Title)
		filtered := make([]models.Task, 0, len(tasks))
		for _, task := range tasks {
			if strings.Contains(strings.ToLower(task.Title), needle) {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	totalPages := 0
	if filter.Size > 0 {
		totalPages = int((total + int64(filter.Size) - 1) / int64(filter.Size))
	}

	return &TaskPage{
		Tasks:         tasks,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    filter.Page,
		PageSize:      filter.Size,
		HasNext:       filter.Page+1 < totalPages,
		HasPrevious:   filter.Page > 0,
	}, nil
}

func validateTransition(current, next types.TaskStatus) error {
	if current == next {
		return fmt.Errorf("cannot update status to the same value %s: %w", current, ErrInvalidStatusTransition)
	}
	if current == types.StatusCompleted {
		return fmt.Errorf("cannot reopen a completed task: %w", ErrInvalidStatusTransition)
	}
	return nil
}

// checkCompletionGate passes when the subtask set is empty or every subtask
// is COMPLETED. It never mutates anything.
func checkCompletionGate(taskID uuid.UUID, subtasks []models.Subtask) error {
	for _, subtask := range subtasks {
		if subtask.Status != types.StatusCompleted {
			return fmt.Errorf("task %s has incomplete subtasks: %w", taskID, ErrTaskCannotBeCompleted)
		}
	}
	return nil
}
