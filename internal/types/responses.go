package types

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type SubtaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
	TaskID      uuid.UUID  `json:"task_id"`
}

type TaskResponse struct {
	ID                uuid.UUID         `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Status            TaskStatus        `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at"`
	CompletedAt       *time.Time        `json:"completed_at"`
	UserID            uuid.UUID         `json:"user_id"`
	UserName          string            `json:"user_name"`
	UserEmail         string            `json:"user_email"`
	Subtasks          []SubtaskResponse `json:"subtasks"`
	TotalSubtasks     int               `json:"total_subtasks"`
	CompletedSubtasks int               `json:"completed_subtasks"`
}

// PageResponse wraps a page of results with its pagination metadata.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	HasNext       bool  `json:"has_next"`
	HasPrevious   bool  `json:"has_previous"`
}
