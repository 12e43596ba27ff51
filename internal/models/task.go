package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/types"
)

type Task struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Title       string           `gorm:"not null"`
	Description string           `gorm:"type:text"`
	Status      types.TaskStatus `gorm:"not null"`

	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   *time.Time
	CompletedAt *time.Time

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
