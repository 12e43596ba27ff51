package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/types"
)

func TestTaskServiceCreate(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 5, 13, 9, 0, 0, 0, time.UTC)
	svc := NewTaskService(db, WithTaskClock(fixedClock(now)))

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.Create("Write report", "", uuid.New())
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("inactive user writes nothing", func(t *testing.T) {
		inactive := seedUser(t, db, "inactive@example.com", false)

		_, err := svc.Create("Write report", "", inactive.ID)
		if !errors.Is(err, ErrUserInactive) {
			t.Fatalf("expected ErrUserInactive, got %v", err)
		}

		var count int64
		if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no task rows, got %d", count)
		}
	})

	t.Run("new task starts pending", func(t *testing.T) {
		owner := seedUser(t, db, "owner@example.com", true)

		task, err := svc.Create("Write report", "for the board", owner.ID)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if task.Status != types.StatusPending {
			t.Errorf("expected status PENDING, got %s", task.Status)
		}
		if !task.CreatedAt.Equal(now) {
			t.Errorf("expected CreatedAt %v, got %v", now, task.CreatedAt)
		}
		if task.CompletedAt != nil {
			t.Error("expected CompletedAt to be nil for a new task")
		}
		if task.UserID != owner.ID {
			t.Errorf("expected task bound to %s, got %s", owner.ID, task.UserID)
		}
	})
}

func TestTaskServiceGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.Get(uuid.New())
		if !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("loads owner and subtasks", func(t *testing.T) {
		owner := seedUser(t, db, "owner@example.com", true)
		seeded := seedTask(t, db, owner.ID, "Write report", types.StatusPending)
		seedSubtask(t, db, seeded.ID, "Outline", types.StatusPending)
		seedSubtask(t, db, seeded.ID, "Draft", types.StatusCompleted)

		task, err := svc.Get(seeded.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if task.User.Email != owner.Email {
			t.Errorf("expected owner preloaded, got %q", task.User.Email)
		}
		if len(task.Subtasks) != 2 {
			t.Errorf("expected 2 subtasks, got %d", len(task.Subtasks))
		}
	})
}

func TestTaskServiceSetStatus(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 5, 13, 10, 0, 0, 0, time.UTC)
	svc := NewTaskService(db, WithTaskClock(fixedClock(now)))
	owner := seedUser(t, db, "owner@example.com", true)

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.SetStatus(uuid.New(), types.StatusInProgress)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("no-op transitions are rejected", func(t *testing.T) {
		for _, status := range []types.TaskStatus{types.StatusPending, types.StatusInProgress, types.StatusCompleted} {
			task := seedTask(t, db, owner.ID, "No-op "+string(status), status)

			_, err := svc.SetStatus(task.ID, status)
			if !errors.Is(err, ErrInvalidStatusTransition) {
				t.Fatalf("%s -> %s: expected ErrInvalidStatusTransition, got %v", status, status, err)
			}
		}
	})

	t.Run("pending and in progress move freely", func(t *testing.T) {
		task := seedTask(t, db, owner.ID, "Back and forth", types.StatusPending)

		updated, err := svc.SetStatus(task.ID, types.StatusInProgress)
		if err != nil {
			t.Fatalf("PENDING -> IN_PROGRESS: %v", err)
		}
		if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(now) {
			t.Errorf("expected UpdatedAt %v, got %v", now, updated.UpdatedAt)
		}

		if _, err := svc.SetStatus(task.ID, types.StatusPending); err != nil {
			t.Fatalf("IN_PROGRESS -> PENDING: %v", err)
		}
	})

	t.Run("completing without subtasks", func(t *testing.T) {
		task := seedTask(t, db, owner.ID, "Standalone", types.StatusPending)

		updated, err := svc.SetStatus(task.ID, types.StatusCompleted)
		if err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}
		if updated.CompletedAt == nil || !updated.CompletedAt.Equal(now) {
			t.Errorf("expected CompletedAt %v, got %v", now, updated.CompletedAt)
		}
	})

	t.Run("completion gate blocks incomplete subtasks", func(t *testing.T) {
		task := seedTask(t, db, owner.ID, "Gated", types.StatusPending)
		seedSubtask(t, db, task.ID, "Outline", types.StatusCompleted)
		second := seedSubtask(t, db, task.ID, "Draft", types.StatusInProgress)

		_, err := svc.SetStatus(task.ID, types.StatusCompleted)
		if !errors.Is(err, ErrTaskCannotBeCompleted) {
			t.Fatalf("expected ErrTaskCannotBeCompleted, got %v", err)
		}

		// The failed attempt must not have touched the row
		var stored models.Task
		if err := db.First(&stored, "id = ?", task.ID).Error; err != nil {
			t.Fatalf("failed to reload task: %v", err)
		}
		if stored.Status != types.StatusPending {
			t.Errorf("expected status unchanged, got %s", stored.Status)
		}
		if stored.CompletedAt != nil {
			t.Error("expected CompletedAt to stay nil")
		}

		// Completing the last subtask opens the gate
		subSvc := NewSubtaskService(db, WithSubtaskClock(fixedClock(now)))
		if _, err := subSvc.SetStatus(second.ID, types.StatusCompleted); err != nil {
			t.Fatalf("failed to complete subtask: %v", err)
		}

		updated, err := svc.SetStatus(task.ID, types.StatusCompleted)
		if err != nil {
			t.Fatalf("SetStatus() after completing subtasks: %v", err)
		}
		if updated.CompletedAt == nil {
			t.Error("expected CompletedAt to be set")
		}
	})

	t.Run("completed is terminal", func(t *testing.T) {
		task := seedTask(t, db, owner.ID, "Done", types.StatusCompleted)

		for _, target := range []types.TaskStatus{types.StatusPending, types.StatusInProgress, types.StatusCompleted} {
			_, err := svc.SetStatus(task.ID, target)
			if !errors.Is(err, ErrInvalidStatusTransition) {
				t.Fatalf("COMPLETED -> %s: expected ErrInvalidStatusTransition, got %v", target, err)
			}
		}
	})
}

func TestTaskServiceQuery(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	alice := seedUser(t, db, "alice@example.com", true)
	bob := seedUser(t, db, "bob@example.com", true)

	// 12 pending tasks for alice, 3 of which mention "report"
	for i := 0; i < 12; i++ {
		title := fmt.Sprintf("Chore %d", i)
		if i%4 == 0 {
			title = fmt.Sprintf("Weekly Report %d", i)
		}
		seedTask(t, db, alice.ID, title, types.StatusPending)
	}
	seedTask(t, db, alice.ID, "Finished chore", types.StatusCompleted)
	seedTask(t, db, bob.ID, "Bob's chore", types.StatusPending)

	t.Run("no filters", func(t *testing.T) {
		page, err := svc.Query(TaskFilter{Page: 0, Size: 50})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if page.TotalElements != 14 {
			t.Errorf("expected 14 total, got %d", page.TotalElements)
		}
	})

	t.Run("filters by user and status", func(t *testing.T) {
		status := types.StatusPending
		page, err := svc.Query(TaskFilter{UserID: &alice.ID, Status: &status, Page: 0, Size: 50})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if page.TotalElements != 12 {
			t.Errorf("expected 12 total, got %d", page.TotalElements)
		}
		for _, task := range page.Tasks {
			if task.UserID != alice.ID || task.Status != types.StatusPending {
				t.Errorf("unexpected row in result: user=%s status=%s", task.UserID, task.Status)
			}
		}
	})

	t.Run("pagination metadata", func(t *testing.T) {
		status := types.StatusPending
		page, err := svc.Query(TaskFilter{UserID: &alice.ID, Status: &status, Page: 1, Size: 5})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(page.Tasks) != 5 {
			t.Errorf("expected 5 rows on page 1, got %d", len(page.Tasks))
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", page.TotalPages)
		}
		if !page.HasNext || !page.HasPrevious {
			t.Errorf("expected middle page to have next and previous, got next=%v prev=%v", page.HasNext, page.HasPrevious)
		}
	})

	t.Run("title filter runs after pagination", func(t *testing.T) {
		status := types.StatusPending
		page, err := svc.Query(TaskFilter{UserID: &alice.ID, Status: &status, Title: "report", Page: 0, Size: 20})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		// Content shrinks to the matching titles, the totals do not
		if len(page.Tasks) != 3 {
			t.Errorf("expected 3 matching rows, got %d", len(page.Tasks))
		}
		if page.TotalElements != 12 {
			t.Errorf("expected total to reflect the pre-title-filter count 12, got %d", page.TotalElements)
		}
	})

	t.Run("title match is case-insensitive", func(t *testing.T) {
		page, err := svc.Query(TaskFilter{UserID: &alice.ID, Title: "WEEKLY", Page: 0, Size: 50})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(page.Tasks) != 3 {
			t.Errorf("expected 3 matching rows, got %d", len(page.Tasks))
		}
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		missing := uuid.New()
		page, err := svc.Query(TaskFilter{UserID: &missing, Page: 0, Size: 10})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(page.Tasks) != 0 || page.TotalElements != 0 {
			t.Errorf("expected empty page, got %d rows / %d total", len(page.Tasks), page.TotalElements)
		}
		if page.HasNext || page.HasPrevious {
			t.Error("expected no next/previous on an empty result")
		}
	})
}
