package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pedrodese/taskManager/db"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/services"
	"github.com/pedrodese/taskManager/internal/types"
	"github.com/pedrodese/taskManager/internal/utils"
)

type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id" binding:"required"`
}

type UpdateTaskStatusRequest struct {
	Status types.TaskStatus `json:"status" binding:"required"`
}

func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := services.NewTaskService(db.DB).Create(body.Title, body.Description, body.UserID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, taskResponse(task))
}

func GetTask(ctx *gin.Context) {
	taskID, err := utils.GetUUIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := services.NewTaskService(db.DB).Get(taskID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func ListTasks(ctx *gin.Context) {
	page, size, err := utils.GetPageParams(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := services.TaskFilter{
		Title: ctx.Query("title"),
		Page:  page,
		Size:  size,
	}

	if raw := ctx.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = &userID
	}

	if raw := ctx.Query("status"); raw != "" {
		status := types.TaskStatus(raw)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &status
	}

	result, err := services.NewTaskService(db.DB).Query(filter)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	content := make([]types.TaskResponse, 0, len(result.Tasks))
	for i := range result.Tasks {
		content = append(content, taskResponse(&result.Tasks[i]))
	}

	ctx.JSON(http.StatusOK, types.PageResponse[types.TaskResponse]{
		Content:       content,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		PageNumber:    result.PageNumber,
		PageSize:      result.PageSize,
		HasNext:       result.HasNext,
		HasPrevious:   result.HasPrevious,
	})
}

func UpdateTaskStatus(ctx *gin.Context) {
	taskID, err := utils.GetUUIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskStatusRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !body.Status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	task, err := services.NewTaskService(db.DB).SetStatus(taskID, body.Status)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if task.Status == types.StatusCompleted {
		go func(completed models.Task) {
			if err := services.NotifyTaskCompleted(completed); err != nil {
				log.Printf("Failed to send completion webhook for task %s: %v", completed.ID, err)
			}
		}(*task)
	}

	BroadcastTaskRefresh(task.UserID.String())

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func taskResponse(task *models.Task) types.TaskResponse {
	subtasks := make([]types.SubtaskResponse, 0, len(task.Subtasks))
	completed := 0

	for i := range task.Subtasks {
		subtasks = append(subtasks, subtaskResponse(&task.Subtasks[i]))
		if task.Subtasks[i].Status == types.StatusCompleted {
			completed++
		}
	}

	return types.TaskResponse{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            task.Status,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
		CompletedAt:       task.CompletedAt,
		UserID:            task.UserID,
		UserName:          task.User.Name,
		UserEmail:         task.User.Email,
		Subtasks:          subtasks,
		TotalSubtasks:     len(subtasks),
		CompletedSubtasks: completed,
	}
}
