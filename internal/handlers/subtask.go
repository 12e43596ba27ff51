package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedrodese/taskManager/db"
	"github.com/pedrodese/taskManager/internal/models"
	"github.com/pedrodese/taskManager/internal/services"
	"github.com/pedrodese/taskManager/internal/types"
	"github.com/pedrodese/taskManager/internal/utils"
)

type CreateSubtaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateSubtaskStatusRequest struct {
	Status types.TaskStatus `json:"status" binding:"required"`
}

func CreateSubtask(ctx *gin.Context) {
	taskID, err := utils.GetUUIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateSubtaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	subtask, err := services.NewSubtaskService(db.DB).Create(taskID, body.Title, body.Description)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, subtaskResponse(subtask))
}

func ListSubtasks(ctx *gin.Context) {
	taskID, err := utils.GetUUIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtasks, err := services.NewSubtaskService(db.DB).ListByTask(taskID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := make([]types.SubtaskResponse, 0, len(subtasks))
	for i := range subtasks {
		response = append(response, subtaskResponse(&subtasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetSubtask(ctx *gin.Context) {
	subtaskID, err := utils.GetUUIDParam(ctx, "subtask_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtask, err := services.NewSubtaskService(db.DB).Get(subtaskID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subtaskResponse(subtask))
}

func UpdateSubtaskStatus(ctx *gin.Context) {
	subtaskID, err := utils.GetUUIDParam(ctx, "subtask_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateSubtaskStatusRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !body.Status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	subtask, err := services.NewSubtaskService(db.DB).SetStatus(subtaskID, body.Status)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// Subtask changes affect the owning task's completion gate, so the
	// owner's feed gets a refresh too.
	if task, err := services.NewTaskService(db.DB).Get(subtask.TaskID); err == nil {
		BroadcastTaskRefresh(task.UserID.String())
	}

	ctx.JSON(http.StatusOK, subtaskResponse(subtask))
}

func subtaskResponse(subtask *models.Subtask) types.SubtaskResponse {
	return types.SubtaskResponse{
		ID:          subtask.ID,
		Title:       subtask.Title,
		Description: subtask.Description,
		Status:      subtask.Status,
		CreatedAt:   subtask.CreatedAt,
		UpdatedAt:   subtask.UpdatedAt,
		CompletedAt: subtask.CompletedAt,
		TaskID:      subtask.TaskID,
	}
}
