package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pedrodese/taskManager/internal/handlers"
	"github.com/pedrodese/taskManager/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:user_id", handlers.WebSocket)

		v1 := api.Group("/v1")
		{
			users := v1.Group("/users")
			{
				users.POST("", handlers.CreateUser)
				users.GET("/:user_id", handlers.GetUser)
				users.PATCH("/:user_id", handlers.UpdateUser)
				users.DELETE("/:user_id", handlers.DeactivateUser)
			}

			tasks := v1.Group("/tasks")
			{
				tasks.POST("", handlers.CreateTask)
				tasks.GET("", handlers.ListTasks)
				tasks.GET("/:task_id", handlers.GetTask)
				tasks.PATCH("/:task_id/status", handlers.UpdateTaskStatus)

				// Subtask endpoints nested under their task
				tasks.POST("/:task_id/subtasks", handlers.CreateSubtask)
				tasks.GET("/:task_id/subtasks", handlers.ListSubtasks)
			}

			subtasks := v1.Group("/subtasks")
			{
				subtasks.GET("/:subtask_id", handlers.GetSubtask)
				subtasks.PATCH("/:subtask_id/status", handlers.UpdateSubtaskStatus)
			}
		}
	}

	return r
}
