package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/token"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth        *services.AuthService
	Tasks       *services.TaskService
	Reports     *services.ReportService
	Users       *services.UserService
	Departments *services.DepartmentService
	JobCodes    *services.JobCodeService
	Curfew      *services.CurfewPolicy
	Tokens      *token.Manager
	Sessions    sessions.Store
	Log         *slog.Logger
}

// NewRouter wires every route of the API.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))

	authHandler := NewAuthHandler(deps.Auth, deps.Tokens)
	taskHandler := NewTaskHandler(deps.Tasks, deps.Curfew)
	reportHandler := NewReportHandler(deps.Reports)
	userHandler := NewUserHandler(deps.Users)
	deptHandler := NewDepartmentHandler(deps.Departments)
	jobHandler := NewJobCodeHandler(deps.JobCodes)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	admins := middleware.RequireRole(models.RoleAdminTotal, models.RoleAdminDept)
	companyAdmin := middleware.RequireRole(models.RoleAdminTotal)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Timesheet API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/admin-login", authHandler.AdminLogin)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/setup", authHandler.Setup)
			auth.GET("/check-system-status", authHandler.CheckSystemStatus)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(requireAuth)

		depts := protected.Group("/departments")
		{
			depts.GET("", deptHandler.ListDepartments)
			depts.POST("", companyAdmin, deptHandler.CreateDepartment)
			depts.PUT("/:id", companyAdmin, deptHandler.UpdateDepartment)
			depts.DELETE("/:id", companyAdmin, deptHandler.DeleteDepartment)
		}

		users := protected.Group("/users")
		{
			users.GET("", admins, userHandler.ListUsers)
			users.POST("", admins, userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", admins, userHandler.DeleteUser)
		}

		jobs := protected.Group("/job-codes")
		{
			jobs.GET("/:department", jobHandler.ListByDepartment)
			jobs.POST("", admins, jobHandler.CreateJobCode)
			jobs.DELETE("/:id", admins, jobHandler.DeleteJobCode)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/:date", taskHandler.GetTasksByDate)
			tasks.POST("", taskHandler.SaveTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		protected.GET("/curfew", taskHandler.GetCurfew)

		reports := protected.Group("/reports")
		{
			reports.GET("/user", reportHandler.UserReport)
			reports.GET("/jobs", admins, reportHandler.JobReport)
		}
	}

	return r
}
