package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/mgiannak/office-tasks/internal/constants"
	"github.com/mgiannak/office-tasks/internal/database"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"github.com/mgiannak/office-tasks/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// handlersTestEnv wires the full route surface against an in-memory
// database. Admin routes run behind a stub middleware that acts as the
// env admin, so the handlers under test see the same context the real
// RequireAdmin would give them.
type handlersTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	admin  *models.User

	projectService *services.ProjectService
}

func setupHandlersTestEnv(t *testing.T) *handlersTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.TaskComment{},
		&models.ProjectAttachment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	env := &handlersTestEnv{db: db}

	hash, err := services.HashPassword("bootstrap")
	require.NoError(t, err)
	env.admin = &models.User{
		Rank:         models.RankSxhs,
		FirstName:    "Admin",
		LastName:     "Zervas",
		Active:       true,
		IsAdmin:      true,
		PasswordHash: &hash,
	}
	require.NoError(t, db.Create(env.admin).Error)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	statsService := services.NewStatsService(userRepo, projectRepo, taskRepo)
	env.projectService = projectService

	publicHandler := NewPublicHandler(statsService, userService, projectService, taskService)
	adminUserHandler := NewAdminUserHandler(userService)
	adminProjectHandler := NewAdminProjectHandler(projectService)
	adminTaskHandler := NewAdminTaskHandler(taskService, projectService, userService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	r.GET("/", publicHandler.Dashboard)
	r.GET("/users", publicHandler.ListUsers)
	r.GET("/users/:id", publicHandler.GetUser)
	r.GET("/projects", publicHandler.ListProjects)
	r.GET("/projects/:id", publicHandler.GetProject)
	r.GET("/tasks", publicHandler.ListTasks)
	r.GET("/tasks/:id", publicHandler.GetTask)

	actAsAdmin := func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, env.admin.ID)
		c.Set(constants.ContextKeyUser, *env.admin)
		c.Next()
	}

	admin := r.Group("/admin", actAsAdmin)
	{
		admin.GET("/users", adminUserHandler.List)
		admin.POST("/users", adminUserHandler.Create)
		admin.POST("/users/:id", adminUserHandler.Update)

		admin.GET("/projects", adminProjectHandler.List)
		admin.POST("/projects", adminProjectHandler.Create)
		admin.POST("/projects/:id", adminProjectHandler.Update)
		admin.GET("/projects/:id/attachments", adminProjectHandler.ListAttachments)
		admin.POST("/projects/:id/attachments", adminProjectHandler.CreateAttachment)

		admin.GET("/tasks", adminTaskHandler.List)
		admin.GET("/tasks/options", adminTaskHandler.Options)
		admin.POST("/tasks", adminTaskHandler.Create)
		admin.POST("/tasks/:id", adminTaskHandler.Update)
		admin.POST("/tasks/:id/comments", adminTaskHandler.CreateComment)
	}

	env.router = r

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *handlersTestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *handlersTestEnv) createUser(t *testing.T, lastName, firstName string, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Rank:      models.RankLgos,
		FirstName: firstName,
		LastName:  lastName,
		Active:    active,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *handlersTestEnv) createProject(t *testing.T, title string) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:  title,
		Status: models.ProjectStatusActive,
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env *handlersTestEnv) createTask(t *testing.T, projectID uint64, title string, status models.TaskStatus, deadline, delivery *time.Time, assignees ...uint64) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID:    projectID,
		Title:        title,
		Status:       status,
		Priority:     models.TaskPriorityMedium,
		Deadline:     deadline,
		DeliveryDate: delivery,
	}
	require.NoError(t, env.db.Create(task).Error)
	for _, userID := range assignees {
		require.NoError(t, env.db.Create(&models.TaskAssignee{TaskID: task.ID, UserID: userID}).Error)
	}
	return task
}

func (env *handlersTestEnv) assigneeIDs(t *testing.T, taskID uint64) []uint64 {
	t.Helper()
	var ids []uint64
	require.NoError(t, env.db.Model(&models.TaskAssignee{}).Where("task_id = ?", taskID).Order("user_id").Pluck("user_id", &ids).Error)
	return ids
}

func yesterdayDate() *time.Time {
	d := models.Today(time.Now()).AddDate(0, 0, -1)
	return &d
}

func tomorrowDate() *time.Time {
	d := models.Today(time.Now()).AddDate(0, 0, 1)
	return &d
}
