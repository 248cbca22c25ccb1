package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/mgiannak/office-tasks/internal/models"
)

// AdminTaskHandlerTestSuite exercises the task mutation surface
// through the routed handlers.
type AdminTaskHandlerTestSuite struct {
	suite.Suite
	env *handlersTestEnv
}

func (suite *AdminTaskHandlerTestSuite) SetupTest() {
	suite.env = setupHandlersTestEnv(suite.T())
}

func (suite *AdminTaskHandlerTestSuite) taskForm(projectID uint64, assignees []uint64) map[string]interface{} {
	return map[string]interface{}{
		"project_id":   projectID,
		"title":        "Order cabinets",
		"description":  "",
		"status":       "backlog",
		"priority":     "high",
		"assignee_ids": assignees,
	}
}

func (suite *AdminTaskHandlerTestSuite) TestCreateTask_Success() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	user := suite.env.createUser(suite.T(), "Papas", "Kostas", true)

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks", suite.taskForm(project.ID, []uint64{user.ID}))

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response struct {
		Task struct {
			ID         uint64  `json:"id"`
			AssignDate *string `json:"assign_date"`
			Assignees  []struct {
				ID uint64 `json:"id"`
			} `json:"assignees"`
		} `json:"task"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(suite.T(), response.Task.ID)
	// Assign date defaults to the creation day when omitted
	assert.NotNil(suite.T(), response.Task.AssignDate)
	suite.Require().Len(response.Task.Assignees, 1)
	assert.Equal(suite.T(), user.ID, response.Task.Assignees[0].ID)
}

func (suite *AdminTaskHandlerTestSuite) TestCreateTask_NoAssignees() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks", suite.taskForm(project.ID, []uint64{}))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Code    string `json:"code"`
		Details struct {
			Fields map[string]string      `json:"fields"`
			Form   map[string]interface{} `json:"form"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "VALIDATION_FAILED", response.Code)
	assert.Contains(suite.T(), response.Details.Fields, "assignee_ids")
	// The submitted input comes back for the form re-render
	assert.Equal(suite.T(), "Order cabinets", response.Details.Form["title"])

	// Nothing was persisted
	var count int64
	suite.env.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *AdminTaskHandlerTestSuite) TestCreateTask_InactiveAssigneeRejected() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	inactive := suite.env.createUser(suite.T(), "Lazaros", "Ilias", false)

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks", suite.taskForm(project.ID, []uint64{inactive.ID}))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.env.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *AdminTaskHandlerTestSuite) TestCreateTask_InvalidEnums() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	user := suite.env.createUser(suite.T(), "Papas", "Kostas", true)

	form := suite.taskForm(project.ID, []uint64{user.ID})
	form["status"] = "cancelled"
	form["priority"] = "urgent"

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks", form)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Details struct {
			Fields map[string]string `json:"fields"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response.Details.Fields, "status")
	assert.Contains(suite.T(), response.Details.Fields, "priority")
}

// Editing a task replaces the assignee set wholesale: {A,B} edited to
// {B,C} must end up exactly {B,C}.
func (suite *AdminTaskHandlerTestSuite) TestUpdateTask_ReplacesAssignees() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	userA := suite.env.createUser(suite.T(), "Alpha", "A", true)
	userB := suite.env.createUser(suite.T(), "Beta", "B", true)
	userC := suite.env.createUser(suite.T(), "Gamma", "C", true)

	task := suite.env.createTask(suite.T(), project.ID, "Order cabinets", models.TaskStatusBacklog, nil, nil, userA.ID, userB.ID)

	form := suite.taskForm(project.ID, []uint64{userB.ID, userC.ID})
	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks/1", form)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), []uint64{userB.ID, userC.ID}, suite.env.assigneeIDs(suite.T(), task.ID))
}

func (suite *AdminTaskHandlerTestSuite) TestUpdateTask_NotFoundRedirects() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	user := suite.env.createUser(suite.T(), "Papas", "Kostas", true)

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks/999", suite.taskForm(project.ID, []uint64{user.ID}))

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/admin/tasks", w.Header().Get("Location"))
}

func (suite *AdminTaskHandlerTestSuite) TestCreateComment_AuthorIsSessionAdmin() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	user := suite.env.createUser(suite.T(), "Papas", "Kostas", true)
	task := suite.env.createTask(suite.T(), project.ID, "Order cabinets", models.TaskStatusBacklog, nil, nil, user.ID)

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks/1/comments", map[string]string{
		"body": "Supplier confirmed delivery.",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var comment models.TaskComment
	suite.Require().NoError(suite.env.db.First(&comment).Error)
	assert.Equal(suite.T(), task.ID, comment.TaskID)
	// Always attributed to the acting admin
	assert.Equal(suite.T(), suite.env.admin.ID, comment.AuthorID)
}

func (suite *AdminTaskHandlerTestSuite) TestCreateComment_EmptyBody() {
	project := suite.env.createProject(suite.T(), "Kitchen Renovation")
	user := suite.env.createUser(suite.T(), "Papas", "Kostas", true)
	suite.env.createTask(suite.T(), project.ID, "Order cabinets", models.TaskStatusBacklog, nil, nil, user.ID)

	w := suite.env.do(suite.T(), http.MethodPost, "/admin/tasks/1/comments", map[string]string{"body": "   "})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.env.db.Model(&models.TaskComment{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *AdminTaskHandlerTestSuite) TestOptions_ActiveUsersAndTitleOrder() {
	suite.env.createProject(suite.T(), "Zulu Works")
	suite.env.createProject(suite.T(), "Alpha Works")
	suite.env.createUser(suite.T(), "Beta", "B", true)
	suite.env.createUser(suite.T(), "Alpha", "A", false)

	w := suite.env.do(suite.T(), http.MethodGet, "/admin/tasks/options?project_id=2", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Projects []struct {
			Label string `json:"label"`
		} `json:"projects"`
		Assignees []struct {
			Label string `json:"label"`
		} `json:"assignees"`
		ProjectID *uint64 `json:"project_id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	suite.Require().Len(response.Projects, 2)
	assert.Equal(suite.T(), "Alpha Works (#2)", response.Projects[0].Label)
	assert.Equal(suite.T(), "Zulu Works (#1)", response.Projects[1].Label)

	// Inactive users are not selectable; the env admin and the active
	// user remain, labeled with display name and rank.
	suite.Require().Len(response.Assignees, 2)
	assert.Equal(suite.T(), "Beta B [lgos]", response.Assignees[0].Label)
	assert.Equal(suite.T(), "Zervas Admin [sxhs]", response.Assignees[1].Label)

	suite.Require().NotNil(response.ProjectID)
	assert.Equal(suite.T(), uint64(2), *response.ProjectID)
}

func TestAdminTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminTaskHandlerTestSuite))
}
