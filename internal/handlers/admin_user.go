package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/dto"
	apierrors "github.com/mgiannak/office-tasks/internal/errors"
	"github.com/mgiannak/office-tasks/internal/middleware"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/services"
	"github.com/mgiannak/office-tasks/internal/utils"
)

// AdminUserHandler serves the user administration surface.
type AdminUserHandler struct {
	userService *services.UserService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(userService *services.UserService) *AdminUserHandler {
	return &AdminUserHandler{
		userService: userService,
	}
}

// UserForm is the submitted user create/edit form.
type UserForm struct {
	Rank          string `json:"rank"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	InternalPhone string `json:"internal_phone"`
	MobilePhone   string `json:"mobile_phone"`
	Active        bool   `json:"active"`
	IsAdmin       bool   `json:"is_admin"`
	Password      string `json:"password,omitempty"`
}

// List returns all users plus the rank options for the form.
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   dto.ToUserDTOs(users),
		"ranks":   models.Ranks(),
		"notices": middleware.TakeNotices(c),
	})
}

// Create creates a user from the submitted form.
func (h *AdminUserHandler) Create(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateUserForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	user, err := h.userService.Create(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	middleware.AddFlash(c, "User created.")
	c.JSON(http.StatusCreated, gin.H{"user": dto.ToUserDTO(*user)})
}

// Update edits a user from the submitted form. A missing id redirects
// back to the listing with a notice.
func (h *AdminUserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var form UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fields := validateUserForm(form)
	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields, form)
		return
	}

	user, err := h.userService.Update(id, input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			middleware.AddFlash(c, "User not found.")
			c.Redirect(http.StatusSeeOther, "/admin/users")
			return
		}
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	middleware.AddFlash(c, "User updated.")
	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

func validateUserForm(form UserForm) (services.UserInput, map[string]string) {
	fields := make(map[string]string)

	rank, err := models.ParseRank(form.Rank)
	if err != nil {
		fields["rank"] = "Rank must be one of the known codes."
	}

	firstName := strings.TrimSpace(form.FirstName)
	if firstName == "" {
		fields["first_name"] = "First name is required."
	}
	lastName := strings.TrimSpace(form.LastName)
	if lastName == "" {
		fields["last_name"] = "Last name is required."
	}

	input := services.UserInput{
		Rank:          rank,
		FirstName:     firstName,
		LastName:      lastName,
		InternalPhone: utils.NormalizeOptional(form.InternalPhone),
		MobilePhone:   utils.NormalizeOptional(form.MobilePhone),
		Active:        form.Active,
		IsAdmin:       form.IsAdmin,
		Password:      form.Password,
	}

	return input, fields
}
