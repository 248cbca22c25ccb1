package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/constants"
	"github.com/mgiannak/office-tasks/internal/database"
	"github.com/mgiannak/office-tasks/internal/models"
)

// RequireAdmin gates an admin route group. The session only carries a
// user id; the admin flag is re-read from the database on every
// request, so revoking it takes effect on the next request. Requests
// without a session go to the login route; authenticated non-admins
// are sent to publicPath with a warning flash.
func RequireAdmin(publicPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}

		id, ok := coerceUserID(userID)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, id).Error; err != nil || !user.IsAdmin {
			AddFlash(c, "Admins only.")
			c.Redirect(http.StatusSeeOther, publicPath)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return coerceUserID(userID)
}

// GetCurrentUser retrieves the admin user loaded by RequireAdmin
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// AddFlash queues a non-fatal notice in the session; the next rendered
// response picks it up.
func AddFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// TakeNotices drains queued flash notices from the session.
func TakeNotices(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = session.Save()

	notices := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices
}

func coerceUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
