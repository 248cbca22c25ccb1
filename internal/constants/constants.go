package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "office_session"

	// ContextKeyUserID is the session and gin-context key holding the
	// authenticated user's id.
	ContextKeyUserID = "user_id"

	// ContextKeyUser is the gin-context key holding the loaded admin
	// user for the current request.
	ContextKeyUser = "current_user"

	// SessionMaxAge bounds the session cookie lifetime (7 days).
	SessionMaxAge = 86400 * 7

	// DashboardLatestTasks is how many recent tasks the dashboard shows.
	DashboardLatestTasks = 10
)
