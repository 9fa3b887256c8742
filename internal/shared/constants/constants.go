package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyUserEmail = "user_email"

	// Notification list bounds
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 100

	// TempIDPrefix marks ids generated by a client for entities the server has not stored yet
	TempIDPrefix = "temp-"

	// Database table names
	TableUsers          = "users"
	TableSessions       = "sessions"
	TableProjects       = "projects"
	TableProjectMembers = "project_members"
	TableTickets        = "tickets"
	TableComments       = "comments"
	TableNotifications  = "notifications"

	// Error messages
	ErrMsgInternalServerError = "Internal server error"
	ErrMsgRouteNotFound       = "Route not found"
)
