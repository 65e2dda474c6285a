package constant

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	ViewerKey ContextKey = "viewer"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
