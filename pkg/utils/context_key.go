package utils

// ContextKey avoids collisions with other packages' context values.
type ContextKey string

const (
	CtxUserID      = ContextKey("userId")
	CtxUsername    = ContextKey("username")
	CtxIsSuperuser = ContextKey("isSuperuser")
)
