package apperror

// Error message constants
const (
	ErrMsgInternal           = "Internal server error"
	ErrMsgInvalidCredentials = "Invalid username or password"
	ErrMsgAccountDisabled    = "Account is disabled"
	ErrMsgUserNotFound       = "User not found"
	ErrMsgEmailTaken         = "Email is already registered"
	ErrMsgUsernameTaken      = "Username is already taken"
	ErrMsgInvalidToken       = "Invalid or expired token"
	ErrMsgTokenRevoked       = "Token has been revoked"
	ErrMsgPermissionDenied   = "Insufficient permissions"
)
