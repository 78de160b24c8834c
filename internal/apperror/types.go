package apperror

// Kind identifies a class of domain error. The set is closed: every
// kind maps to exactly one HTTP status code.
type Kind string

const (
	KindBusiness       Kind = "BUSINESS"
	KindAuthentication Kind = "AUTHENTICATION"
	KindPermission     Kind = "PERMISSION"
	KindNotFound       Kind = "NOT_FOUND"
	KindValidation     Kind = "VALIDATION"
	KindConflict       Kind = "CONFLICT"
	KindRateLimit      Kind = "RATE_LIMIT"
)

// Error is a domain error carrying a kind, a human-readable message and
// an optional detail string surfaced to clients.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Cause   error
}
