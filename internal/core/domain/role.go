package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserRole is a single (user, role) membership. The embedded UserRef makes
// every membership usable as a UserIdentity.
type UserRole struct {
	UserRef
	RoleName string `json:"role_name"`
}
