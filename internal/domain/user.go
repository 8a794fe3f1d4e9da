package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin is an advisory check; the service enforces the real one.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
