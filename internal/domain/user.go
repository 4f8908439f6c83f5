package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

// SessionID is the bare identifier persisted as the session token.
func (u User) SessionID() string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// Public returns a copy safe to hand to clients; the empty password is
// omitted from JSON.
func (u User) Public() User {
	u.Password = ""
	return u
}
