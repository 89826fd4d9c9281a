package domain

// Roles an actor can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is the identified caller of an operation.
type Actor struct {
	User string
	Role string
}

// IsAdmin reports whether the actor may moderate and edit reference data.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Anonymous reports whether no caller was identified.
func (a Actor) Anonymous() bool { return a.User == "" }
