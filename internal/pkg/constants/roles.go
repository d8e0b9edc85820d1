package constants

const (
	Member   = "member"
	Operator = "operator"
	Admin    = "admin"
)

// ValidRoles is the set of roles an account can hold.
var ValidRoles = []string{Member, Operator, Admin}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
