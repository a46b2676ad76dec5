package user

// ===============================
// User Role
// ===============================

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

func IsAdmin(role string) bool {
	return Role(role) == RoleAdmin
}

func IsUser(role string) bool {
	return Role(role) == RoleUser
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}
