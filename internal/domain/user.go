package domain

type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// User is the resolved caller identity handed in by the auth layer.
// The core never creates or mutates users.
type User struct {
	ID   string
	Role Role
}
