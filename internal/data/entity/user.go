package entity

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Tel          *string  `db:"tel"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
