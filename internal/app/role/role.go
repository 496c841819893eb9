package role

// Role is the capability level of an authenticated user.
type Role string

const (
	User  Role = "user"
	Admin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}
