package models

// UserRole represents the access level of an account
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

// User is an account that owns uploaded projects
type User struct {
	BaseModel
	Name         string   `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string   `json:"-" gorm:"not null;size:100"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
