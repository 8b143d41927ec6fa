package models

// User roles. Admin accounts require SuperAdmin approval before they can
// log in; Customer accounts are approved automatically at registration.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleCustomer   = "Customer"
)

// User represents an authenticatable account.
type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	// PasswordHash is nil for OTP-only customer accounts.
	PasswordHash *string `json:"-"`
	Role         string  `gorm:"index" json:"role"`
	IsApproved   bool    `json:"is_approved"`
	IsBlocked    bool    `json:"is_blocked"`
}

// IsAdmin reports whether the user holds an administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
