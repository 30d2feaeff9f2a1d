package entities

import "time"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system. Managers start unapproved and
// cannot authenticate until an admin approves their application.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"password"` // opaque credential hash
	Role       Role      `json:"role"`
	IsApproved bool      `json:"isApproved"`
	CompanyID  string    `json:"companyId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session ties an opaque bearer token to a user. A session whose user no
// longer resolves is treated as unauthenticated, not as an error.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ApplicationStatus is the lifecycle state of a pending application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ManagerApplication is a manager registration awaiting admin review.
// Approval materializes an approved User plus a Company; rejection discards it.
type ManagerApplication struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	ManagerName string            `json:"managerName"`
	CompanyName string            `json:"companyName"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}
