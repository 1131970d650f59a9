package auth

import "time"

type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleDirector        Role = "Director"
	RoleManager         Role = "Manager"
	RoleBusinessPartner Role = "BusinessPartner"
	RoleUser            Role = "User"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDirector, RoleManager, RoleBusinessPartner, RoleUser:
		return true
	}
	return false
}

// CanFinalizeMovements reports whether the role may approve, reject or
// delete movements.
func (r Role) CanFinalizeMovements() bool {
	return r == RoleAdmin || r == RoleDirector
}

// Actor is the acting identity for a single request. It is resolved
// once by the auth middleware and never mutated afterwards.
type Actor struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Role                 Role     `json:"role"`
	EmployeeID           string   `json:"employeeId,omitempty"`
	ManagedDepartmentIDs []string `json:"managedDepartmentIds,omitempty"`
}

type User struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Role                 Role       `json:"role"`
	EmployeeID           string     `json:"employeeId,omitempty"`
	ManagedDepartmentIDs []string   `json:"managedDepartmentIds"`
	Active               bool       `json:"active"`
	LastLogin            *time.Time `json:"lastLogin,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

func (u User) Actor() Actor {
	return Actor{
		ID:                   u.ID,
		Name:                 u.Name,
		Role:                 u.Role,
		EmployeeID:           u.EmployeeID,
		ManagedDepartmentIDs: u.ManagedDepartmentIDs,
	}
}
