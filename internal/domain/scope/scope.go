// Package scope derives the visibility predicate for an acting
// identity. The predicate narrows every read and write over employees,
// departments, positions and movements before it reaches the store.
package scope

import (
	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
)

type kind int

const (
	kindAll kind = iota
	kindDepartments
	kindSelf
)

// Scope is an immutable visibility predicate. The zero value matches
// nothing; callers should always obtain one through Resolve.
type Scope struct {
	kind          kind
	departmentIDs []string
	employeeID    string
}

// Resolve computes the visibility predicate for the actor.
//   - Admin and Director see everything.
//   - Manager and BusinessPartner see the departments they manage; an
//     empty set is a scope that matches nothing, not an error.
//   - User sees only their own linked employee record and may not list
//     or aggregate at all.
func Resolve(actor auth.Actor) (Scope, error) {
	if actor.ID == "" || !actor.Role.Valid() {
		return Scope{}, apperror.ErrAuthorization
	}
	switch actor.Role {
	case auth.RoleAdmin, auth.RoleDirector:
		return Scope{kind: kindAll}, nil
	case auth.RoleManager, auth.RoleBusinessPartner:
		ids := make([]string, len(actor.ManagedDepartmentIDs))
		copy(ids, actor.ManagedDepartmentIDs)
		return Scope{kind: kindDepartments, departmentIDs: ids}, nil
	default:
		return Scope{kind: kindSelf, employeeID: actor.EmployeeID}, nil
	}
}

// Unrestricted reports whether the scope matches every record.
func (s Scope) Unrestricted() bool {
	return s.kind == kindAll
}

// MatchesNothing reports whether no record can satisfy the predicate.
// List and aggregate callers must answer with an empty result set.
func (s Scope) MatchesNothing() bool {
	return s.kind == kindDepartments && len(s.departmentIDs) == 0
}

// AllowsListing reports whether the actor may run list or aggregate
// operations at all. Self-scoped actors may not.
func (s Scope) AllowsListing() bool {
	return s.kind != kindSelf
}

// DepartmentIDs returns the department set restricting the scope, or
// nil when the scope is unrestricted or self-only.
func (s Scope) DepartmentIDs() []string {
	if s.kind != kindDepartments {
		return nil
	}
	ids := make([]string, len(s.departmentIDs))
	copy(ids, s.departmentIDs)
	return ids
}

// AllowsDepartment reports whether a record attached to the given
// department is visible.
func (s Scope) AllowsDepartment(departmentID string) bool {
	switch s.kind {
	case kindAll:
		return true
	case kindDepartments:
		for _, id := range s.departmentIDs {
			if id == departmentID {
				return true
			}
		}
	}
	return false
}

// AllowsEmployee reports whether a single employee record is visible,
// given the employee's id and department.
func (s Scope) AllowsEmployee(employeeID, departmentID string) bool {
	if s.kind == kindSelf {
		return s.employeeID != "" && s.employeeID == employeeID
	}
	return s.AllowsDepartment(departmentID)
}

// SelfEmployeeID returns the linked employee id for self-only scopes.
func (s Scope) SelfEmployeeID() (string, bool) {
	if s.kind == kindSelf && s.employeeID != "" {
		return s.employeeID, true
	}
	return "", false
}
