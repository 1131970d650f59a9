package movement

import (
	"context"
	"strings"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/org"
	"hrms/internal/domain/scope"
)

type movementStore interface {
	List(ctx context.Context, sc scope.Scope, filter Filter, limit, offset int) ([]Detailed, int, error)
	Get(ctx context.Context, id string) (Detailed, error)
	Insert(ctx context.Context, m Movement) (string, error)
	Update(ctx context.Context, m Movement) error
	Approve(ctx context.Context, id, employeeID, approverID string, mut EmployeeMutation) error
	Reject(ctx context.Context, id, approverID, reason string) error
	Delete(ctx context.Context, id string) error
}

type employeeSource interface {
	Get(ctx context.Context, id string) (employee.Detailed, error)
}

type positionSource interface {
	GetPosition(ctx context.Context, id string) (org.Position, error)
}

type Service struct {
	Store     movementStore
	Employees employeeSource
	Positions positionSource
}

func NewService(store *Store, employees *employee.Store, positions *org.Store) *Service {
	return &Service{Store: store, Employees: employees, Positions: positions}
}

func (s *Service) List(ctx context.Context, actor auth.Actor, filter Filter, limit, offset int) ([]Detailed, int, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return nil, 0, err
	}
	if !sc.AllowsListing() {
		return nil, 0, apperror.ErrPermissionDenied
	}
	if sc.MatchesNothing() {
		return []Detailed{}, 0, nil
	}
	return s.Store.List(ctx, sc, filter, limit, offset)
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (Detailed, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Detailed{}, err
	}
	det, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsEmployee(det.EmployeeID, det.DepartmentID) {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	return det, nil
}

func validateRequest(m Movement) error {
	var issues []apperror.FieldIssue
	if m.EmployeeID == "" {
		issues = append(issues, apperror.FieldIssue{Field: "employeeId", Reason: "is required"})
	}
	if !m.Type.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "type", Reason: "is not a known movement type"})
	}
	if strings.TrimSpace(m.Justification) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "justification", Reason: "is required"})
	}
	if m.EffectiveDate.IsZero() {
		issues = append(issues, apperror.FieldIssue{Field: "effectiveDate", Reason: "is required"})
	}
	if m.NewSalary != nil && *m.NewSalary < 0 {
		issues = append(issues, apperror.FieldIssue{Field: "newSalary", Reason: "must not be negative"})
	}

	switch m.Type {
	case TypePromotion:
		if m.NewPositionID == nil && m.NewSalary == nil {
			issues = append(issues, apperror.FieldIssue{Field: "newPositionId", Reason: "a promotion needs a new position or a new salary"})
		}
	case TypeTransfer:
		if m.NewDepartmentID == nil {
			issues = append(issues, apperror.FieldIssue{Field: "newDepartmentId", Reason: "is required for a transfer"})
		}
	case TypeSalaryAdjustment, TypeMerit, TypeSalaryEqualization:
		if m.NewSalary == nil {
			issues = append(issues, apperror.FieldIssue{Field: "newSalary", Reason: "is required for a salary movement"})
		}
	case TypeScheduleChange:
		if strings.TrimSpace(m.WorkSchedule) == "" {
			issues = append(issues, apperror.FieldIssue{Field: "workSchedule", Reason: "is required for a schedule change"})
		}
	case TypeModeChange:
		if !m.WorkMode.Valid() {
			issues = append(issues, apperror.FieldIssue{Field: "workMode", Reason: "is not a known work mode"})
		}
	}
	return apperror.ValidationIssues(issues)
}

// Create opens a movement request, snapshotting the employee's current
// department, position and salary.
func (s *Service) Create(ctx context.Context, actor auth.Actor, m Movement) (Detailed, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsListing() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	if err := validateRequest(m); err != nil {
		return Detailed{}, err
	}

	emp, err := s.Employees.Get(ctx, m.EmployeeID)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsDepartment(emp.DepartmentID) {
		return Detailed{}, apperror.ErrPermissionDenied
	}

	// A promotion follows the new position's department; a transfer's
	// target position must live in the target department.
	if m.NewPositionID != nil {
		pos, err := s.Positions.GetPosition(ctx, *m.NewPositionID)
		if err != nil {
			return Detailed{}, err
		}
		switch m.Type {
		case TypePromotion:
			dept := pos.DepartmentID
			m.NewDepartmentID = &dept
		case TypeTransfer:
			if m.NewDepartmentID != nil && pos.DepartmentID != *m.NewDepartmentID {
				return Detailed{}, apperror.Validation("newPositionId", "position does not belong to the target department")
			}
		}
	}

	m.PreviousDepartmentID = &emp.DepartmentID
	m.PreviousPositionID = &emp.PositionID
	salary := emp.Salary
	m.PreviousSalary = &salary
	m.Status = StatusPending

	id, err := s.Store.Insert(ctx, m)
	if err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

// Update rewrites a still-pending request. The movement's employee and
// request-time snapshots are fixed at creation; everything else may
// change until the request is finalized.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, m Movement) (Detailed, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detailed{}, err
	}
	if existing.Status != StatusPending {
		return Detailed{}, apperror.ErrAlreadyFinalized
	}

	m.ID = id
	m.EmployeeID = existing.EmployeeID
	if err := validateRequest(m); err != nil {
		return Detailed{}, err
	}
	if m.NewPositionID != nil {
		pos, err := s.Positions.GetPosition(ctx, *m.NewPositionID)
		if err != nil {
			return Detailed{}, err
		}
		switch m.Type {
		case TypePromotion:
			dept := pos.DepartmentID
			m.NewDepartmentID = &dept
		case TypeTransfer:
			if m.NewDepartmentID != nil && pos.DepartmentID != *m.NewDepartmentID {
				return Detailed{}, apperror.Validation("newPositionId", "position does not belong to the target department")
			}
		}
	}

	if err := s.Store.Update(ctx, m); err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

// Approve finalizes a pending movement and applies its employee
// mutation exactly once. Approving a movement that is no longer
// pending returns ErrAlreadyFinalized.
func (s *Service) Approve(ctx context.Context, actor auth.Actor, id string, in ApprovalInput) (Detailed, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	det, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detailed{}, err
	}
	if det.Status != StatusPending {
		return Detailed{}, apperror.ErrAlreadyFinalized
	}
	mut := MutationFor(det.Movement, in)
	if err := s.Store.Approve(ctx, id, det.EmployeeID, actor.ID, mut); err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

// Reject finalizes a pending movement without touching the employee.
func (s *Service) Reject(ctx context.Context, actor auth.Actor, id, reason string) (Detailed, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	if strings.TrimSpace(reason) == "" {
		return Detailed{}, apperror.Validation("reason", "is required")
	}
	det, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detailed{}, err
	}
	if det.Status != StatusPending {
		return Detailed{}, apperror.ErrAlreadyFinalized
	}
	if err := s.Store.Reject(ctx, id, actor.ID, reason); err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

// Delete removes a movement in any state. An approved movement's
// effect on the employee record stays in place.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Role.CanFinalizeMovements() {
		return apperror.ErrPermissionDenied
	}
	if _, err := s.Store.Get(ctx, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}
