package employee

import (
	"context"
	"strings"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/org"
	"hrms/internal/domain/scope"
)

type employeeStore interface {
	List(ctx context.Context, sc scope.Scope, filter Filter, limit, offset int) ([]Detailed, int, error)
	Get(ctx context.Context, id string) (Detailed, error)
	Insert(ctx context.Context, e Employee) (string, error)
	Update(ctx context.Context, id string, e Employee) error
	Delete(ctx context.Context, id string) error
	HasPendingMovements(ctx context.Context, id string) (bool, error)
}

type positionSource interface {
	GetPosition(ctx context.Context, id string) (org.Position, error)
}

type Service struct {
	Store     employeeStore
	Positions positionSource
}

func NewService(store *Store, positions *org.Store) *Service {
	return &Service{Store: store, Positions: positions}
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
	if !sc.AllowsEmployee(det.ID, det.DepartmentID) {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	return det, nil
}

func (s *Service) validate(ctx context.Context, e Employee) error {
	var issues []apperror.FieldIssue
	if strings.TrimSpace(e.Name) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "name", Reason: "is required"})
	}
	if strings.TrimSpace(e.Email) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "email", Reason: "is required"})
	}
	if strings.TrimSpace(e.NationalID) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "nationalId", Reason: "is required"})
	}
	if e.DepartmentID == "" {
		issues = append(issues, apperror.FieldIssue{Field: "departmentId", Reason: "is required"})
	}
	if e.PositionID == "" {
		issues = append(issues, apperror.FieldIssue{Field: "positionId", Reason: "is required"})
	}
	if !e.Status.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "status", Reason: "is not a known status"})
	}
	if e.Salary < 0 {
		issues = append(issues, apperror.FieldIssue{Field: "salary", Reason: "must not be negative"})
	}
	if !ValidWorkload(e.Workload) {
		issues = append(issues, apperror.FieldIssue{Field: "workload", Reason: "must be one of 150, 180, 200 or 220"})
	}
	if !e.WorkMode.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "workMode", Reason: "is not a known work mode"})
	}
	if e.CareerLevel != "" && !e.CareerLevel.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "careerLevel", Reason: "is not a known career level"})
	}
	if e.EvaluationScore < 0 || e.EvaluationScore > 10 {
		issues = append(issues, apperror.FieldIssue{Field: "evaluationScore", Reason: "must be between 0 and 10"})
	}
	if len(issues) > 0 {
		return apperror.ValidationIssues(issues)
	}

	// The position must belong to the employee's department.
	pos, err := s.Positions.GetPosition(ctx, e.PositionID)
	if err != nil {
		return err
	}
	if pos.DepartmentID != e.DepartmentID {
		return apperror.Validation("positionId", "position does not belong to the given department")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, e Employee) (Detailed, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsListing() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.WorkMode == "" {
		e.WorkMode = WorkModeOnSite
	}
	if err := s.validate(ctx, e); err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsDepartment(e.DepartmentID) {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	id, err := s.Store.Insert(ctx, e)
	if err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, e Employee) (Detailed, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsListing() {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detailed{}, err
	}
	if !sc.AllowsDepartment(current.DepartmentID) || !sc.AllowsDepartment(e.DepartmentID) {
		return Detailed{}, apperror.ErrPermissionDenied
	}
	if err := s.validate(ctx, e); err != nil {
		return Detailed{}, err
	}
	if err := s.Store.Update(ctx, id, e); err != nil {
		return Detailed{}, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Role.CanFinalizeMovements() {
		return apperror.ErrPermissionDenied
	}
	pending, err := s.Store.HasPendingMovements(ctx, id)
	if err != nil {
		return err
	}
	if pending {
		return apperror.Validation("id", "employee has pending movements")
	}
	return s.Store.Delete(ctx, id)
}
