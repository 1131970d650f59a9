package org

import (
	"context"
	"strings"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/scope"
)

type orgStore interface {
	ListDepartments(ctx context.Context, sc scope.Scope, filter DepartmentFilter, limit, offset int) ([]Department, int, error)
	GetDepartment(ctx context.Context, id string) (Department, error)
	InsertDepartment(ctx context.Context, d Department) (string, error)
	UpdateDepartment(ctx context.Context, id string, d Department) error
	DeleteDepartment(ctx context.Context, id string) error
	DepartmentHasEmployees(ctx context.Context, id string) (bool, error)
	ListPositions(ctx context.Context, sc scope.Scope, filter PositionFilter, limit, offset int) ([]Position, int, error)
	GetPosition(ctx context.Context, id string) (Position, error)
	InsertPosition(ctx context.Context, p Position) (string, error)
	UpdatePosition(ctx context.Context, id string, p Position) error
	DeletePosition(ctx context.Context, id string) error
	PositionInUse(ctx context.Context, id string) (bool, error)
}

type Service struct {
	Store orgStore
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListDepartments(ctx context.Context, actor auth.Actor, filter DepartmentFilter, limit, offset int) ([]Department, int, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return nil, 0, err
	}
	if !sc.AllowsListing() {
		return nil, 0, apperror.ErrPermissionDenied
	}
	if sc.MatchesNothing() {
		return []Department{}, 0, nil
	}
	return s.Store.ListDepartments(ctx, sc, filter, limit, offset)
}

func (s *Service) GetDepartment(ctx context.Context, actor auth.Actor, id string) (Department, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Department{}, err
	}
	dep, err := s.Store.GetDepartment(ctx, id)
	if err != nil {
		return Department{}, err
	}
	if !sc.AllowsDepartment(dep.ID) {
		return Department{}, apperror.ErrPermissionDenied
	}
	return dep, nil
}

func validateDepartment(d Department) error {
	var issues []apperror.FieldIssue
	if strings.TrimSpace(d.Name) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "name", Reason: "is required"})
	}
	if strings.TrimSpace(d.CostCenter) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "costCenter", Reason: "is required"})
	}
	if d.Budget.Salaries < 0 {
		issues = append(issues, apperror.FieldIssue{Field: "budget.salaries", Reason: "must not be negative"})
	}
	if d.Budget.Headcount < 0 {
		issues = append(issues, apperror.FieldIssue{Field: "budget.headcount", Reason: "must not be negative"})
	}
	return apperror.ValidationIssues(issues)
}

func (s *Service) CreateDepartment(ctx context.Context, actor auth.Actor, d Department) (Department, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Department{}, apperror.ErrPermissionDenied
	}
	if err := validateDepartment(d); err != nil {
		return Department{}, err
	}
	d.Active = true
	id, err := s.Store.InsertDepartment(ctx, d)
	if err != nil {
		return Department{}, err
	}
	return s.Store.GetDepartment(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, actor auth.Actor, id string, d Department) (Department, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Department{}, apperror.ErrPermissionDenied
	}
	if err := validateDepartment(d); err != nil {
		return Department{}, err
	}
	if err := s.Store.UpdateDepartment(ctx, id, d); err != nil {
		return Department{}, err
	}
	return s.Store.GetDepartment(ctx, id)
}

func (s *Service) DeleteDepartment(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Role.CanFinalizeMovements() {
		return apperror.ErrPermissionDenied
	}
	inUse, err := s.Store.DepartmentHasEmployees(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Validation("id", "department still has employees assigned")
	}
	return s.Store.DeleteDepartment(ctx, id)
}

func (s *Service) ListPositions(ctx context.Context, actor auth.Actor, filter PositionFilter, limit, offset int) ([]Position, int, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return nil, 0, err
	}
	if !sc.AllowsListing() {
		return nil, 0, apperror.ErrPermissionDenied
	}
	if sc.MatchesNothing() {
		return []Position{}, 0, nil
	}
	return s.Store.ListPositions(ctx, sc, filter, limit, offset)
}

func (s *Service) GetPosition(ctx context.Context, actor auth.Actor, id string) (Position, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Position{}, err
	}
	pos, err := s.Store.GetPosition(ctx, id)
	if err != nil {
		return Position{}, err
	}
	if !sc.AllowsDepartment(pos.DepartmentID) {
		return Position{}, apperror.ErrPermissionDenied
	}
	return pos, nil
}

func validatePosition(p Position) error {
	var issues []apperror.FieldIssue
	if strings.TrimSpace(p.Title) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "title", Reason: "is required"})
	}
	if strings.TrimSpace(p.DepartmentID) == "" {
		issues = append(issues, apperror.FieldIssue{Field: "departmentId", Reason: "is required"})
	}
	if !p.CareerLevel.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "careerLevel", Reason: "is not a known career level"})
	}
	if p.SalaryRange.Min < 0 || p.SalaryRange.Max < p.SalaryRange.Min {
		issues = append(issues, apperror.FieldIssue{Field: "salaryRange", Reason: "min must be >= 0 and max >= min"})
	}
	return apperror.ValidationIssues(issues)
}

func (s *Service) CreatePosition(ctx context.Context, actor auth.Actor, p Position) (Position, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Position{}, apperror.ErrPermissionDenied
	}
	if err := validatePosition(p); err != nil {
		return Position{}, err
	}
	p.Active = true
	id, err := s.Store.InsertPosition(ctx, p)
	if err != nil {
		return Position{}, err
	}
	return s.Store.GetPosition(ctx, id)
}

func (s *Service) UpdatePosition(ctx context.Context, actor auth.Actor, id string, p Position) (Position, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Position{}, apperror.ErrPermissionDenied
	}
	if err := validatePosition(p); err != nil {
		return Position{}, err
	}
	if err := s.Store.UpdatePosition(ctx, id, p); err != nil {
		return Position{}, err
	}
	return s.Store.GetPosition(ctx, id)
}

func (s *Service) DeletePosition(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Role.CanFinalizeMovements() {
		return apperror.ErrPermissionDenied
	}
	inUse, err := s.Store.PositionInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Validation("id", "position is still assigned to employees")
	}
	return s.Store.DeletePosition(ctx, id)
}
