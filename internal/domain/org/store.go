package org

import (
	"context"
	"fmt"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/scope"
	"hrms/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

const departmentColumns = "id, name, description, cost_center, manager_id, budget_salaries, budget_headcount, active, created_at, updated_at"

func scanDepartment(row interface{ Scan(dest ...any) error }) (Department, error) {
	var (
		d         Department
		managerID *string
	)
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CostCenter, &managerID, &d.Budget.Salaries, &d.Budget.Headcount, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Department{}, db.TranslateError(err)
	}
	if managerID != nil {
		d.ManagerID = *managerID
	}
	return d, nil
}

func (s *Store) ListDepartments(ctx context.Context, sc scope.Scope, filter DepartmentFilter, limit, offset int) ([]Department, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if ids := sc.DepartmentIDs(); ids != nil {
		args = append(args, ids)
		where += fmt.Sprintf(" AND id = ANY($%d)", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where += fmt.Sprintf(" AND active = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments"+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM departments%s ORDER BY name LIMIT $%d OFFSET $%d", departmentColumns, where, len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id string) (Department, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM departments WHERE id = $1", departmentColumns), id)
	return scanDepartment(row)
}

func (s *Store) InsertDepartment(ctx context.Context, d Department) (string, error) {
	var managerID *string
	if d.ManagerID != "" {
		managerID = &d.ManagerID
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description, cost_center, manager_id, budget_salaries, budget_headcount, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, d.Name, d.Description, d.CostCenter, managerID, d.Budget.Salaries, d.Budget.Headcount, d.Active).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id string, d Department) error {
	var managerID *string
	if d.ManagerID != "" {
		managerID = &d.ManagerID
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET name = $1, description = $2, cost_center = $3, manager_id = $4,
        budget_salaries = $5, budget_headcount = $6, active = $7, updated_at = now()
    WHERE id = $8
  `, d.Name, d.Description, d.CostCenter, managerID, d.Budget.Salaries, d.Budget.Headcount, d.Active, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) DepartmentHasEmployees(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", id).Scan(&count); err != nil {
		return false, db.TranslateError(err)
	}
	return count > 0, nil
}

const positionColumns = "id, title, description, department_id, salary_min, salary_max, career_level, active, created_at, updated_at"

func scanPosition(row interface{ Scan(dest ...any) error }) (Position, error) {
	var p Position
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.DepartmentID, &p.SalaryRange.Min, &p.SalaryRange.Max, &p.CareerLevel, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Position{}, db.TranslateError(err)
	}
	return p, nil
}

func (s *Store) ListPositions(ctx context.Context, sc scope.Scope, filter PositionFilter, limit, offset int) ([]Position, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if ids := sc.DepartmentIDs(); ids != nil {
		args = append(args, ids)
		where += fmt.Sprintf(" AND department_id = ANY($%d)", len(args))
	}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		where += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filter.CareerLevel != "" {
		args = append(args, filter.CareerLevel)
		where += fmt.Sprintf(" AND career_level = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where += fmt.Sprintf(" AND active = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM positions"+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM positions%s ORDER BY title LIMIT $%d OFFSET $%d", positionColumns, where, len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (s *Store) GetPosition(ctx context.Context, id string) (Position, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM positions WHERE id = $1", positionColumns), id)
	return scanPosition(row)
}

func (s *Store) InsertPosition(ctx context.Context, p Position) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO positions (title, description, department_id, salary_min, salary_max, career_level, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, p.Title, p.Description, p.DepartmentID, p.SalaryRange.Min, p.SalaryRange.Max, p.CareerLevel, p.Active).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

func (s *Store) UpdatePosition(ctx context.Context, id string, p Position) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE positions
    SET title = $1, description = $2, department_id = $3, salary_min = $4,
        salary_max = $5, career_level = $6, active = $7, updated_at = now()
    WHERE id = $8
  `, p.Title, p.Description, p.DepartmentID, p.SalaryRange.Min, p.SalaryRange.Max, p.CareerLevel, p.Active, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePosition(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE id = $1", id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) PositionInUse(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE position_id = $1", id).Scan(&count); err != nil {
		return false, db.TranslateError(err)
	}
	return count > 0, nil
}
