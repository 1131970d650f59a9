package dashboard

import (
	"context"
	"fmt"
	"time"

	"hrms/internal/domain/scope"
	"hrms/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func scopeArgs(sc scope.Scope, column string) (string, []any) {
	if ids := sc.DepartmentIDs(); ids != nil {
		return fmt.Sprintf(" AND %s = ANY($1)", column), []any{ids}
	}
	return "", nil
}

func (s *Store) EmployeeSnapshots(ctx context.Context, sc scope.Scope) ([]EmployeeSnapshot, error) {
	where, args := scopeArgs(sc, "e.department_id")
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.department_id, d.name, e.position_id, p.title,
           e.status, e.work_mode, e.workload, e.career_level, e.salary
    FROM employees e
    JOIN departments d ON d.id = e.department_id
    JOIN positions p ON p.id = e.position_id
    WHERE 1=1`+where, args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []EmployeeSnapshot
	for rows.Next() {
		var e EmployeeSnapshot
		err := rows.Scan(&e.ID, &e.DepartmentID, &e.DepartmentName, &e.PositionID, &e.PositionTitle,
			&e.Status, &e.WorkMode, &e.Workload, &e.CareerLevel, &e.Salary)
		if err != nil {
			return nil, db.TranslateError(err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) MovementSnapshots(ctx context.Context, sc scope.Scope, since time.Time) ([]MovementSnapshot, error) {
	where, args := scopeArgs(sc, "e.department_id")
	args = append(args, since)
	rows, err := s.DB.Query(ctx, fmt.Sprintf(`
    SELECT m.id, e.name, m.type, m.status, m.requested_at, m.effective_date
    FROM movements m
    JOIN employees e ON e.id = m.employee_id
    WHERE m.effective_date >= $%d%s`, len(args), where), args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []MovementSnapshot
	for rows.Next() {
		var m MovementSnapshot
		if err := rows.Scan(&m.ID, &m.EmployeeName, &m.Type, &m.Status, &m.RequestedAt, &m.EffectiveDate); err != nil {
			return nil, db.TranslateError(err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) PositionCount(ctx context.Context, sc scope.Scope) (int, error) {
	where, args := scopeArgs(sc, "department_id")
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM positions WHERE active"+where, args...).Scan(&count)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return count, nil
}

func (s *Store) DepartmentSnapshots(ctx context.Context, sc scope.Scope) ([]DepartmentSnapshot, error) {
	where, args := scopeArgs(sc, "id")
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, budget_salaries, budget_headcount
    FROM departments
    WHERE active`+where, args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []DepartmentSnapshot
	for rows.Next() {
		var d DepartmentSnapshot
		if err := rows.Scan(&d.ID, &d.Name, &d.BudgetSalaries, &d.BudgetHeadcount); err != nil {
			return nil, db.TranslateError(err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
