package employee

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

const employeeColumns = "e.id, e.name, e.email, e.national_id, e.phone, e.birth_date, e.department_id, e.position_id, e.manager_id, e.status, e.hired_at, e.salary, e.workload, e.work_schedule, e.work_mode, e.career_level, e.evaluation_score, e.created_at, e.updated_at"

func scanEmployee(row interface{ Scan(dest ...any) error }, extra ...any) (Employee, error) {
	var (
		e         Employee
		managerID *string
	)
	dest := []any{
		&e.ID, &e.Name, &e.Email, &e.NationalID, &e.Phone, &e.BirthDate,
		&e.DepartmentID, &e.PositionID, &managerID, &e.Status, &e.HiredAt,
		&e.Salary, &e.Workload, &e.WorkSchedule, &e.WorkMode, &e.CareerLevel,
		&e.EvaluationScore, &e.CreatedAt, &e.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return Employee{}, db.TranslateError(err)
	}
	if managerID != nil {
		e.ManagerID = *managerID
	}
	return e, nil
}

func scopeWhere(sc scope.Scope, where string, args []any) (string, []any) {
	if ids := sc.DepartmentIDs(); ids != nil {
		args = append(args, ids)
		where += fmt.Sprintf(" AND e.department_id = ANY($%d)", len(args))
	}
	if selfID, ok := sc.SelfEmployeeID(); ok {
		args = append(args, selfID)
		where += fmt.Sprintf(" AND e.id = $%d", len(args))
	}
	return where, args
}

func filterWhere(filter Filter, where string, args []any) (string, []any) {
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		where += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	if filter.PositionID != "" {
		args = append(args, filter.PositionID)
		where += fmt.Sprintf(" AND e.position_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	if filter.WorkMode != "" {
		args = append(args, filter.WorkMode)
		where += fmt.Sprintf(" AND e.work_mode = $%d", len(args))
	}
	if filter.CareerLevel != "" {
		args = append(args, filter.CareerLevel)
		where += fmt.Sprintf(" AND e.career_level = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (e.name ILIKE $%d OR e.email ILIKE $%d)", len(args), len(args))
	}
	return where, args
}

func (s *Store) List(ctx context.Context, sc scope.Scope, filter Filter, limit, offset int) ([]Detailed, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	where, args = scopeWhere(sc, where, args)
	where, args = filterWhere(filter, where, args)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
    SELECT %s, d.name, p.title
    FROM employees e
    JOIN departments d ON d.id = e.department_id
    JOIN positions p ON p.id = e.position_id
    %s ORDER BY e.name LIMIT $%d OFFSET $%d
  `, employeeColumns, where, len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	var out []Detailed
	for rows.Next() {
		var det Detailed
		e, err := scanEmployee(rows, &det.DepartmentName, &det.PositionTitle)
		if err != nil {
			return nil, 0, err
		}
		det.Employee = e
		out = append(out, det)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Detailed, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf(`
    SELECT %s, d.name, p.title
    FROM employees e
    JOIN departments d ON d.id = e.department_id
    JOIN positions p ON p.id = e.position_id
    WHERE e.id = $1
  `, employeeColumns), id)
	var det Detailed
	e, err := scanEmployee(row, &det.DepartmentName, &det.PositionTitle)
	if err != nil {
		return Detailed{}, err
	}
	det.Employee = e
	return det, nil
}

func (s *Store) Insert(ctx context.Context, e Employee) (string, error) {
	var managerID *string
	if e.ManagerID != "" {
		managerID = &e.ManagerID
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, national_id, phone, birth_date, department_id, position_id, manager_id,
                           status, hired_at, salary, workload, work_schedule, work_mode, career_level, evaluation_score)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id
  `, e.Name, e.Email, e.NationalID, e.Phone, e.BirthDate, e.DepartmentID, e.PositionID, managerID,
		e.Status, e.HiredAt, e.Salary, e.Workload, e.WorkSchedule, e.WorkMode, e.CareerLevel, e.EvaluationScore).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, e Employee) error {
	var managerID *string
	if e.ManagerID != "" {
		managerID = &e.ManagerID
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1, email = $2, national_id = $3, phone = $4, birth_date = $5,
        department_id = $6, position_id = $7, manager_id = $8, status = $9,
        hired_at = $10, salary = $11, workload = $12, work_schedule = $13,
        work_mode = $14, career_level = $15, evaluation_score = $16, updated_at = now()
    WHERE id = $17
  `, e.Name, e.Email, e.NationalID, e.Phone, e.BirthDate, e.DepartmentID, e.PositionID, managerID,
		e.Status, e.HiredAt, e.Salary, e.Workload, e.WorkSchedule, e.WorkMode, e.CareerLevel, e.EvaluationScore, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// HasPendingMovements guards deletes; an employee with open movements
// must have them resolved first.
func (s *Store) HasPendingMovements(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM movements WHERE employee_id = $1 AND status = 'Pending'", id).Scan(&count); err != nil {
		return false, db.TranslateError(err)
	}
	return count > 0, nil
}
