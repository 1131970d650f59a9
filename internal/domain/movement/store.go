package movement

import (
	"context"
	"fmt"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/scope"
	"hrms/internal/platform/db"
)

type Store struct {
	DB db.TxBeginner
}

func NewStore(pool db.TxBeginner) *Store {
	return &Store{DB: pool}
}

const movementColumns = "m.id, m.employee_id, m.type, m.previous_department_id, m.new_department_id, m.previous_position_id, m.new_position_id, m.previous_salary, m.new_salary, m.work_schedule, m.work_mode, m.justification, m.notes, m.requested_at, m.effective_date, m.status, m.rejection_reason, m.approved_by, m.created_at, m.updated_at"

func scanMovement(row interface{ Scan(dest ...any) error }, extra ...any) (Movement, error) {
	var (
		m          Movement
		approvedBy *string
	)
	dest := []any{
		&m.ID, &m.EmployeeID, &m.Type, &m.PreviousDepartmentID, &m.NewDepartmentID,
		&m.PreviousPositionID, &m.NewPositionID, &m.PreviousSalary, &m.NewSalary,
		&m.WorkSchedule, &m.WorkMode, &m.Justification, &m.Notes, &m.RequestedAt,
		&m.EffectiveDate, &m.Status, &m.RejectionReason, &approvedBy, &m.CreatedAt, &m.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return Movement{}, db.TranslateError(err)
	}
	if approvedBy != nil {
		m.ApprovedBy = *approvedBy
	}
	return m, nil
}

func (s *Store) List(ctx context.Context, sc scope.Scope, filter Filter, limit, offset int) ([]Detailed, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if ids := sc.DepartmentIDs(); ids != nil {
		args = append(args, ids)
		where += fmt.Sprintf(" AND e.department_id = ANY($%d)", len(args))
	}
	if selfID, ok := sc.SelfEmployeeID(); ok {
		args = append(args, selfID)
		where += fmt.Sprintf(" AND m.employee_id = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND m.employee_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND m.type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND m.status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND m.effective_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND m.effective_date <= $%d", len(args))
	}

	from := " FROM movements m JOIN employees e ON e.id = m.employee_id"

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+from+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s, e.name, e.department_id%s%s ORDER BY m.requested_at DESC LIMIT $%d OFFSET $%d",
		movementColumns, from, where, len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	var out []Detailed
	for rows.Next() {
		var det Detailed
		m, err := scanMovement(rows, &det.EmployeeName, &det.DepartmentID)
		if err != nil {
			return nil, 0, err
		}
		det.Movement = m
		out = append(out, det)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Detailed, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf(`
    SELECT %s, e.name, e.department_id
    FROM movements m JOIN employees e ON e.id = m.employee_id
    WHERE m.id = $1
  `, movementColumns), id)
	var det Detailed
	m, err := scanMovement(row, &det.EmployeeName, &det.DepartmentID)
	if err != nil {
		return Detailed{}, err
	}
	det.Movement = m
	return det, nil
}

func (s *Store) Insert(ctx context.Context, m Movement) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO movements (employee_id, type, previous_department_id, new_department_id,
                           previous_position_id, new_position_id, previous_salary, new_salary,
                           work_schedule, work_mode, justification, notes, effective_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,'Pending')
    RETURNING id
  `, m.EmployeeID, m.Type, m.PreviousDepartmentID, m.NewDepartmentID,
		m.PreviousPositionID, m.NewPositionID, m.PreviousSalary, m.NewSalary,
		m.WorkSchedule, m.WorkMode, m.Justification, m.Notes, m.EffectiveDate).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

// Update rewrites the request while it is still pending. The same
// compare-and-set as Approve keeps finalized movements immutable.
func (s *Store) Update(ctx context.Context, m Movement) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE movements SET type = $2, new_department_id = $3, new_position_id = $4, new_salary = $5,
                         work_schedule = $6, work_mode = $7, justification = $8, notes = $9,
                         effective_date = $10, updated_at = now()
    WHERE id = $1 AND status = 'Pending'
  `, m.ID, m.Type, m.NewDepartmentID, m.NewPositionID, m.NewSalary,
		m.WorkSchedule, m.WorkMode, m.Justification, m.Notes, m.EffectiveDate)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAlreadyFinalized
	}
	return nil
}

// Approve finalizes the movement and applies the employee mutation in
// one transaction. The status flip is a compare-and-set on Pending;
// losing the race returns ErrAlreadyFinalized and the employee is
// untouched.
func (s *Store) Approve(ctx context.Context, id, employeeID, approverID string, mut EmployeeMutation) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return db.TranslateError(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE movements SET status = 'Approved', approved_by = $2, updated_at = now()
    WHERE id = $1 AND status = 'Pending'
  `, id, approverID)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAlreadyFinalized
	}

	if !mut.IsZero() {
		set := ""
		args := []any{employeeID}
		add := func(column string, value any) {
			args = append(args, value)
			if set != "" {
				set += ", "
			}
			set += fmt.Sprintf("%s = $%d", column, len(args))
		}
		if v, ok := mut.DepartmentID(); ok {
			add("department_id", v)
		}
		if v, ok := mut.PositionID(); ok {
			add("position_id", v)
		}
		if v, ok := mut.Salary(); ok {
			add("salary", v)
		}
		if v, ok := mut.WorkSchedule(); ok {
			add("work_schedule", v)
		}
		if v, ok := mut.WorkMode(); ok {
			add("work_mode", v)
		}
		if v, ok := mut.Status(); ok {
			add("status", v)
		}
		query := fmt.Sprintf("UPDATE employees SET %s, updated_at = now() WHERE id = $1", set)
		tag, err = tx.Exec(ctx, query, args...)
		if err != nil {
			return db.TranslateError(err)
		}
		if tag.RowsAffected() == 0 {
			return apperror.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

// Reject finalizes the movement with a reason. Same compare-and-set as
// Approve; the employee record is never touched.
func (s *Store) Reject(ctx context.Context, id, approverID, reason string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE movements SET status = 'Rejected', rejection_reason = $2, approved_by = $3, updated_at = now()
    WHERE id = $1 AND status = 'Pending'
  `, id, reason, approverID)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAlreadyFinalized
	}
	return nil
}

// Delete removes a movement regardless of status. The employee record
// keeps whatever an earlier approval applied.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM movements WHERE id = $1", id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
