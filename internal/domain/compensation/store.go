package compensation

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

const bandColumns = "id, position_id, career_level, min_value, max_value, current, created_at, updated_at"

func scanBand(row interface{ Scan(dest ...any) error }) (Band, error) {
	var b Band
	err := row.Scan(&b.ID, &b.PositionID, &b.CareerLevel, &b.MinValue, &b.MaxValue, &b.Current, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Band{}, db.TranslateError(err)
	}
	return b, nil
}

func (s *Store) ListBands(ctx context.Context, filter BandFilter, limit, offset int) ([]Band, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.PositionID != "" {
		args = append(args, filter.PositionID)
		where += fmt.Sprintf(" AND position_id = $%d", len(args))
	}
	if filter.CareerLevel != "" {
		args = append(args, filter.CareerLevel)
		where += fmt.Sprintf(" AND career_level = $%d", len(args))
	}
	if filter.Current != nil {
		args = append(args, *filter.Current)
		where += fmt.Sprintf(" AND current = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM compensation_bands"+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM compensation_bands%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", bandColumns, where, len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	var out []Band
	for rows.Next() {
		b, err := scanBand(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (s *Store) GetBand(ctx context.Context, id string) (Band, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM compensation_bands WHERE id = $1", bandColumns), id)
	return scanBand(row)
}

// InsertBand makes the new band current and retires the previous
// current band for the same (position, level) pair.
func (s *Store) InsertBand(ctx context.Context, b Band) (string, error) {
	_, err := s.DB.Exec(ctx, `
    UPDATE compensation_bands SET current = false, updated_at = now()
    WHERE position_id = $1 AND career_level = $2 AND current
  `, b.PositionID, b.CareerLevel)
	if err != nil {
		return "", db.TranslateError(err)
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO compensation_bands (position_id, career_level, min_value, max_value, current)
    VALUES ($1,$2,$3,$4,true)
    RETURNING id
  `, b.PositionID, b.CareerLevel, b.MinValue, b.MaxValue).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

func (s *Store) UpdateBand(ctx context.Context, id string, b Band) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE compensation_bands
    SET min_value = $1, max_value = $2, updated_at = now()
    WHERE id = $3
  `, b.MinValue, b.MaxValue, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBand(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM compensation_bands WHERE id = $1", id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// ComparisonRows loads every active employee visible to the scope
// together with the current band for their position and level.
func (s *Store) ComparisonRows(ctx context.Context, sc scope.Scope) ([]ComparisonRow, error) {
	where := " WHERE e.status = 'Active'"
	args := []any{}
	if ids := sc.DepartmentIDs(); ids != nil {
		args = append(args, ids)
		where += fmt.Sprintf(" AND e.department_id = ANY($%d)", len(args))
	}
	query := `
    SELECT e.id, e.name, e.department_id, d.name, e.position_id, p.title,
           e.career_level, e.salary, e.evaluation_score,
           b.id, b.min_value, b.max_value
    FROM employees e
    JOIN departments d ON d.id = e.department_id
    JOIN positions p ON p.id = e.position_id
    LEFT JOIN compensation_bands b
      ON b.position_id = e.position_id AND b.career_level = e.career_level AND b.current
  ` + where
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []ComparisonRow
	for rows.Next() {
		var (
			row     ComparisonRow
			bandID  *string
			bandMin *float64
			bandMax *float64
		)
		err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.DepartmentID, &row.DepartmentName,
			&row.PositionID, &row.PositionTitle, &row.CareerLevel, &row.Salary, &row.EvaluationScore,
			&bandID, &bandMin, &bandMax)
		if err != nil {
			return nil, db.TranslateError(err)
		}
		if bandID != nil {
			row.Band = &Band{
				ID:          *bandID,
				PositionID:  row.PositionID,
				CareerLevel: row.CareerLevel,
				MinValue:    *bandMin,
				MaxValue:    *bandMax,
				Current:     true,
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
