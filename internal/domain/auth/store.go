package auth

import (
	"context"

	"hrms/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

type credentials struct {
	User
	PasswordHash string
}

func (s *Store) findUser(ctx context.Context, where string, arg any) (credentials, error) {
	var (
		out        credentials
		employeeID *string
	)
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, role, employee_id, managed_department_ids, active, last_login, created_at
    FROM users
    WHERE `+where+`
  `, arg).Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash, &out.Role, &employeeID, &out.ManagedDepartmentIDs, &out.Active, &out.LastLogin, &out.CreatedAt)
	if err != nil {
		return credentials{}, db.TranslateError(err)
	}
	if employeeID != nil {
		out.EmployeeID = *employeeID
	}
	if out.ManagedDepartmentIDs == nil {
		out.ManagedDepartmentIDs = []string{}
	}
	return out, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (credentials, error) {
	return s.findUser(ctx, "email = $1 AND active", email)
}

func (s *Store) FindByID(ctx context.Context, id string) (credentials, error) {
	return s.findUser(ctx, "id = $1 AND active", id)
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1", userID)
	return db.TranslateError(err)
}

func (s *Store) Insert(ctx context.Context, u User, passwordHash string) (string, error) {
	var employeeID *string
	if u.EmployeeID != "" {
		employeeID = &u.EmployeeID
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, employee_id, managed_department_ids, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, u.Name, u.Email, passwordHash, u.Role, employeeID, u.ManagedDepartmentIDs, u.Active).Scan(&id)
	if err != nil {
		return "", db.TranslateError(err)
	}
	return id, nil
}

func (s *Store) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return 0, db.TranslateError(err)
	}
	return count, nil
}
