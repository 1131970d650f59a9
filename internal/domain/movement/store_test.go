package movement

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"hrms/internal/domain/apperror"
)

func TestStoreApproveAppliesMutation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)
	mut := MutationFor(Movement{
		Type:            TypeTransfer,
		NewDepartmentID: ptr("dept-2"),
	}, ApprovalInput{})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movements SET status = 'Approved'")).
		WithArgs("mov-1", "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET department_id = $2")).
		WithArgs("emp-1", "dept-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := store.Approve(context.Background(), "mov-1", "emp-1", "admin-1", mut); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreApproveSkipsEmployeeOnEmptyMutation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movements SET status = 'Approved'")).
		WithArgs("mov-1", "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := store.Approve(context.Background(), "mov-1", "emp-1", "admin-1", EmployeeMutation{}); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreApproveLosesRace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movements SET status = 'Approved'")).
		WithArgs("mov-1", "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = store.Approve(context.Background(), "mov-1", "emp-1", "admin-1", EmployeeMutation{})
	if !errors.Is(err, apperror.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreRejectAlreadyFinalized(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE movements SET status = 'Rejected'")).
		WithArgs("mov-1", "not eligible", "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = store.Reject(context.Background(), "mov-1", "admin-1", "not eligible")
	if !errors.Is(err, apperror.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreDeleteAnyStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movements WHERE id = $1")).
		WithArgs("mov-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := store.Delete(context.Background(), "mov-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movements WHERE id = $1")).
		WithArgs("mov-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = store.Delete(context.Background(), "mov-1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreInsertReturnsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO movements")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("mov-7"))

	id, err := store.Insert(context.Background(), Movement{
		EmployeeID:    "emp-1",
		Type:          TypeTermination,
		Justification: "contract end",
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if id != "mov-7" {
		t.Fatalf("expected id mov-7, got %s", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
