package employee

import (
	"context"
	"errors"
	"testing"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/org"
	"hrms/internal/domain/scope"
)

type fakeEmployeeStore struct {
	employees map[string]Detailed
	pending   bool
	nextID    string
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[string]Detailed{}, nextID: "e-new"}
}

func (f *fakeEmployeeStore) List(_ context.Context, sc scope.Scope, _ Filter, _, _ int) ([]Detailed, int, error) {
	var out []Detailed
	for _, e := range f.employees {
		if sc.AllowsDepartment(e.DepartmentID) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEmployeeStore) Get(_ context.Context, id string) (Detailed, error) {
	e, ok := f.employees[id]
	if !ok {
		return Detailed{}, apperror.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeStore) Insert(_ context.Context, e Employee) (string, error) {
	e.ID = f.nextID
	f.employees[e.ID] = Detailed{Employee: e}
	return e.ID, nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, id string, e Employee) error {
	if _, ok := f.employees[id]; !ok {
		return apperror.ErrNotFound
	}
	e.ID = id
	f.employees[id] = Detailed{Employee: e}
	return nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeStore) HasPendingMovements(_ context.Context, _ string) (bool, error) {
	return f.pending, nil
}

type fakePositionSource struct {
	positions map[string]org.Position
}

func (f *fakePositionSource) GetPosition(_ context.Context, id string) (org.Position, error) {
	p, ok := f.positions[id]
	if !ok {
		return org.Position{}, apperror.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, *fakeEmployeeStore) {
	store := newFakeEmployeeStore()
	positions := &fakePositionSource{positions: map[string]org.Position{
		"p1": {ID: "p1", Title: "Engineer", DepartmentID: "d1", CareerLevel: org.LevelMid},
		"p2": {ID: "p2", Title: "Analyst", DepartmentID: "d2", CareerLevel: org.LevelJunior},
	}}
	return &Service{Store: store, Positions: positions}, store
}

func validEmployee() Employee {
	return Employee{
		Name:         "Ana Souza",
		Email:        "ana.souza@example.com",
		NationalID:   "123.456.789-00",
		DepartmentID: "d1",
		PositionID:   "p1",
		Status:       StatusActive,
		Salary:       8500,
		Workload:     180,
		WorkMode:     WorkModeHybrid,
		CareerLevel:  org.LevelMid,
	}
}

func TestCreateEmployee(t *testing.T) {
	svc, store := newTestService()
	actor := auth.Actor{ID: "u1", Role: auth.RoleAdmin}

	det, err := svc.Create(context.Background(), actor, validEmployee())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if det.ID == "" {
		t.Fatal("expected an id on the created employee")
	}
	if _, ok := store.employees[det.ID]; !ok {
		t.Fatal("employee was not persisted")
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc, _ := newTestService()
	actor := auth.Actor{ID: "u1", Role: auth.RoleAdmin}

	e := validEmployee()
	e.Name = ""
	e.Workload = 175
	e.EvaluationScore = 11

	_, err := svc.Create(context.Background(), actor, e)
	v, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(v.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(v.Issues), v.Issues)
	}
}

func TestCreateEmployeePositionDepartmentMismatch(t *testing.T) {
	svc, _ := newTestService()
	actor := auth.Actor{ID: "u1", Role: auth.RoleAdmin}

	e := validEmployee()
	e.PositionID = "p2" // belongs to d2

	_, err := svc.Create(context.Background(), actor, e)
	if _, ok := apperror.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateEmployeeOutOfScope(t *testing.T) {
	svc, _ := newTestService()
	actor := auth.Actor{ID: "u1", Role: auth.RoleManager, ManagedDepartmentIDs: []string{"d2"}}

	_, err := svc.Create(context.Background(), actor, validEmployee())
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestGetEmployeeSelfScope(t *testing.T) {
	svc, store := newTestService()
	store.employees["e1"] = Detailed{Employee: Employee{ID: "e1", Name: "Ana", DepartmentID: "d1"}}
	store.employees["e2"] = Detailed{Employee: Employee{ID: "e2", Name: "Bia", DepartmentID: "d1"}}
	actor := auth.Actor{ID: "u1", Role: auth.RoleUser, EmployeeID: "e1"}

	if _, err := svc.Get(context.Background(), actor, "e1"); err != nil {
		t.Fatalf("Get own record: %v", err)
	}
	if _, err := svc.Get(context.Background(), actor, "e2"); !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for another record, got %v", err)
	}
}

func TestListEmployeesSelfScopeDenied(t *testing.T) {
	svc, _ := newTestService()
	actor := auth.Actor{ID: "u1", Role: auth.RoleUser, EmployeeID: "e1"}

	_, _, err := svc.List(context.Background(), actor, Filter{}, 25, 0)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestListEmployeesEmptyManagedSet(t *testing.T) {
	svc, store := newTestService()
	store.employees["e1"] = Detailed{Employee: Employee{ID: "e1", DepartmentID: "d1"}}
	actor := auth.Actor{ID: "u1", Role: auth.RoleBusinessPartner}

	items, total, err := svc.List(context.Background(), actor, Filter{}, 25, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected empty result, got %d items", len(items))
	}
}

func TestDeleteEmployeeWithPendingMovements(t *testing.T) {
	svc, store := newTestService()
	store.employees["e1"] = Detailed{Employee: Employee{ID: "e1", DepartmentID: "d1"}}
	store.pending = true
	actor := auth.Actor{ID: "u1", Role: auth.RoleDirector}

	err := svc.Delete(context.Background(), actor, "e1")
	if _, ok := apperror.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := store.employees["e1"]; !ok {
		t.Fatal("employee should not have been deleted")
	}
}

func TestUpdateEmployeeMovesDepartmentOutOfScope(t *testing.T) {
	svc, store := newTestService()
	store.employees["e1"] = Detailed{Employee: Employee{ID: "e1", DepartmentID: "d1"}}
	actor := auth.Actor{ID: "u1", Role: auth.RoleManager, ManagedDepartmentIDs: []string{"d1"}}

	e := validEmployee()
	e.DepartmentID = "d2"
	e.PositionID = "p2"

	_, err := svc.Update(context.Background(), actor, "e1", e)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
