package org

import (
	"context"
	"errors"
	"testing"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/scope"
)

type fakeOrgStore struct {
	departments  map[string]Department
	positions    map[string]Position
	hasEmployees bool
	positionUsed bool
}

func newFakeOrgStore() *fakeOrgStore {
	return &fakeOrgStore{
		departments: map[string]Department{},
		positions:   map[string]Position{},
	}
}

func (f *fakeOrgStore) ListDepartments(_ context.Context, sc scope.Scope, _ DepartmentFilter, _, _ int) ([]Department, int, error) {
	var out []Department
	for _, d := range f.departments {
		if sc.AllowsDepartment(d.ID) {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrgStore) GetDepartment(_ context.Context, id string) (Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return Department{}, apperror.ErrNotFound
	}
	return d, nil
}

func (f *fakeOrgStore) InsertDepartment(_ context.Context, d Department) (string, error) {
	if d.ID == "" {
		d.ID = "dep-new"
	}
	f.departments[d.ID] = d
	return d.ID, nil
}

func (f *fakeOrgStore) UpdateDepartment(_ context.Context, id string, d Department) error {
	if _, ok := f.departments[id]; !ok {
		return apperror.ErrNotFound
	}
	d.ID = id
	f.departments[id] = d
	return nil
}

func (f *fakeOrgStore) DeleteDepartment(_ context.Context, id string) error {
	if _, ok := f.departments[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeOrgStore) DepartmentHasEmployees(_ context.Context, _ string) (bool, error) {
	return f.hasEmployees, nil
}

func (f *fakeOrgStore) ListPositions(_ context.Context, sc scope.Scope, _ PositionFilter, _, _ int) ([]Position, int, error) {
	var out []Position
	for _, p := range f.positions {
		if sc.AllowsDepartment(p.DepartmentID) {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrgStore) GetPosition(_ context.Context, id string) (Position, error) {
	p, ok := f.positions[id]
	if !ok {
		return Position{}, apperror.ErrNotFound
	}
	return p, nil
}

func (f *fakeOrgStore) InsertPosition(_ context.Context, p Position) (string, error) {
	if p.ID == "" {
		p.ID = "pos-new"
	}
	f.positions[p.ID] = p
	return p.ID, nil
}

func (f *fakeOrgStore) UpdatePosition(_ context.Context, id string, p Position) error {
	if _, ok := f.positions[id]; !ok {
		return apperror.ErrNotFound
	}
	p.ID = id
	f.positions[id] = p
	return nil
}

func (f *fakeOrgStore) DeletePosition(_ context.Context, id string) error {
	if _, ok := f.positions[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.positions, id)
	return nil
}

func (f *fakeOrgStore) PositionInUse(_ context.Context, _ string) (bool, error) {
	return f.positionUsed, nil
}

func adminActor() auth.Actor {
	return auth.Actor{ID: "u1", Name: "Admin", Role: auth.RoleAdmin}
}

func managerActor(deps ...string) auth.Actor {
	return auth.Actor{ID: "u2", Name: "Manager", Role: auth.RoleManager, ManagedDepartmentIDs: deps}
}

func TestListDepartmentsScoped(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["d1"] = Department{ID: "d1", Name: "Engineering", CostCenter: "CC-01"}
	store.departments["d2"] = Department{ID: "d2", Name: "Finance", CostCenter: "CC-02"}
	svc := &Service{Store: store}

	items, total, err := svc.ListDepartments(context.Background(), managerActor("d1"), DepartmentFilter{}, 25, 0)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "d1" {
		t.Fatalf("expected only managed department, got %d items", len(items))
	}
}

func TestListDepartmentsEmptyManagedSet(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["d1"] = Department{ID: "d1", Name: "Engineering"}
	svc := &Service{Store: store}

	items, total, err := svc.ListDepartments(context.Background(), managerActor(), DepartmentFilter{}, 25, 0)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected empty page, got %d items total %d", len(items), total)
	}
}

func TestListDepartmentsSelfScopeDenied(t *testing.T) {
	svc := &Service{Store: newFakeOrgStore()}
	actor := auth.Actor{ID: "u3", Role: auth.RoleUser, EmployeeID: "e1"}

	_, _, err := svc.ListDepartments(context.Background(), actor, DepartmentFilter{}, 25, 0)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestGetDepartmentOutOfScope(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["d2"] = Department{ID: "d2", Name: "Finance"}
	svc := &Service{Store: store}

	_, err := svc.GetDepartment(context.Background(), managerActor("d1"), "d2")
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCreateDepartmentValidation(t *testing.T) {
	svc := &Service{Store: newFakeOrgStore()}

	_, err := svc.CreateDepartment(context.Background(), adminActor(), Department{Name: " ", CostCenter: ""})
	v, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(v.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(v.Issues))
	}
}

func TestCreateDepartmentRequiresElevatedRole(t *testing.T) {
	svc := &Service{Store: newFakeOrgStore()}

	_, err := svc.CreateDepartment(context.Background(), managerActor("d1"), Department{Name: "Ops", CostCenter: "CC-09"})
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeleteDepartmentWithEmployees(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["d1"] = Department{ID: "d1", Name: "Engineering"}
	store.hasEmployees = true
	svc := &Service{Store: store}

	err := svc.DeleteDepartment(context.Background(), adminActor(), "d1")
	if _, ok := apperror.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := store.departments["d1"]; !ok {
		t.Fatal("department should not have been deleted")
	}
}

func TestCreatePositionValidation(t *testing.T) {
	svc := &Service{Store: newFakeOrgStore()}

	_, err := svc.CreatePosition(context.Background(), adminActor(), Position{
		Title:        "Engineer",
		DepartmentID: "d1",
		CareerLevel:  CareerLevel("Apprentice"),
		SalaryRange:  SalaryRange{Min: 5000, Max: 3000},
	})
	v, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(v.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(v.Issues))
	}
}

func TestDeletePositionInUse(t *testing.T) {
	store := newFakeOrgStore()
	store.positions["p1"] = Position{ID: "p1", Title: "Engineer", DepartmentID: "d1"}
	store.positionUsed = true
	svc := &Service{Store: store}

	err := svc.DeletePosition(context.Background(), adminActor(), "p1")
	if _, ok := apperror.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
