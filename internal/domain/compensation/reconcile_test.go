package compensation

import (
	"context"
	"errors"
	"testing"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/org"
	"hrms/internal/domain/scope"
)

func band(min, max float64) *Band {
	return &Band{ID: "b1", MinValue: min, MaxValue: max, Current: true}
}

func TestReconcileFlagsOutOfBand(t *testing.T) {
	rows := []ComparisonRow{
		{EmployeeID: "e1", EmployeeName: "Ana", Salary: 4000, EvaluationScore: 7, Band: band(5000, 8000)},
		{EmployeeID: "e2", EmployeeName: "Bia", Salary: 9000, EvaluationScore: 9, Band: band(5000, 8000)},
		{EmployeeID: "e3", EmployeeName: "Caio", Salary: 6000, EvaluationScore: 10, Band: band(5000, 8000)},
	}

	findings := Reconcile(rows)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	// Ordered by evaluation score descending.
	if findings[0].EmployeeID != "e2" || findings[1].EmployeeID != "e1" {
		t.Fatalf("unexpected order: %s, %s", findings[0].EmployeeID, findings[1].EmployeeID)
	}
	if findings[0].Direction != DirectionAbove || findings[0].Deviation != 1000 {
		t.Fatalf("e2: direction %s deviation %.0f", findings[0].Direction, findings[0].Deviation)
	}
	if findings[1].Direction != DirectionBelow || findings[1].Deviation != 1000 {
		t.Fatalf("e1: direction %s deviation %.0f", findings[1].Direction, findings[1].Deviation)
	}
	if findings[0].BandMid != 6500 {
		t.Fatalf("band mid: %.0f", findings[0].BandMid)
	}
}

func TestReconcileBoundsAreInclusive(t *testing.T) {
	rows := []ComparisonRow{
		{EmployeeID: "e1", Salary: 5000, Band: band(5000, 8000)},
		{EmployeeID: "e2", Salary: 8000, Band: band(5000, 8000)},
	}
	if findings := Reconcile(rows); len(findings) != 0 {
		t.Fatalf("salaries on the bounds must not be flagged, got %d findings", len(findings))
	}
}

func TestReconcileSkipsEmployeesWithoutBand(t *testing.T) {
	rows := []ComparisonRow{
		{EmployeeID: "e1", Salary: 100, Band: nil},
	}
	if findings := Reconcile(rows); len(findings) != 0 {
		t.Fatalf("rows without a band must be skipped, got %d findings", len(findings))
	}
}

func TestReconcileTieBreaksOnEmployeeID(t *testing.T) {
	rows := []ComparisonRow{
		{EmployeeID: "e2", Salary: 100, EvaluationScore: 5, Band: band(500, 900)},
		{EmployeeID: "e1", Salary: 100, EvaluationScore: 5, Band: band(500, 900)},
	}
	findings := Reconcile(rows)
	if findings[0].EmployeeID != "e1" {
		t.Fatalf("expected e1 first on tie, got %s", findings[0].EmployeeID)
	}
}

type fakeBandStore struct {
	bands map[string]Band
	rows  []ComparisonRow
}

func (f *fakeBandStore) ListBands(_ context.Context, _ BandFilter, _, _ int) ([]Band, int, error) {
	var out []Band
	for _, b := range f.bands {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeBandStore) GetBand(_ context.Context, id string) (Band, error) {
	b, ok := f.bands[id]
	if !ok {
		return Band{}, apperror.ErrNotFound
	}
	return b, nil
}

func (f *fakeBandStore) InsertBand(_ context.Context, b Band) (string, error) {
	b.ID = "b-new"
	b.Current = true
	if f.bands == nil {
		f.bands = map[string]Band{}
	}
	f.bands[b.ID] = b
	return b.ID, nil
}

func (f *fakeBandStore) UpdateBand(_ context.Context, id string, b Band) error {
	if _, ok := f.bands[id]; !ok {
		return apperror.ErrNotFound
	}
	b.ID = id
	f.bands[id] = b
	return nil
}

func (f *fakeBandStore) DeleteBand(_ context.Context, id string) error {
	if _, ok := f.bands[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.bands, id)
	return nil
}

func (f *fakeBandStore) ComparisonRows(_ context.Context, sc scope.Scope) ([]ComparisonRow, error) {
	var out []ComparisonRow
	for _, row := range f.rows {
		if sc.AllowsDepartment(row.DepartmentID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestFindOutOfBandScoped(t *testing.T) {
	store := &fakeBandStore{rows: []ComparisonRow{
		{EmployeeID: "e1", DepartmentID: "d1", Salary: 100, Band: band(500, 900)},
		{EmployeeID: "e2", DepartmentID: "d2", Salary: 100, Band: band(500, 900)},
	}}
	svc := &Service{Store: store}
	actor := auth.Actor{ID: "u1", Role: auth.RoleManager, ManagedDepartmentIDs: []string{"d1"}}

	findings, err := svc.FindOutOfBand(context.Background(), actor)
	if err != nil {
		t.Fatalf("FindOutOfBand: %v", err)
	}
	if len(findings) != 1 || findings[0].EmployeeID != "e1" {
		t.Fatalf("expected only the scoped finding, got %d", len(findings))
	}
}

func TestFindOutOfBandSelfScopeDenied(t *testing.T) {
	svc := &Service{Store: &fakeBandStore{}}
	actor := auth.Actor{ID: "u1", Role: auth.RoleUser, EmployeeID: "e1"}

	_, err := svc.FindOutOfBand(context.Background(), actor)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCreateBandValidation(t *testing.T) {
	svc := &Service{Store: &fakeBandStore{}}
	actor := auth.Actor{ID: "u1", Role: auth.RoleAdmin}

	_, err := svc.CreateBand(context.Background(), actor, Band{
		PositionID:  "",
		CareerLevel: org.CareerLevel("Trainee"),
		MinValue:    9000,
		MaxValue:    5000,
	})
	v, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(v.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(v.Issues))
	}
}
