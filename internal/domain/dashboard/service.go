package dashboard

import (
	"context"
	"time"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/compensation"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/scope"
)

type snapshotStore interface {
	EmployeeSnapshots(ctx context.Context, sc scope.Scope) ([]EmployeeSnapshot, error)
	MovementSnapshots(ctx context.Context, sc scope.Scope, since time.Time) ([]MovementSnapshot, error)
	DepartmentSnapshots(ctx context.Context, sc scope.Scope) ([]DepartmentSnapshot, error)
	PositionCount(ctx context.Context, sc scope.Scope) (int, error)
}

type reconciler interface {
	FindOutOfBand(ctx context.Context, actor auth.Actor) ([]compensation.Finding, error)
}

type Service struct {
	Store      snapshotStore
	Reconciler reconciler
	Now        func() time.Time
}

func NewService(store *Store, comp *compensation.Service) *Service {
	return &Service{Store: store, Reconciler: comp, Now: time.Now}
}

func (s *Service) resolve(actor auth.Actor) (scope.Scope, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return scope.Scope{}, err
	}
	if !sc.AllowsListing() {
		return scope.Scope{}, apperror.ErrPermissionDenied
	}
	return sc, nil
}

func (s *Service) Stats(ctx context.Context, actor auth.Actor) (Stats, error) {
	sc, err := s.resolve(actor)
	if err != nil {
		return Stats{}, err
	}
	if sc.MatchesNothing() {
		return Stats{ByStatus: map[employee.Status]int{}, RecentMovements: []MovementSnapshot{}}, nil
	}
	emps, err := s.Store.EmployeeSnapshots(ctx, sc)
	if err != nil {
		return Stats{}, err
	}
	movs, err := s.Store.MovementSnapshots(ctx, sc, s.Now().AddDate(-1, 0, 0))
	if err != nil {
		return Stats{}, err
	}
	depts, err := s.Store.DepartmentSnapshots(ctx, sc)
	if err != nil {
		return Stats{}, err
	}
	positions, err := s.Store.PositionCount(ctx, sc)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(emps, movs, len(depts), positions), nil
}

type Distributions struct {
	ByDepartment []Bucket `json:"byDepartment"`
	ByPosition   []Bucket `json:"byPosition"`
	ByWorkMode   []Bucket `json:"byWorkMode"`
	ByWorkload   []Bucket `json:"byWorkload"`
}

func (s *Service) Distributions(ctx context.Context, actor auth.Actor) (Distributions, error) {
	sc, err := s.resolve(actor)
	if err != nil {
		return Distributions{}, err
	}
	empty := Distributions{
		ByDepartment: []Bucket{},
		ByPosition:   []Bucket{},
		ByWorkMode:   []Bucket{},
		ByWorkload:   []Bucket{},
	}
	if sc.MatchesNothing() {
		return empty, nil
	}
	emps, err := s.Store.EmployeeSnapshots(ctx, sc)
	if err != nil {
		return Distributions{}, err
	}
	return Distributions{
		ByDepartment: byDepartment(emps),
		ByPosition:   byPosition(emps),
		ByWorkMode:   byWorkMode(emps),
		ByWorkload:   byWorkload(emps),
	}, nil
}

// MovementHistory reports the last `months` months of movements by
// effective date (default 12), most recent month first.
func (s *Service) MovementHistory(ctx context.Context, actor auth.Actor, months int) ([]MonthBucket, error) {
	sc, err := s.resolve(actor)
	if err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 12
	}
	now := s.Now()
	if sc.MatchesNothing() {
		return movementHistory(now, months, nil), nil
	}
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	movs, err := s.Store.MovementSnapshots(ctx, sc, since)
	if err != nil {
		return nil, err
	}
	return movementHistory(now, months, movs), nil
}

func (s *Service) SalaryAnalysis(ctx context.Context, actor auth.Actor) (SalaryAnalysis, error) {
	sc, err := s.resolve(actor)
	if err != nil {
		return SalaryAnalysis{}, err
	}
	if sc.MatchesNothing() {
		analysis := salaryAnalysis(nil)
		analysis.OutOfBand = []compensation.Finding{}
		return analysis, nil
	}
	emps, err := s.Store.EmployeeSnapshots(ctx, sc)
	if err != nil {
		return SalaryAnalysis{}, err
	}
	analysis := salaryAnalysis(emps)
	findings, err := s.Reconciler.FindOutOfBand(ctx, actor)
	if err != nil {
		return SalaryAnalysis{}, err
	}
	analysis.OutOfBand = findings
	return analysis, nil
}

func (s *Service) BudgetComparison(ctx context.Context, actor auth.Actor) ([]BudgetRow, error) {
	sc, err := s.resolve(actor)
	if err != nil {
		return nil, err
	}
	if sc.MatchesNothing() {
		return []BudgetRow{}, nil
	}
	depts, err := s.Store.DepartmentSnapshots(ctx, sc)
	if err != nil {
		return nil, err
	}
	emps, err := s.Store.EmployeeSnapshots(ctx, sc)
	if err != nil {
		return nil, err
	}
	return budgetComparison(depts, emps), nil
}
