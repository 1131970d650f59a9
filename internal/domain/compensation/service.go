package compensation

import (
	"context"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/scope"
)

type bandStore interface {
	ListBands(ctx context.Context, filter BandFilter, limit, offset int) ([]Band, int, error)
	GetBand(ctx context.Context, id string) (Band, error)
	InsertBand(ctx context.Context, b Band) (string, error)
	UpdateBand(ctx context.Context, id string, b Band) error
	DeleteBand(ctx context.Context, id string) error
	ComparisonRows(ctx context.Context, sc scope.Scope) ([]ComparisonRow, error)
}

type Service struct {
	Store bandStore
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func validateBand(b Band) error {
	var issues []apperror.FieldIssue
	if b.PositionID == "" {
		issues = append(issues, apperror.FieldIssue{Field: "positionId", Reason: "is required"})
	}
	if !b.CareerLevel.Valid() {
		issues = append(issues, apperror.FieldIssue{Field: "careerLevel", Reason: "is not a known career level"})
	}
	if b.MinValue < 0 || b.MaxValue < b.MinValue {
		issues = append(issues, apperror.FieldIssue{Field: "minValue", Reason: "min must be >= 0 and max >= min"})
	}
	return apperror.ValidationIssues(issues)
}

func (s *Service) ListBands(ctx context.Context, actor auth.Actor, filter BandFilter, limit, offset int) ([]Band, int, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return nil, 0, err
	}
	if !sc.AllowsListing() {
		return nil, 0, apperror.ErrPermissionDenied
	}
	return s.Store.ListBands(ctx, filter, limit, offset)
}

func (s *Service) GetBand(ctx context.Context, actor auth.Actor, id string) (Band, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return Band{}, err
	}
	if !sc.AllowsListing() {
		return Band{}, apperror.ErrPermissionDenied
	}
	return s.Store.GetBand(ctx, id)
}

func (s *Service) CreateBand(ctx context.Context, actor auth.Actor, b Band) (Band, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Band{}, apperror.ErrPermissionDenied
	}
	if err := validateBand(b); err != nil {
		return Band{}, err
	}
	id, err := s.Store.InsertBand(ctx, b)
	if err != nil {
		return Band{}, err
	}
	return s.Store.GetBand(ctx, id)
}

func (s *Service) UpdateBand(ctx context.Context, actor auth.Actor, id string, b Band) (Band, error) {
	if !actor.Role.CanFinalizeMovements() {
		return Band{}, apperror.ErrPermissionDenied
	}
	if b.MinValue < 0 || b.MaxValue < b.MinValue {
		return Band{}, apperror.Validation("minValue", "min must be >= 0 and max >= min")
	}
	if err := s.Store.UpdateBand(ctx, id, b); err != nil {
		return Band{}, err
	}
	return s.Store.GetBand(ctx, id)
}

func (s *Service) DeleteBand(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Role.CanFinalizeMovements() {
		return apperror.ErrPermissionDenied
	}
	return s.Store.DeleteBand(ctx, id)
}

// FindOutOfBand runs the reconciliation over every active employee the
// actor can see.
func (s *Service) FindOutOfBand(ctx context.Context, actor auth.Actor) ([]Finding, error) {
	sc, err := scope.Resolve(actor)
	if err != nil {
		return nil, err
	}
	if !sc.AllowsListing() {
		return nil, apperror.ErrPermissionDenied
	}
	if sc.MatchesNothing() {
		return []Finding{}, nil
	}
	rows, err := s.Store.ComparisonRows(ctx, sc)
	if err != nil {
		return nil, err
	}
	return Reconcile(rows), nil
}
