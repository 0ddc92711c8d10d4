package interfaces

import (
	"context"

	"facility_estimation/internal/domain/entities"
)

//go:generate mockgen -source=estimation_repository_interface.go -destination=mocks/estimation_repository_mock.go -package=mock_interfaces

// IEstimationRepository abstracts DynamoDB persistence for Estimation records.
//
// Contract:
//   - Create is conditional on the id not existing; an existing id returns the
//     zero Estimation with no error (caller decides whether that is a
//     conflict or an idempotent replay).
//   - Update is a compare-and-swap against the rev the caller read: it writes
//     the whole record with rev+1 only if the stored rev still matches, and
//     returns the zero Estimation on a lost race. This makes each record the
//     unit of serialization.
//   - GetByID uses a consistent read; list queries go through GSIs and may be
//     eventually consistent.

type IEstimationRepository interface {
	Create(ctx context.Context, e entities.Estimation) (entities.Estimation, error)
	GetByID(ctx context.Context, id string) (entities.Estimation, error)
	Update(ctx context.Context, e entities.Estimation, expectedRev int64) (entities.Estimation, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.Estimation, error)
	ListByDesignVersionID(ctx context.Context, designVersionID string) ([]entities.Estimation, error)
}
