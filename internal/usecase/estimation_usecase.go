package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/lineage"
	"facility_estimation/internal/domain/visibility"
	"facility_estimation/internal/domain/workflow"
	"facility_estimation/internal/usecase/interfaces"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

var (
	ErrEstimationNotFound  = errors.New("estimation not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidEstimationID = errors.New("invalid estimation id")
	ErrWriteConflict       = errors.New("write conflict")
)

// estimationIDNamespace derives deterministic record ids from caller-supplied
// idempotency keys, so a retried create hits the same PK and the conditional
// put turns the retry into a read of the first attempt's record.
var estimationIDNamespace = uuid.MustParse("7f5a1c3e-4b6d-4a82-9f0e-2d8c4b1a6e53")

const casMaxRetries = 4

// IEstimationUseCase is the workflow service façade. Every operation takes an
// explicit actor; there is no ambient identity. Role gates run before any
// transition, and timestamps are stamped here (UTC), never client-supplied.

type IEstimationUseCase interface {
	Initiate(ctx context.Context, actor entities.Actor, in workflow.InitiateInput, idempotencyKey string) (entities.Estimation, error)
	GetByID(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error)
	SubmitTechEffort(ctx context.Context, actor entities.Actor, estimationID string, effort entities.TechEffortInput) (entities.Estimation, error)
	ApproveFeasibility(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error)
	UpdateInternalEstimate(ctx context.Context, actor entities.Actor, estimationID string, patch workflow.PricingPatch) (entities.Estimation, error)
	ApproveForDiscussion(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error)
	Lock(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error)
	Supersede(ctx context.Context, actor entities.Actor, estimationID, changeReason string, impact entities.ChangeImpact, idempotencyKey string) (entities.Estimation, error)
	GetByProject(ctx context.Context, actor entities.Actor, projectID string) (entities.Estimation, error)
	GetByDesignVersion(ctx context.Context, actor entities.Actor, designVersionID string) ([]entities.Estimation, error)
	CanDiscussWithClient(ctx context.Context, actor entities.Actor, estimationID string) (bool, error)
}

type EstimationUseCase struct {
	repo interfaces.IEstimationRepository
}

var _ IEstimationUseCase = (*EstimationUseCase)(nil)

func NewEstimationUseCase(repo interfaces.IEstimationRepository) *EstimationUseCase {
	return &EstimationUseCase{repo: repo}
}

func (u *EstimationUseCase) Initiate(ctx context.Context, actor entities.Actor, in workflow.InitiateInput, idempotencyKey string) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleSales); err != nil {
		return entities.Estimation{}, err
	}

	id := newRecordID(idempotencyKey)
	e, err := workflow.Initiate(id, in, actor.Name, time.Now().UTC())
	if err != nil {
		return entities.Estimation{}, err
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		return entities.Estimation{}, err
	}
	if created.ID == "" {
		// Same idempotency key replayed; hand back the original record.
		return u.mustGet(ctx, id)
	}
	log.Printf("[estimation][usecase] initiated id=%s project_id=%s by=%s", created.ID, created.ProjectID, actor.Name)
	return created, nil
}

func (u *EstimationUseCase) GetByID(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error) {
	if err := requireViewer(actor); err != nil {
		return entities.Estimation{}, err
	}
	estimationID = strings.TrimSpace(estimationID)
	if estimationID == "" {
		return entities.Estimation{}, ErrInvalidEstimationID
	}
	return u.mustGet(ctx, estimationID)
}

func (u *EstimationUseCase) SubmitTechEffort(ctx context.Context, actor entities.Actor, estimationID string, effort entities.TechEffortInput) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleTech); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, estimationID, func(e entities.Estimation, now time.Time) (entities.Estimation, error) {
		return workflow.SubmitTechEffort(e, effort, actor.Name, now)
	})
}

func (u *EstimationUseCase) ApproveFeasibility(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleTech); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, estimationID, func(e entities.Estimation, now time.Time) (entities.Estimation, error) {
		return workflow.ApproveFeasibility(e, actor.Name, now)
	})
}

func (u *EstimationUseCase) UpdateInternalEstimate(ctx context.Context, actor entities.Actor, estimationID string, patch workflow.PricingPatch) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleConsultant); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, estimationID, func(e entities.Estimation, _ time.Time) (entities.Estimation, error) {
		return workflow.UpdateInternalEstimate(e, patch)
	})
}

func (u *EstimationUseCase) ApproveForDiscussion(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleConsultant); err != nil {
		return entities.Estimation{}, err
	}
	return u.mutate(ctx, estimationID, func(e entities.Estimation, now time.Time) (entities.Estimation, error) {
		return workflow.ApproveForDiscussion(e, actor.Name, now)
	})
}

func (u *EstimationUseCase) Lock(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleConsultant); err != nil {
		return entities.Estimation{}, err
	}
	updated, err := u.mutate(ctx, estimationID, func(e entities.Estimation, now time.Time) (entities.Estimation, error) {
		return workflow.Lock(e, actor.Name, now)
	})
	if err != nil {
		return entities.Estimation{}, err
	}
	log.Printf("[estimation][usecase] locked id=%s by=%s", updated.ID, actor.Name)
	return updated, nil
}

func (u *EstimationUseCase) Supersede(ctx context.Context, actor entities.Actor, estimationID, changeReason string, impact entities.ChangeImpact, idempotencyKey string) (entities.Estimation, error) {
	if err := requireRole(actor, entities.RoleConsultant); err != nil {
		return entities.Estimation{}, err
	}
	source, err := u.GetByID(ctx, actor, estimationID)
	if err != nil {
		return entities.Estimation{}, err
	}

	newID := newRecordID(idempotencyKey)
	if err := lineage.ValidateSupersede(source, newID); err != nil {
		return entities.Estimation{}, err
	}
	successor, err := workflow.Supersede(source, newID, changeReason, impact, actor.Name, time.Now().UTC())
	if err != nil {
		return entities.Estimation{}, err
	}

	created, err := u.repo.Create(ctx, successor)
	if err != nil {
		return entities.Estimation{}, err
	}
	if created.ID == "" {
		return u.mustGet(ctx, newID)
	}
	log.Printf("[estimation][usecase] superseded source_id=%s successor_id=%s by=%s", source.ID, created.ID, actor.Name)
	return created, nil
}

func (u *EstimationUseCase) GetByProject(ctx context.Context, actor entities.Actor, projectID string) (entities.Estimation, error) {
	if err := requireViewer(actor); err != nil {
		return entities.Estimation{}, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return entities.Estimation{}, ErrInvalidEstimationID
	}
	list, err := u.repo.ListByProjectID(ctx, projectID)
	if err != nil {
		return entities.Estimation{}, err
	}
	latest, ok := lineage.Latest(list)
	if !ok {
		return entities.Estimation{}, ErrEstimationNotFound
	}
	return latest, nil
}

func (u *EstimationUseCase) GetByDesignVersion(ctx context.Context, actor entities.Actor, designVersionID string) ([]entities.Estimation, error) {
	if err := requireViewer(actor); err != nil {
		return nil, err
	}
	designVersionID = strings.TrimSpace(designVersionID)
	if designVersionID == "" {
		return nil, ErrInvalidEstimationID
	}
	return u.repo.ListByDesignVersionID(ctx, designVersionID)
}

// CanDiscussWithClient tells sales whether an estimation may be referenced in
// client-facing pricing conversations. This is a business gate on status, not
// a field-visibility rule.
func (u *EstimationUseCase) CanDiscussWithClient(ctx context.Context, actor entities.Actor, estimationID string) (bool, error) {
	if err := requireRole(actor, entities.RoleSales); err != nil {
		return false, err
	}
	e, err := u.mustGet(ctx, strings.TrimSpace(estimationID))
	if err != nil {
		return false, err
	}
	switch e.Status {
	case entities.EstimationStatusApprovedForDiscussion, entities.EstimationStatusLocked:
		return true, nil
	}
	return false, nil
}

// mutate runs one read-transition-write cycle against a single record,
// retrying with capped exponential backoff when the conditional write loses a
// race. Domain errors abort immediately; a vanished record surfaces as
// not-found.
func (u *EstimationUseCase) mutate(
	ctx context.Context,
	estimationID string,
	transition func(e entities.Estimation, now time.Time) (entities.Estimation, error),
) (entities.Estimation, error) {
	estimationID = strings.TrimSpace(estimationID)
	if estimationID == "" {
		return entities.Estimation{}, ErrInvalidEstimationID
	}

	var result entities.Estimation
	attempt := func() error {
		current, err := u.repo.GetByID(ctx, estimationID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if current.ID == "" {
			return backoff.Permanent(ErrEstimationNotFound)
		}

		next, err := transition(current, time.Now().UTC())
		if err != nil {
			return backoff.Permanent(err)
		}

		updated, err := u.repo.Update(ctx, next, current.Rev)
		if err != nil {
			return backoff.Permanent(err)
		}
		if updated.ID == "" {
			// Lost the rev race; re-read and try the transition again.
			return ErrWriteConflict
		}
		result = updated
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), casMaxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return entities.Estimation{}, err
	}
	return result, nil
}

func (u *EstimationUseCase) mustGet(ctx context.Context, id string) (entities.Estimation, error) {
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimation{}, err
	}
	if e.ID == "" {
		return entities.Estimation{}, ErrEstimationNotFound
	}
	return e, nil
}

func requireRole(actor entities.Actor, want entities.Role) error {
	if actor.Role != want {
		return fmt.Errorf("%w: role %q cannot perform this operation", ErrForbidden, actor.Role)
	}
	return nil
}

func requireViewer(actor entities.Actor) error {
	if !visibility.CanView(actor.Role) {
		return fmt.Errorf("%w: role %q has no access to estimation records", ErrForbidden, actor.Role)
	}
	return nil
}

func newRecordID(idempotencyKey string) string {
	if k := strings.TrimSpace(idempotencyKey); k != "" {
		return uuid.NewSHA1(estimationIDNamespace, []byte(k)).String()
	}
	return uuid.NewString()
}
