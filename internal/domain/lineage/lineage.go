package lineage

import (
	"fmt"

	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/workflow"
)

// Lineage helpers over estimation snapshots. These are pure functions; lineage
// walking is never implicit in queries — callers follow previous_version_id
// themselves when they need full history.

// Latest picks the most relevant record for a project: highest status rank
// first, newest initiation time as the tie-breaker. Returns false when the
// list is empty.
func Latest(list []entities.Estimation) (entities.Estimation, bool) {
	if len(list) == 0 {
		return entities.Estimation{}, false
	}
	best := list[0]
	for _, e := range list[1:] {
		if e.Status.Rank() > best.Status.Rank() {
			best = e
			continue
		}
		if e.Status.Rank() == best.Status.Rank() && e.InitiatedAt.After(best.InitiatedAt) {
			best = e
		}
	}
	return best, true
}

// ValidateSupersede checks that source may act as the predecessor of a new
// record: it must be locked and must not already sit behind the candidate id
// (a chain never forms a cycle).
func ValidateSupersede(source entities.Estimation, successorID string) error {
	if !source.IsLocked {
		return fmt.Errorf("%w: only a locked estimation can be superseded", workflow.ErrPrecondition)
	}
	if successorID == source.ID || successorID == source.PreviousVersionID {
		return fmt.Errorf("%w: successor id would form a lineage cycle", workflow.ErrValidation)
	}
	return nil
}
