package workflow

import (
	"fmt"
	"strings"
	"time"

	"facility_estimation/internal/domain/entities"
)

// The transition engine is the core of the estimation workflow:
//
//	draft -> tech_review -> consultant_review -> approved_for_discussion -> locked
//
// Every function takes an estimation value and returns the successor value or
// a typed error. Nothing here touches storage or the clock; the caller stamps
// time at the service boundary and persists the result atomically, so a failed
// transition never leaves a partially mutated record.

// InitiateInput carries the fields required to open a new estimation.
type InitiateInput struct {
	ProjectID          string
	DesignVersionID    string
	DesignVersionLabel string
	CustomerBudget     entities.CustomerBudget
}

// Initiate builds a fresh estimation in draft. All customer reference fields
// are required; they are read-only for the rest of the record's life.
func Initiate(id string, in InitiateInput, initiatedBy string, now time.Time) (entities.Estimation, error) {
	if err := validateInitiate(in); err != nil {
		return entities.Estimation{}, err
	}
	return entities.Estimation{
		ID:                 id,
		ProjectID:          strings.TrimSpace(in.ProjectID),
		DesignVersionID:    strings.TrimSpace(in.DesignVersionID),
		DesignVersionLabel: strings.TrimSpace(in.DesignVersionLabel),
		CustomerBudget:     in.CustomerBudget,
		Status:             entities.EstimationStatusDraft,
		InitiatedBy:        initiatedBy,
		InitiatedAt:        now,
	}, nil
}

func validateInitiate(in InitiateInput) error {
	if strings.TrimSpace(in.ProjectID) == "" {
		return fmt.Errorf("%w: project_id is required", ErrValidation)
	}
	if strings.TrimSpace(in.DesignVersionID) == "" {
		return fmt.Errorf("%w: design_version_id is required", ErrValidation)
	}
	if strings.TrimSpace(in.CustomerBudget.Range) == "" {
		return fmt.Errorf("%w: customer_budget.range is required", ErrValidation)
	}
	switch in.CustomerBudget.Sensitivity {
	case entities.CostSensitivityFixed, entities.CostSensitivityFlexible:
	default:
		return fmt.Errorf("%w: customer_budget.sensitivity must be fixed or flexible", ErrValidation)
	}
	switch in.CustomerBudget.Priority {
	case entities.PriorityCost, entities.PrioritySpeed, entities.PriorityQuality:
	default:
		return fmt.Errorf("%w: customer_budget.priority must be cost, speed or quality", ErrValidation)
	}
	return nil
}

// SubmitTechEffort appends a tech effort input. The first input moves a draft
// record into tech_review; records already at or past tech_review keep their
// status.
func SubmitTechEffort(e entities.Estimation, effort entities.TechEffortInput, submittedBy string, now time.Time) (entities.Estimation, error) {
	if e.IsLocked {
		return entities.Estimation{}, ErrLocked
	}
	if strings.TrimSpace(effort.Category) == "" {
		return entities.Estimation{}, fmt.Errorf("%w: effort.category is required", ErrValidation)
	}
	if effort.Hours <= 0 {
		return entities.Estimation{}, fmt.Errorf("%w: effort.hours must be positive", ErrValidation)
	}
	switch effort.Complexity {
	case entities.ComplexityLow, entities.ComplexityMedium, entities.ComplexityHigh:
	default:
		return entities.Estimation{}, fmt.Errorf("%w: effort.complexity must be low, medium or high", ErrValidation)
	}

	effort.SubmittedBy = submittedBy
	effort.SubmittedAt = now
	e.TechInputs = append(append([]entities.TechEffortInput{}, e.TechInputs...), effort)
	if e.Status == entities.EstimationStatusDraft {
		e.Status = entities.EstimationStatusTechReview
	}
	return e, nil
}

// ApproveFeasibility records tech sign-off and moves the record to
// consultant_review. Approval is permitted even with zero effort inputs;
// re-approving is rejected rather than silently ignored.
func ApproveFeasibility(e entities.Estimation, approverName string, now time.Time) (entities.Estimation, error) {
	if e.IsLocked {
		return entities.Estimation{}, ErrLocked
	}
	if e.TechFeasibilityApproved {
		return entities.Estimation{}, fmt.Errorf("%w: tech feasibility already approved", ErrPrecondition)
	}
	e.TechFeasibilityApproved = true
	e.TechFeasibilityBy = approverName
	e.TechFeasibilityAt = now
	e.Status = advance(e.Status, entities.EstimationStatusConsultantReview)
	return e, nil
}

// PricingPatch carries the internal pricing fields a consultant may overwrite.
// Nil fields are left untouched.
type PricingPatch struct {
	InternalEstimateMin *float64
	InternalEstimateMax *float64
	MarginPercentage    *float64
	BenchmarkAdjustment *float64
	RiskBuffer          *float64
	ConsultantNotes     *string
}

// Empty reports whether the patch carries no fields at all.
func (p PricingPatch) Empty() bool {
	return p.InternalEstimateMin == nil && p.InternalEstimateMax == nil &&
		p.MarginPercentage == nil && p.BenchmarkAdjustment == nil &&
		p.RiskBuffer == nil && p.ConsultantNotes == nil
}

// UpdateInternalEstimate overwrites only the supplied pricing fields. Status
// is never touched here.
func UpdateInternalEstimate(e entities.Estimation, patch PricingPatch) (entities.Estimation, error) {
	if e.IsLocked {
		return entities.Estimation{}, ErrLocked
	}
	if patch.Empty() {
		return entities.Estimation{}, fmt.Errorf("%w: no pricing fields supplied", ErrValidation)
	}
	if patch.InternalEstimateMin != nil {
		e.InternalEstimateMin = *patch.InternalEstimateMin
	}
	if patch.InternalEstimateMax != nil {
		e.InternalEstimateMax = *patch.InternalEstimateMax
	}
	if patch.MarginPercentage != nil {
		e.MarginPercentage = *patch.MarginPercentage
	}
	if patch.BenchmarkAdjustment != nil {
		e.BenchmarkAdjustment = *patch.BenchmarkAdjustment
	}
	if patch.RiskBuffer != nil {
		e.RiskBuffer = *patch.RiskBuffer
	}
	if patch.ConsultantNotes != nil {
		e.ConsultantNotes = *patch.ConsultantNotes
	}
	return e, nil
}

// ApproveForDiscussion records consultant sign-off, gating on prior tech
// feasibility approval. A locked record yields ErrLocked (a typed error, not
// a silent skip) and re-approving an approved record is rejected.
func ApproveForDiscussion(e entities.Estimation, approverName string, now time.Time) (entities.Estimation, error) {
	if e.IsLocked {
		return entities.Estimation{}, ErrLocked
	}
	if !e.TechFeasibilityApproved {
		return entities.Estimation{}, fmt.Errorf("%w: tech feasibility not approved", ErrPrecondition)
	}
	if e.ConsultantApproved {
		return entities.Estimation{}, fmt.Errorf("%w: consultant already approved", ErrPrecondition)
	}
	e.ConsultantApproved = true
	e.ConsultantApprovedBy = approverName
	e.ConsultantApprovedAt = now
	e.Status = advance(e.Status, entities.EstimationStatusApprovedForDiscussion)
	return e, nil
}

// Lock moves a consultant-approved record into its terminal, immutable state.
func Lock(e entities.Estimation, lockerName string, now time.Time) (entities.Estimation, error) {
	if e.IsLocked {
		return entities.Estimation{}, ErrLocked
	}
	if !e.ConsultantApproved {
		return entities.Estimation{}, fmt.Errorf("%w: consultant approval required before lock", ErrPrecondition)
	}
	e.IsLocked = true
	e.LockedBy = lockerName
	e.LockedAt = now
	e.Status = entities.EstimationStatusLocked
	return e, nil
}

// Supersede builds the successor of a locked record: customer reference and
// design linkage are copied, pricing and tech inputs start empty, and the
// back-reference is set. This is the only constructor of records carrying a
// previous_version_id.
func Supersede(source entities.Estimation, newID, changeReason string, impact entities.ChangeImpact, initiatedBy string, now time.Time) (entities.Estimation, error) {
	if !source.IsLocked {
		return entities.Estimation{}, fmt.Errorf("%w: only a locked estimation can be superseded", ErrPrecondition)
	}
	if strings.TrimSpace(changeReason) == "" {
		return entities.Estimation{}, fmt.Errorf("%w: change_reason is required", ErrValidation)
	}
	if newID == source.ID {
		return entities.Estimation{}, fmt.Errorf("%w: successor id must differ from source id", ErrValidation)
	}
	return entities.Estimation{
		ID:                 newID,
		ProjectID:          source.ProjectID,
		DesignVersionID:    source.DesignVersionID,
		DesignVersionLabel: source.DesignVersionLabel,
		PreviousVersionID:  source.ID,
		CustomerBudget:     source.CustomerBudget,
		Status:             entities.EstimationStatusDraft,
		InitiatedBy:        initiatedBy,
		InitiatedAt:        now,
		ChangeReason:       strings.TrimSpace(changeReason),
		ChangeImpact:       &impact,
	}, nil
}

// advance raises status to target, never lowering it. Status order is
// monotonic for every reachable record.
func advance(current, target entities.EstimationStatus) entities.EstimationStatus {
	if target.Rank() > current.Rank() {
		return target
	}
	return current
}
