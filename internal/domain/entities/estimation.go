package entities

import "time"

// EstimationStatus represents the lifecycle of a facility-design estimation.
//
// Domain notes:
//   - The estimation-service is the source of truth for estimation workflow state.
//   - Statuses are strictly ordered and never regress; "locked" is terminal.
type EstimationStatus string

const (
	EstimationStatusDraft                 EstimationStatus = "draft"
	EstimationStatusTechReview            EstimationStatus = "tech_review"
	EstimationStatusConsultantReview      EstimationStatus = "consultant_review"
	EstimationStatusApprovedForDiscussion EstimationStatus = "approved_for_discussion"
	EstimationStatusLocked                EstimationStatus = "locked"
)

// statusRank orders the workflow statuses. Higher rank means further along.
var statusRank = map[EstimationStatus]int{
	EstimationStatusDraft:                 0,
	EstimationStatusTechReview:            1,
	EstimationStatusConsultantReview:      2,
	EstimationStatusApprovedForDiscussion: 3,
	EstimationStatusLocked:                4,
}

// Rank returns the position of the status in the workflow order,
// or -1 for an unknown status.
func (s EstimationStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// CostSensitivity and Priority are customer reference values captured at
// initiation and never mutated by the workflow.

type CostSensitivity string

const (
	CostSensitivityFixed    CostSensitivity = "fixed"
	CostSensitivityFlexible CostSensitivity = "flexible"
)

type Priority string

const (
	PriorityCost    Priority = "cost"
	PrioritySpeed   Priority = "speed"
	PriorityQuality Priority = "quality"
)

type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// CustomerBudget is the read-only customer reference block supplied at creation.
type CustomerBudget struct {
	Range       string          `json:"range"`
	Sensitivity CostSensitivity `json:"sensitivity"`
	Priority    Priority        `json:"priority"`
}

// TechEffortInput is one line-item technical effort entry contributed by the
// tech role. The list on the parent Estimation is append-only while unlocked.
type TechEffortInput struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Hours       float64         `json:"hours"`
	Complexity  ComplexityLevel `json:"complexity"`
	RiskFlag    bool            `json:"risk_flag,omitempty"`
	Constraints string          `json:"constraints,omitempty"`
	SubmittedBy string          `json:"submitted_by"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// ChangeImpact summarizes the expected delta when an estimation supersedes a
// locked predecessor. It is supplied by the caller, never computed.
type ChangeImpact struct {
	CostDelta     string `json:"cost_delta"`
	TimelineDelta string `json:"timeline_delta"`
	Reason        string `json:"reason,omitempty"`
}

// Estimation is the workflow record persisted in DynamoDB, one per
// (project, design-version) estimation attempt.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (project_id-index): project_id
//   - GSI2 (design_version_id-index): design_version_id
//
// Concurrency:
//   - Rev is an optimistic-concurrency counter; every mutation is a conditional
//     write against the rev it read, so per-record mutations apply as if
//     sequential.
//
type Estimation struct {
	ID                 string `json:"id"`
	ProjectID          string `json:"project_id"`
	DesignVersionID    string `json:"design_version_id"`
	DesignVersionLabel string `json:"design_version_label"`
	PreviousVersionID  string `json:"previous_version_id,omitempty"`

	CustomerBudget CustomerBudget `json:"customer_budget"`

	TechInputs []TechEffortInput `json:"tech_inputs,omitempty"`

	TechFeasibilityApproved bool      `json:"tech_feasibility_approved"`
	TechFeasibilityBy       string    `json:"tech_feasibility_by,omitempty"`
	TechFeasibilityAt       time.Time `json:"tech_feasibility_at,omitempty"`

	InternalEstimateMin float64 `json:"internal_estimate_min,omitempty"`
	InternalEstimateMax float64 `json:"internal_estimate_max,omitempty"`
	MarginPercentage    float64 `json:"margin_percentage,omitempty"`
	BenchmarkAdjustment float64 `json:"benchmark_adjustment,omitempty"`
	RiskBuffer          float64 `json:"risk_buffer,omitempty"`
	ConsultantNotes     string  `json:"consultant_notes,omitempty"`

	Status      EstimationStatus `json:"status"`
	InitiatedBy string           `json:"initiated_by"`
	InitiatedAt time.Time        `json:"initiated_at"`

	ConsultantApproved   bool      `json:"consultant_approved"`
	ConsultantApprovedBy string    `json:"consultant_approved_by,omitempty"`
	ConsultantApprovedAt time.Time `json:"consultant_approved_at,omitempty"`

	IsLocked bool      `json:"is_locked"`
	LockedAt time.Time `json:"locked_at,omitempty"`
	LockedBy string    `json:"locked_by,omitempty"`

	ChangeReason string        `json:"change_reason,omitempty"`
	ChangeImpact *ChangeImpact `json:"change_impact,omitempty"`

	Rev int64 `json:"rev"`
}
