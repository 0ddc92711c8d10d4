package request

import (
	"strings"

	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/workflow"
)

// CustomerBudgetRequest mirrors the customer reference block supplied by the
// workspace at initiation time.
type CustomerBudgetRequest struct {
	Range       string `json:"range" binding:"required"`
	Sensitivity string `json:"sensitivity" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

// InitiateEstimationRequest opens a new estimation for a (project,
// design-version) pair. Field-level validation beyond presence lives in the
// workflow engine.
type InitiateEstimationRequest struct {
	ProjectID          string                `json:"project_id" binding:"required"`
	DesignVersionID    string                `json:"design_version_id" binding:"required"`
	DesignVersionLabel string                `json:"design_version_label"`
	CustomerBudget     CustomerBudgetRequest `json:"customer_budget" binding:"required"`
}

func (r InitiateEstimationRequest) ToInput() workflow.InitiateInput {
	return workflow.InitiateInput{
		ProjectID:          strings.TrimSpace(r.ProjectID),
		DesignVersionID:    strings.TrimSpace(r.DesignVersionID),
		DesignVersionLabel: strings.TrimSpace(r.DesignVersionLabel),
		CustomerBudget: entities.CustomerBudget{
			Range:       strings.TrimSpace(r.CustomerBudget.Range),
			Sensitivity: entities.CostSensitivity(strings.TrimSpace(r.CustomerBudget.Sensitivity)),
			Priority:    entities.Priority(strings.TrimSpace(r.CustomerBudget.Priority)),
		},
	}
}

// TechEffortRequest is one line-item effort entry from the tech role.
type TechEffortRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours" binding:"required"`
	Complexity  string  `json:"complexity" binding:"required"`
	RiskFlag    bool    `json:"risk_flag"`
	Constraints string  `json:"constraints"`
}

func (r TechEffortRequest) ToEffort() entities.TechEffortInput {
	return entities.TechEffortInput{
		Category:    strings.TrimSpace(r.Category),
		Description: strings.TrimSpace(r.Description),
		Hours:       r.Hours,
		Complexity:  entities.ComplexityLevel(strings.TrimSpace(r.Complexity)),
		RiskFlag:    r.RiskFlag,
		Constraints: strings.TrimSpace(r.Constraints),
	}
}

// PricingPatchRequest carries a partial overwrite of the consultant-only
// pricing block. Absent fields stay untouched.
type PricingPatchRequest struct {
	InternalEstimateMin *float64 `json:"internal_estimate_min"`
	InternalEstimateMax *float64 `json:"internal_estimate_max"`
	MarginPercentage    *float64 `json:"margin_percentage"`
	BenchmarkAdjustment *float64 `json:"benchmark_adjustment"`
	RiskBuffer          *float64 `json:"risk_buffer"`
	ConsultantNotes     *string  `json:"consultant_notes"`
}

func (r PricingPatchRequest) ToPatch() workflow.PricingPatch {
	return workflow.PricingPatch{
		InternalEstimateMin: r.InternalEstimateMin,
		InternalEstimateMax: r.InternalEstimateMax,
		MarginPercentage:    r.MarginPercentage,
		BenchmarkAdjustment: r.BenchmarkAdjustment,
		RiskBuffer:          r.RiskBuffer,
		ConsultantNotes:     r.ConsultantNotes,
	}
}

// ChangeImpactRequest is the caller-supplied impact summary on supersede.
type ChangeImpactRequest struct {
	CostDelta     string `json:"cost_delta"`
	TimelineDelta string `json:"timeline_delta"`
	Reason        string `json:"reason"`
}

// SupersedeRequest replaces a locked estimation with a fresh draft successor.
type SupersedeRequest struct {
	ChangeReason string              `json:"change_reason" binding:"required"`
	ChangeImpact ChangeImpactRequest `json:"change_impact"`
}

func (r SupersedeRequest) ToImpact() entities.ChangeImpact {
	return entities.ChangeImpact{
		CostDelta:     strings.TrimSpace(r.ChangeImpact.CostDelta),
		TimelineDelta: strings.TrimSpace(r.ChangeImpact.TimelineDelta),
		Reason:        strings.TrimSpace(r.ChangeImpact.Reason),
	}
}
