package visibility

import (
	"time"

	"facility_estimation/internal/domain/entities"
)

// Redact is the single visibility policy for estimation records. Every
// response leaving the service passes through it exactly once; no other layer
// re-implements per-role field filtering.
//
// Rule table:
//   - customer: no access to estimation records at all (callers reject before
//     redaction; see CanView).
//   - sales: status, customer reference, feasibility boolean/date, lock and
//     lineage metadata. Tech effort inputs hidden. Internal pricing hidden.
//   - tech: everything sales sees, plus tech effort inputs and feasibility
//     approver. Internal pricing hidden.
//   - consultant: full view.
//
// margin_percentage, benchmark_adjustment, risk_buffer and consultant_notes
// are never present in a view produced for tech or sales, at any status.

// Pricing is the consultant-only internal pricing block.
type Pricing struct {
	InternalEstimateMin float64 `json:"internal_estimate_min"`
	InternalEstimateMax float64 `json:"internal_estimate_max"`
	MarginPercentage    float64 `json:"margin_percentage"`
	BenchmarkAdjustment float64 `json:"benchmark_adjustment"`
	RiskBuffer          float64 `json:"risk_buffer"`
	ConsultantNotes     string  `json:"consultant_notes,omitempty"`
}

// View is the role-filtered projection of an Estimation. Hidden field groups
// are nil and therefore absent from the serialized form.
type View struct {
	ID                 string `json:"id"`
	ProjectID          string `json:"project_id"`
	DesignVersionID    string `json:"design_version_id"`
	DesignVersionLabel string `json:"design_version_label"`
	PreviousVersionID  string `json:"previous_version_id,omitempty"`

	CustomerBudget entities.CustomerBudget `json:"customer_budget"`

	Status      entities.EstimationStatus `json:"status"`
	InitiatedBy string                    `json:"initiated_by"`
	InitiatedAt time.Time                 `json:"initiated_at"`

	TechInputs []entities.TechEffortInput `json:"tech_inputs,omitempty"`

	TechFeasibilityApproved bool       `json:"tech_feasibility_approved"`
	TechFeasibilityBy       string     `json:"tech_feasibility_by,omitempty"`
	TechFeasibilityAt       *time.Time `json:"tech_feasibility_at,omitempty"`

	InternalPricing *Pricing `json:"internal_pricing,omitempty"`

	ConsultantApproved   bool       `json:"consultant_approved"`
	ConsultantApprovedBy string     `json:"consultant_approved_by,omitempty"`
	ConsultantApprovedAt *time.Time `json:"consultant_approved_at,omitempty"`

	IsLocked bool       `json:"is_locked"`
	LockedBy string     `json:"locked_by,omitempty"`
	LockedAt *time.Time `json:"locked_at,omitempty"`

	ChangeReason string                 `json:"change_reason,omitempty"`
	ChangeImpact *entities.ChangeImpact `json:"change_impact,omitempty"`
}

// CanView reports whether a role may read estimation records at all.
// Customers interact with a separate design-approval flow, never with
// estimation records.
func CanView(role entities.Role) bool {
	switch role {
	case entities.RoleSales, entities.RoleTech, entities.RoleConsultant:
		return true
	}
	return false
}

// Redact builds the view of e that role is allowed to see. It is a pure
// function of its inputs; callers must have checked CanView first (an
// unviewable role gets the most restricted projection).
func Redact(e entities.Estimation, role entities.Role) View {
	v := View{
		ID:                 e.ID,
		ProjectID:          e.ProjectID,
		DesignVersionID:    e.DesignVersionID,
		DesignVersionLabel: e.DesignVersionLabel,
		PreviousVersionID:  e.PreviousVersionID,
		CustomerBudget:     e.CustomerBudget,
		Status:             e.Status,
		InitiatedBy:        e.InitiatedBy,
		InitiatedAt:        e.InitiatedAt,

		TechFeasibilityApproved: e.TechFeasibilityApproved,
		TechFeasibilityAt:       optTime(e.TechFeasibilityAt),

		ConsultantApproved:   e.ConsultantApproved,
		ConsultantApprovedBy: e.ConsultantApprovedBy,
		ConsultantApprovedAt: optTime(e.ConsultantApprovedAt),

		IsLocked: e.IsLocked,
		LockedBy: e.LockedBy,
		LockedAt: optTime(e.LockedAt),

		ChangeReason: e.ChangeReason,
		ChangeImpact: e.ChangeImpact,
	}

	if role == entities.RoleTech || role == entities.RoleConsultant {
		v.TechFeasibilityBy = e.TechFeasibilityBy
		v.TechInputs = append([]entities.TechEffortInput{}, e.TechInputs...)
	}

	if role == entities.RoleConsultant {
		v.InternalPricing = &Pricing{
			InternalEstimateMin: e.InternalEstimateMin,
			InternalEstimateMax: e.InternalEstimateMax,
			MarginPercentage:    e.MarginPercentage,
			BenchmarkAdjustment: e.BenchmarkAdjustment,
			RiskBuffer:          e.RiskBuffer,
			ConsultantNotes:     e.ConsultantNotes,
		}
	}

	return v
}

// RedactAll redacts a slice of records for one role, preserving order.
func RedactAll(list []entities.Estimation, role entities.Role) []View {
	views := make([]View, 0, len(list))
	for _, e := range list {
		views = append(views, Redact(e, role))
	}
	return views
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
