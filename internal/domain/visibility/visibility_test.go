package visibility

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"facility_estimation/internal/domain/entities"
)

func sampleEstimation() entities.Estimation {
	now := time.Now().UTC()
	return entities.Estimation{
		ID:                 "est-1",
		ProjectID:          "proj-1",
		DesignVersionID:    "des-1",
		DesignVersionLabel: "v2",
		PreviousVersionID:  "est-0",
		CustomerBudget: entities.CustomerBudget{
			Range:       "$100k-150k",
			Sensitivity: entities.CostSensitivityFlexible,
			Priority:    entities.PriorityQuality,
		},
		TechInputs: []entities.TechEffortInput{
			{Category: "HVAC", Hours: 40, Complexity: entities.ComplexityMedium, SubmittedBy: "taylor", SubmittedAt: now},
		},
		TechFeasibilityApproved: true,
		TechFeasibilityBy:       "Alice",
		TechFeasibilityAt:       now,
		InternalEstimateMin:     90000,
		InternalEstimateMax:     110000,
		MarginPercentage:        20,
		BenchmarkAdjustment:     -3,
		RiskBuffer:              7.5,
		ConsultantNotes:         "subsoil risk",
		Status:                  entities.EstimationStatusConsultantReview,
		InitiatedBy:             "sam",
		InitiatedAt:             now,
		Rev:                     3,
	}
}

func TestCanView(t *testing.T) {
	if CanView(entities.RoleCustomer) {
		t.Fatalf("customer must not view estimation records")
	}
	if CanView(entities.Role("auditor")) {
		t.Fatalf("unknown roles must not view estimation records")
	}
	for _, r := range []entities.Role{entities.RoleSales, entities.RoleTech, entities.RoleConsultant} {
		if !CanView(r) {
			t.Fatalf("role %s should view estimation records", r)
		}
	}
}

func TestRedactNeverExposesPricingToTechOrSales(t *testing.T) {
	e := sampleEstimation()

	// The rule holds at every status, locked included.
	statuses := []entities.EstimationStatus{
		entities.EstimationStatusDraft,
		entities.EstimationStatusTechReview,
		entities.EstimationStatusConsultantReview,
		entities.EstimationStatusApprovedForDiscussion,
		entities.EstimationStatusLocked,
	}

	for _, role := range []entities.Role{entities.RoleTech, entities.RoleSales} {
		for _, status := range statuses {
			e.Status = status
			v := Redact(e, role)
			if v.InternalPricing != nil {
				t.Fatalf("role %s at %s sees internal pricing", role, status)
			}

			raw, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			for _, field := range []string{"margin_percentage", "benchmark_adjustment", "risk_buffer", "consultant_notes"} {
				if strings.Contains(string(raw), field) {
					t.Fatalf("role %s at %s leaks %s: %s", role, status, field, raw)
				}
			}
		}
	}
}

func TestRedactSales(t *testing.T) {
	v := Redact(sampleEstimation(), entities.RoleSales)

	if len(v.TechInputs) != 0 {
		t.Fatalf("sales must not see tech inputs")
	}
	if v.TechFeasibilityBy != "" {
		t.Fatalf("sales sees feasibility boolean/date only, got approver %q", v.TechFeasibilityBy)
	}
	if !v.TechFeasibilityApproved || v.TechFeasibilityAt == nil {
		t.Fatalf("sales must see the feasibility boolean and date")
	}
	if v.Status != entities.EstimationStatusConsultantReview || v.CustomerBudget.Range == "" {
		t.Fatalf("sales must see status and customer reference: %+v", v)
	}
	if v.PreviousVersionID != "est-0" {
		t.Fatalf("sales must see lineage metadata")
	}
}

func TestRedactTech(t *testing.T) {
	v := Redact(sampleEstimation(), entities.RoleTech)

	if len(v.TechInputs) != 1 {
		t.Fatalf("tech must see tech inputs, got %d", len(v.TechInputs))
	}
	if v.TechFeasibilityBy != "Alice" {
		t.Fatalf("tech must see the feasibility approver")
	}
	if v.InternalPricing != nil {
		t.Fatalf("tech must not see internal pricing")
	}
}

func TestRedactConsultant(t *testing.T) {
	v := Redact(sampleEstimation(), entities.RoleConsultant)

	if v.InternalPricing == nil {
		t.Fatalf("consultant must see internal pricing")
	}
	p := v.InternalPricing
	if p.InternalEstimateMin != 90000 || p.InternalEstimateMax != 110000 ||
		p.MarginPercentage != 20 || p.BenchmarkAdjustment != -3 ||
		p.RiskBuffer != 7.5 || p.ConsultantNotes != "subsoil risk" {
		t.Fatalf("unexpected pricing view: %+v", p)
	}
	if len(v.TechInputs) != 1 {
		t.Fatalf("consultant must see tech inputs")
	}
}

func TestRedactAllPreservesOrder(t *testing.T) {
	a := sampleEstimation()
	b := sampleEstimation()
	b.ID = "est-2"

	views := RedactAll([]entities.Estimation{a, b}, entities.RoleSales)
	if len(views) != 2 || views[0].ID != "est-1" || views[1].ID != "est-2" {
		t.Fatalf("unexpected views: %+v", views)
	}
}
