package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/visibility"
	"facility_estimation/internal/domain/workflow"
	mock_interfaces "facility_estimation/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var (
	salesActor      = entities.Actor{Name: "Sam", Role: entities.RoleSales}
	techActor       = entities.Actor{Name: "Alice", Role: entities.RoleTech}
	consultantActor = entities.Actor{Name: "Bob", Role: entities.RoleConsultant}
	customerActor   = entities.Actor{Name: "Casey", Role: entities.RoleCustomer}
)

func validInitiateInput() workflow.InitiateInput {
	return workflow.InitiateInput{
		ProjectID:          "proj-1",
		DesignVersionID:    "des-1",
		DesignVersionLabel: "v1",
		CustomerBudget: entities.CustomerBudget{
			Range:       "$100k-150k",
			Sensitivity: entities.CostSensitivityFlexible,
			Priority:    entities.PriorityQuality,
		},
	}
}

func validEffort() entities.TechEffortInput {
	return entities.TechEffortInput{Category: "HVAC", Hours: 40, Complexity: entities.ComplexityMedium}
}

func TestEstimationUseCase_Initiate(t *testing.T) {
	t.Run("forbidden for non-sales", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.Initiate(context.Background(), techActor, validInitiateInput(), "")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		in := validInitiateInput()
		in.ProjectID = " "
		_, err := uc.Initiate(context.Background(), salesActor, in, "")
		if !errors.Is(err, workflow.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimation{})).DoAndReturn(
			func(_ context.Context, e entities.Estimation) (entities.Estimation, error) {
				if e.ID == "" || e.Status != entities.EstimationStatusDraft || e.InitiatedBy != "Sam" {
					t.Fatalf("unexpected record: %+v", e)
				}
				if e.InitiatedAt.IsZero() {
					t.Fatalf("expected initiation timestamp")
				}
				return e, nil
			},
		)

		res, err := uc.Initiate(context.Background(), salesActor, validInitiateInput(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("idempotency key replay returns original", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		existing := entities.Estimation{ID: "deterministic", Status: entities.EstimationStatusDraft}
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Estimation{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(existing, nil)

		res, err := uc.Initiate(context.Background(), salesActor, validInitiateInput(), "retry-key-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "deterministic" {
			t.Fatalf("expected replayed record, got %+v", res)
		}
	})

	t.Run("same idempotency key derives same id", func(t *testing.T) {
		if newRecordID("key-a") != newRecordID("key-a") {
			t.Fatalf("idempotent id derivation must be deterministic")
		}
		if newRecordID("key-a") == newRecordID("key-b") {
			t.Fatalf("distinct keys must derive distinct ids")
		}
	})
}

func TestEstimationUseCase_GetByID(t *testing.T) {
	t.Run("customer has no access", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.GetByID(context.Background(), customerActor, "est-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.GetByID(context.Background(), salesActor, "  ")
		if !errors.Is(err, ErrInvalidEstimationID) {
			t.Fatalf("expected ErrInvalidEstimationID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{}, nil)

		_, err := uc.GetByID(context.Background(), salesActor, "est-1")
		if !errors.Is(err, ErrEstimationNotFound) {
			t.Fatalf("expected ErrEstimationNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1"}, nil)

		res, err := uc.GetByID(context.Background(), salesActor, " est-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "est-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestEstimationUseCase_SubmitTechEffort(t *testing.T) {
	t.Run("forbidden for sales", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.SubmitTechEffort(context.Background(), salesActor, "est-1", validEffort())
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{}, nil)

		_, err := uc.SubmitTechEffort(context.Background(), techActor, "est-1", validEffort())
		if !errors.Is(err, ErrEstimationNotFound) {
			t.Fatalf("expected ErrEstimationNotFound, got %v", err)
		}
	})

	t.Run("locked record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1", IsLocked: true}, nil)

		_, err := uc.SubmitTechEffort(context.Background(), techActor, "est-1", validEffort())
		if !errors.Is(err, workflow.ErrLocked) {
			t.Fatalf("expected ErrLocked, got %v", err)
		}
	})

	t.Run("success advances draft and bumps rev", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		current := entities.Estimation{ID: "est-1", Status: entities.EstimationStatusDraft, Rev: 3}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(current, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(3)).DoAndReturn(
			func(_ context.Context, e entities.Estimation, expectedRev int64) (entities.Estimation, error) {
				if e.Status != entities.EstimationStatusTechReview || len(e.TechInputs) != 1 {
					t.Fatalf("unexpected transition result: %+v", e)
				}
				if e.TechInputs[0].SubmittedBy != "Alice" {
					t.Fatalf("expected submitter stamp, got %+v", e.TechInputs[0])
				}
				e.Rev = expectedRev + 1
				return e, nil
			},
		)

		res, err := uc.SubmitTechEffort(context.Background(), techActor, "est-1", validEffort())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Rev != 4 {
			t.Fatalf("expected rev bump, got %d", res.Rev)
		}
	})

	t.Run("retries after losing the rev race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		first := entities.Estimation{ID: "est-1", Status: entities.EstimationStatusTechReview, Rev: 3}
		second := entities.Estimation{ID: "est-1", Status: entities.EstimationStatusTechReview, Rev: 4}

		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(first, nil),
			repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(3)).Return(entities.Estimation{}, nil),
			repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(second, nil),
			repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(4)).DoAndReturn(
				func(_ context.Context, e entities.Estimation, expectedRev int64) (entities.Estimation, error) {
					e.Rev = expectedRev + 1
					return e, nil
				},
			),
		)

		res, err := uc.SubmitTechEffort(context.Background(), techActor, "est-1", validEffort())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Rev != 5 {
			t.Fatalf("expected rev 5 after retry, got %d", res.Rev)
		}
	})
}

func TestEstimationUseCase_ApprovalGates(t *testing.T) {
	t.Run("feasibility forbidden for consultant", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.ApproveFeasibility(context.Background(), consultantActor, "est-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("discussion approval requires feasibility", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1", Status: entities.EstimationStatusTechReview, Rev: 1}, nil)

		_, err := uc.ApproveForDiscussion(context.Background(), consultantActor, "est-1")
		if !errors.Is(err, workflow.ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("locked record yields typed error, not a silent no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		locked := entities.Estimation{
			ID: "est-1", IsLocked: true, Status: entities.EstimationStatusLocked,
			TechFeasibilityApproved: true, ConsultantApproved: true, Rev: 5,
		}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(locked, nil)

		_, err := uc.ApproveForDiscussion(context.Background(), consultantActor, "est-1")
		if !errors.Is(err, workflow.ErrLocked) {
			t.Fatalf("expected ErrLocked, got %v", err)
		}
	})

	t.Run("lock requires consultant approval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1", TechFeasibilityApproved: true, Rev: 2}, nil)

		_, err := uc.Lock(context.Background(), consultantActor, "est-1")
		if !errors.Is(err, workflow.ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("pricing forbidden for tech", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		min := 90000.0
		_, err := uc.UpdateInternalEstimate(context.Background(), techActor, "est-1", workflow.PricingPatch{InternalEstimateMin: &min})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestEstimationUseCase_Supersede(t *testing.T) {
	t.Run("forbidden for tech", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.Supersede(context.Background(), techActor, "est-1", "scope change", entities.ChangeImpact{}, "")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("source must be locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1", Status: entities.EstimationStatusApprovedForDiscussion}, nil)

		_, err := uc.Supersede(context.Background(), consultantActor, "est-1", "scope change", entities.ChangeImpact{}, "")
		if !errors.Is(err, workflow.ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
	})

	t.Run("success links predecessor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		source := entities.Estimation{
			ID: "est-1", IsLocked: true, Status: entities.EstimationStatusLocked,
			ProjectID: "proj-1", DesignVersionID: "des-1",
			TechFeasibilityApproved: true, ConsultantApproved: true,
			MarginPercentage: 20,
		}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(source, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimation) (entities.Estimation, error) {
				if e.PreviousVersionID != "est-1" || e.Status != entities.EstimationStatusDraft {
					t.Fatalf("unexpected successor: %+v", e)
				}
				if e.MarginPercentage != 0 || len(e.TechInputs) != 0 {
					t.Fatalf("successor must start clean: %+v", e)
				}
				return e, nil
			},
		)

		res, err := uc.Supersede(context.Background(), consultantActor, "est-1", "scope change", entities.ChangeImpact{CostDelta: "+10%", TimelineDelta: "+1wk"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ChangeReason != "scope change" || res.ChangeImpact == nil {
			t.Fatalf("change tracking missing: %+v", res)
		}
	})
}

func TestEstimationUseCase_Queries(t *testing.T) {
	t.Run("project latest picks highest status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)

		repo.EXPECT().ListByProjectID(gomock.Any(), "proj-1").Return([]entities.Estimation{
			{ID: "old", Status: entities.EstimationStatusLocked},
			{ID: "new", Status: entities.EstimationStatusDraft, PreviousVersionID: "old", InitiatedAt: time.Now()},
		}, nil)

		got, err := uc.GetByProject(context.Background(), salesActor, "proj-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "old" {
			t.Fatalf("expected the locked record, got %s", got.ID)
		}
	})

	t.Run("project not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().ListByProjectID(gomock.Any(), "proj-1").Return(nil, nil)

		_, err := uc.GetByProject(context.Background(), salesActor, "proj-1")
		if !errors.Is(err, ErrEstimationNotFound) {
			t.Fatalf("expected ErrEstimationNotFound, got %v", err)
		}
	})

	t.Run("design version list passthrough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
		uc := NewEstimationUseCase(repo)
		repo.EXPECT().ListByDesignVersionID(gomock.Any(), "des-1").Return([]entities.Estimation{{ID: "a"}, {ID: "b"}}, nil)

		list, err := uc.GetByDesignVersion(context.Background(), techActor, "des-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 records, got %d", len(list))
		}
	})

	t.Run("customer cannot query", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		if _, err := uc.GetByProject(context.Background(), customerActor, "proj-1"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if _, err := uc.GetByDesignVersion(context.Background(), customerActor, "des-1"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestEstimationUseCase_CanDiscussWithClient(t *testing.T) {
	t.Run("forbidden for tech", func(t *testing.T) {
		uc := NewEstimationUseCase(nil)
		_, err := uc.CanDiscussWithClient(context.Background(), techActor, "est-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	cases := []struct {
		status entities.EstimationStatus
		want   bool
	}{
		{entities.EstimationStatusDraft, false},
		{entities.EstimationStatusTechReview, false},
		{entities.EstimationStatusConsultantReview, false},
		{entities.EstimationStatusApprovedForDiscussion, true},
		{entities.EstimationStatusLocked, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIEstimationRepository(ctrl)
			uc := NewEstimationUseCase(repo)
			repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimation{ID: "est-1", Status: tc.status}, nil)

			got, err := uc.CanDiscussWithClient(context.Background(), salesActor, "est-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("status %s: expected %v, got %v", tc.status, tc.want, got)
			}
		})
	}
}

// fakeEstimationRepo is a stateful in-memory repository for end-to-end flow
// tests. It honors the same Create/Update contract as the DynamoDB
// implementation.
type fakeEstimationRepo struct {
	mu      sync.Mutex
	records map[string]entities.Estimation
}

func newFakeEstimationRepo() *fakeEstimationRepo {
	return &fakeEstimationRepo{records: make(map[string]entities.Estimation)}
}

func (f *fakeEstimationRepo) Create(_ context.Context, e entities.Estimation) (entities.Estimation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[e.ID]; exists {
		return entities.Estimation{}, nil
	}
	e.Rev = 1
	f.records[e.ID] = e
	return e, nil
}

func (f *fakeEstimationRepo) GetByID(_ context.Context, id string) (entities.Estimation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id], nil
}

func (f *fakeEstimationRepo) Update(_ context.Context, e entities.Estimation, expectedRev int64) (entities.Estimation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, exists := f.records[e.ID]
	if !exists || stored.Rev != expectedRev {
		return entities.Estimation{}, nil
	}
	e.Rev = expectedRev + 1
	f.records[e.ID] = e
	return e, nil
}

func (f *fakeEstimationRepo) ListByProjectID(_ context.Context, projectID string) ([]entities.Estimation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Estimation
	for _, e := range f.records {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEstimationRepo) ListByDesignVersionID(_ context.Context, designVersionID string) ([]entities.Estimation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Estimation
	for _, e := range f.records {
		if e.DesignVersionID == designVersionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// TestEstimationWorkflowEndToEnd drives one record through the whole
// pipeline: initiation, effort capture, feasibility, pricing, approval, lock
// and supersede.
func TestEstimationWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEstimationRepo()
	uc := NewEstimationUseCase(repo)

	// 1. Sales initiates.
	e, err := uc.Initiate(ctx, salesActor, validInitiateInput(), "")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if e.Status != entities.EstimationStatusDraft || e.IsLocked {
		t.Fatalf("expected unlocked draft, got %+v", e)
	}

	// 2. First tech effort advances to tech_review; second one does not move it.
	e, err = uc.SubmitTechEffort(ctx, techActor, e.ID, validEffort())
	if err != nil {
		t.Fatalf("submit effort: %v", err)
	}
	if e.Status != entities.EstimationStatusTechReview {
		t.Fatalf("expected tech_review, got %s", e.Status)
	}
	e, err = uc.SubmitTechEffort(ctx, techActor, e.ID, validEffort())
	if err != nil {
		t.Fatalf("submit second effort: %v", err)
	}
	if e.Status != entities.EstimationStatusTechReview || len(e.TechInputs) != 2 {
		t.Fatalf("expected stable tech_review with 2 inputs, got %+v", e)
	}

	// 3. Tech approves feasibility.
	e, err = uc.ApproveFeasibility(ctx, techActor, e.ID)
	if err != nil {
		t.Fatalf("approve feasibility: %v", err)
	}
	if !e.TechFeasibilityApproved || e.Status != entities.EstimationStatusConsultantReview {
		t.Fatalf("expected consultant_review, got %+v", e)
	}

	// 4. Consultant prices; a sales read must not see the margin.
	min, max, margin := 90000.0, 110000.0, 20.0
	e, err = uc.UpdateInternalEstimate(ctx, consultantActor, e.ID, workflow.PricingPatch{
		InternalEstimateMin: &min,
		InternalEstimateMax: &max,
		MarginPercentage:    &margin,
	})
	if err != nil {
		t.Fatalf("update pricing: %v", err)
	}
	if e.Status != entities.EstimationStatusConsultantReview {
		t.Fatalf("pricing update changed status to %s", e.Status)
	}
	salesRead, err := uc.GetByID(ctx, salesActor, e.ID)
	if err != nil {
		t.Fatalf("sales read: %v", err)
	}
	if view := visibility.Redact(salesRead, salesActor.Role); view.InternalPricing != nil {
		t.Fatalf("sales view leaks internal pricing")
	}

	// 5. Consultant approves for discussion; the sales gate opens.
	before, err := uc.CanDiscussWithClient(ctx, salesActor, e.ID)
	if err != nil || before {
		t.Fatalf("gate should be closed before approval (got %v, err %v)", before, err)
	}
	e, err = uc.ApproveForDiscussion(ctx, consultantActor, e.ID)
	if err != nil {
		t.Fatalf("approve for discussion: %v", err)
	}
	if !e.ConsultantApproved || e.Status != entities.EstimationStatusApprovedForDiscussion {
		t.Fatalf("unexpected record after approval: %+v", e)
	}
	after, err := uc.CanDiscussWithClient(ctx, salesActor, e.ID)
	if err != nil || !after {
		t.Fatalf("gate should be open after approval (got %v, err %v)", after, err)
	}

	// 6. Lock, then verify immutability.
	e, err = uc.Lock(ctx, consultantActor, e.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !e.IsLocked || e.Status != entities.EstimationStatusLocked {
		t.Fatalf("unexpected record after lock: %+v", e)
	}

	frozen, _ := repo.GetByID(ctx, e.ID)
	if _, err := uc.UpdateInternalEstimate(ctx, consultantActor, e.ID, workflow.PricingPatch{MarginPercentage: &margin}); !errors.Is(err, workflow.ErrLocked) {
		t.Fatalf("expected ErrLocked on pricing after lock, got %v", err)
	}
	if _, err := uc.SubmitTechEffort(ctx, techActor, e.ID, validEffort()); !errors.Is(err, workflow.ErrLocked) {
		t.Fatalf("expected ErrLocked on effort after lock, got %v", err)
	}
	unchanged, _ := repo.GetByID(ctx, e.ID)
	if unchanged.Rev != frozen.Rev || len(unchanged.TechInputs) != len(frozen.TechInputs) {
		t.Fatalf("locked record mutated: before=%+v after=%+v", frozen, unchanged)
	}

	// 7. Supersede starts the next cycle.
	successor, err := uc.Supersede(ctx, consultantActor, e.ID, "scope change", entities.ChangeImpact{CostDelta: "+10%", TimelineDelta: "+1wk"}, "")
	if err != nil {
		t.Fatalf("supersede: %v", err)
	}
	if successor.PreviousVersionID != e.ID || successor.Status != entities.EstimationStatusDraft {
		t.Fatalf("unexpected successor: %+v", successor)
	}
	if successor.MarginPercentage != 0 || len(successor.TechInputs) != 0 {
		t.Fatalf("successor must start clean: %+v", successor)
	}

	// The project query now returns the locked predecessor (highest status).
	latest, err := uc.GetByProject(ctx, salesActor, "proj-1")
	if err != nil {
		t.Fatalf("get by project: %v", err)
	}
	if latest.ID != e.ID {
		t.Fatalf("expected locked record as latest, got %s", latest.ID)
	}

	// Both records remain queryable by design version.
	all, err := uc.GetByDesignVersion(ctx, consultantActor, "des-1")
	if err != nil {
		t.Fatalf("get by design version: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
}
