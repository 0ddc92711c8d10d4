package repository

import (
	"context"
	"errors"
	"time"

	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEstimationsTableName = "estimations"
	projectIndexName            = "project_id-index"
	designVersionIndexName      = "design_version_id-index"
)

type effortItem struct {
	Category    string  `dynamodbav:"category"`
	Description string  `dynamodbav:"description"`
	Hours       float64 `dynamodbav:"hours"`
	Complexity  string  `dynamodbav:"complexity"`
	RiskFlag    bool    `dynamodbav:"risk_flag"`
	Constraints string  `dynamodbav:"constraints,omitempty"`
	SubmittedBy string  `dynamodbav:"submitted_by"`
	SubmittedAt string  `dynamodbav:"submitted_at"`
}

type changeImpactItem struct {
	CostDelta     string `dynamodbav:"cost_delta"`
	TimelineDelta string `dynamodbav:"timeline_delta"`
	Reason        string `dynamodbav:"reason,omitempty"`
}

type estimationItem struct {
	ID                 string `dynamodbav:"id"`
	ProjectID          string `dynamodbav:"project_id"`
	DesignVersionID    string `dynamodbav:"design_version_id"`
	DesignVersionLabel string `dynamodbav:"design_version_label"`
	PreviousVersionID  string `dynamodbav:"previous_version_id,omitempty"`

	BudgetRange       string `dynamodbav:"budget_range"`
	BudgetSensitivity string `dynamodbav:"budget_sensitivity"`
	BudgetPriority    string `dynamodbav:"budget_priority"`

	TechInputs []effortItem `dynamodbav:"tech_inputs,omitempty"`

	TechFeasibilityApproved bool   `dynamodbav:"tech_feasibility_approved"`
	TechFeasibilityBy       string `dynamodbav:"tech_feasibility_by,omitempty"`
	TechFeasibilityAt       string `dynamodbav:"tech_feasibility_at,omitempty"`

	InternalEstimateMin float64 `dynamodbav:"internal_estimate_min"`
	InternalEstimateMax float64 `dynamodbav:"internal_estimate_max"`
	MarginPercentage    float64 `dynamodbav:"margin_percentage"`
	BenchmarkAdjustment float64 `dynamodbav:"benchmark_adjustment"`
	RiskBuffer          float64 `dynamodbav:"risk_buffer"`
	ConsultantNotes     string  `dynamodbav:"consultant_notes,omitempty"`

	Status      string `dynamodbav:"status"`
	InitiatedBy string `dynamodbav:"initiated_by"`
	InitiatedAt string `dynamodbav:"initiated_at"`

	ConsultantApproved   bool   `dynamodbav:"consultant_approved"`
	ConsultantApprovedBy string `dynamodbav:"consultant_approved_by,omitempty"`
	ConsultantApprovedAt string `dynamodbav:"consultant_approved_at,omitempty"`

	IsLocked bool   `dynamodbav:"is_locked"`
	LockedBy string `dynamodbav:"locked_by,omitempty"`
	LockedAt string `dynamodbav:"locked_at,omitempty"`

	ChangeReason string            `dynamodbav:"change_reason,omitempty"`
	ChangeImpact *changeImpactItem `dynamodbav:"change_impact,omitempty"`

	Rev int64 `dynamodbav:"rev"`
}

// EstimationDynamoRepository persists Estimation records in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI1 (project_id-index): project_id
//   - GSI2 (design_version_id-index): design_version_id
//
// Each record is the unit of serialization: Create is conditional on the id
// not existing, and Update is a full-item compare-and-swap on the rev counter.
// Records are never deleted; a superseded estimation stays as an audit
// artifact.

type EstimationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimationRepository = (*EstimationDynamoRepository)(nil)

func NewEstimationDynamoRepository(ddb *dynamodb.Client, tableName string) *EstimationDynamoRepository {
	if tableName == "" {
		tableName = defaultEstimationsTableName
	}
	return &EstimationDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EstimationDynamoRepository) Create(ctx context.Context, e entities.Estimation) (entities.Estimation, error) {
	e.Rev = 1
	av, err := attributevalue.MarshalMap(toEstimationItem(e))
	if err != nil {
		return entities.Estimation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimation{}, nil
		}
		return entities.Estimation{}, err
	}
	return e, nil
}

func (r *EstimationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimation{}, nil
	}

	var it estimationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimation{}, err
	}
	return fromEstimationItem(it), nil
}

// Update writes the whole record with rev+1 only while the stored rev still
// matches expectedRev. A lost race comes back as the zero Estimation with no
// error; the caller re-reads and retries.
func (r *EstimationDynamoRepository) Update(ctx context.Context, e entities.Estimation, expectedRev int64) (entities.Estimation, error) {
	e.Rev = expectedRev + 1
	av, err := attributevalue.MarshalMap(toEstimationItem(e))
	if err != nil {
		return entities.Estimation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #rev = :expected_rev"),
		ExpressionAttributeNames: map[string]string{
			"#id":  "id",
			"#rev": "rev",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected_rev": &types.AttributeValueMemberN{Value: int64ToString(expectedRev)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimation{}, nil
		}
		return entities.Estimation{}, err
	}
	return e, nil
}

func (r *EstimationDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.Estimation, error) {
	return r.queryIndex(ctx, projectIndexName, "project_id", projectID)
}

func (r *EstimationDynamoRepository) ListByDesignVersionID(ctx context.Context, designVersionID string) ([]entities.Estimation, error) {
	return r.queryIndex(ctx, designVersionIndexName, "design_version_id", designVersionID)
}

func (r *EstimationDynamoRepository) queryIndex(ctx context.Context, indexName, keyAttr, keyValue string) ([]entities.Estimation, error) {
	var results []entities.Estimation
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(indexName),
			KeyConditionExpression: aws.String("#k = :v"),
			ExpressionAttributeNames: map[string]string{
				"#k": keyAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: keyValue},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		var items []estimationItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			results = append(results, fromEstimationItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return results, nil
}

func toEstimationItem(e entities.Estimation) estimationItem {
	it := estimationItem{
		ID:                 e.ID,
		ProjectID:          e.ProjectID,
		DesignVersionID:    e.DesignVersionID,
		DesignVersionLabel: e.DesignVersionLabel,
		PreviousVersionID:  e.PreviousVersionID,

		BudgetRange:       e.CustomerBudget.Range,
		BudgetSensitivity: string(e.CustomerBudget.Sensitivity),
		BudgetPriority:    string(e.CustomerBudget.Priority),

		TechFeasibilityApproved: e.TechFeasibilityApproved,
		TechFeasibilityBy:       e.TechFeasibilityBy,
		TechFeasibilityAt:       timeToString(e.TechFeasibilityAt),

		InternalEstimateMin: e.InternalEstimateMin,
		InternalEstimateMax: e.InternalEstimateMax,
		MarginPercentage:    e.MarginPercentage,
		BenchmarkAdjustment: e.BenchmarkAdjustment,
		RiskBuffer:          e.RiskBuffer,
		ConsultantNotes:     e.ConsultantNotes,

		Status:      string(e.Status),
		InitiatedBy: e.InitiatedBy,
		InitiatedAt: timeToString(e.InitiatedAt),

		ConsultantApproved:   e.ConsultantApproved,
		ConsultantApprovedBy: e.ConsultantApprovedBy,
		ConsultantApprovedAt: timeToString(e.ConsultantApprovedAt),

		IsLocked: e.IsLocked,
		LockedBy: e.LockedBy,
		LockedAt: timeToString(e.LockedAt),

		ChangeReason: e.ChangeReason,

		Rev: e.Rev,
	}

	for _, in := range e.TechInputs {
		it.TechInputs = append(it.TechInputs, effortItem{
			Category:    in.Category,
			Description: in.Description,
			Hours:       in.Hours,
			Complexity:  string(in.Complexity),
			RiskFlag:    in.RiskFlag,
			Constraints: in.Constraints,
			SubmittedBy: in.SubmittedBy,
			SubmittedAt: timeToString(in.SubmittedAt),
		})
	}

	if e.ChangeImpact != nil {
		it.ChangeImpact = &changeImpactItem{
			CostDelta:     e.ChangeImpact.CostDelta,
			TimelineDelta: e.ChangeImpact.TimelineDelta,
			Reason:        e.ChangeImpact.Reason,
		}
	}

	return it
}

func fromEstimationItem(it estimationItem) entities.Estimation {
	e := entities.Estimation{
		ID:                 it.ID,
		ProjectID:          it.ProjectID,
		DesignVersionID:    it.DesignVersionID,
		DesignVersionLabel: it.DesignVersionLabel,
		PreviousVersionID:  it.PreviousVersionID,

		CustomerBudget: entities.CustomerBudget{
			Range:       it.BudgetRange,
			Sensitivity: entities.CostSensitivity(it.BudgetSensitivity),
			Priority:    entities.Priority(it.BudgetPriority),
		},

		TechFeasibilityApproved: it.TechFeasibilityApproved,
		TechFeasibilityBy:       it.TechFeasibilityBy,
		TechFeasibilityAt:       timeFromString(it.TechFeasibilityAt),

		InternalEstimateMin: it.InternalEstimateMin,
		InternalEstimateMax: it.InternalEstimateMax,
		MarginPercentage:    it.MarginPercentage,
		BenchmarkAdjustment: it.BenchmarkAdjustment,
		RiskBuffer:          it.RiskBuffer,
		ConsultantNotes:     it.ConsultantNotes,

		Status:      entities.EstimationStatus(it.Status),
		InitiatedBy: it.InitiatedBy,
		InitiatedAt: timeFromString(it.InitiatedAt),

		ConsultantApproved:   it.ConsultantApproved,
		ConsultantApprovedBy: it.ConsultantApprovedBy,
		ConsultantApprovedAt: timeFromString(it.ConsultantApprovedAt),

		IsLocked: it.IsLocked,
		LockedBy: it.LockedBy,
		LockedAt: timeFromString(it.LockedAt),

		ChangeReason: it.ChangeReason,

		Rev: it.Rev,
	}

	for _, in := range it.TechInputs {
		e.TechInputs = append(e.TechInputs, entities.TechEffortInput{
			Category:    in.Category,
			Description: in.Description,
			Hours:       in.Hours,
			Complexity:  entities.ComplexityLevel(in.Complexity),
			RiskFlag:    in.RiskFlag,
			Constraints: in.Constraints,
			SubmittedBy: in.SubmittedBy,
			SubmittedAt: timeFromString(in.SubmittedAt),
		})
	}

	if it.ChangeImpact != nil {
		e.ChangeImpact = &entities.ChangeImpact{
			CostDelta:     it.ChangeImpact.CostDelta,
			TimelineDelta: it.ChangeImpact.TimelineDelta,
			Reason:        it.ChangeImpact.Reason,
		}
	}

	return e
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func timeFromString(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
