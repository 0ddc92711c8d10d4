package response

import (
	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/visibility"
)

// Every record leaving the service goes through the visibility policy exactly
// once, here at the response boundary.

// EstimationResponse is the role-redacted projection of an estimation.
type EstimationResponse = visibility.View

func FromEstimation(e entities.Estimation, role entities.Role) EstimationResponse {
	return visibility.Redact(e, role)
}

func FromEstimations(list []entities.Estimation, role entities.Role) []EstimationResponse {
	return visibility.RedactAll(list, role)
}

// DiscussableResponse answers the sales-side client-discussion gate.
type DiscussableResponse struct {
	EstimationID string `json:"estimation_id"`
	CanDiscuss   bool   `json:"can_discuss"`
}
