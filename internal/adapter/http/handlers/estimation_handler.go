package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	request "facility_estimation/internal/adapter/http/dto/request"
	response "facility_estimation/internal/adapter/http/dto/response"
	"facility_estimation/internal/domain/entities"
	"facility_estimation/internal/domain/workflow"
	"facility_estimation/internal/usecase"
	"facility_estimation/pkg"

	"github.com/gin-gonic/gin"
)

const (
	headerActorName      = "X-Actor-Name"
	headerActorRole      = "X-Actor-Role"
	headerIdempotencyKey = "Idempotency-Key"
)

var (
	errInvalidEstimationPayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATION_INPUT", "Invalid estimation payload", http.StatusBadRequest)
	errMissingActor             = pkg.NewDomainErrorSimple("MISSING_ACTOR", "X-Actor-Name and X-Actor-Role headers are required", http.StatusBadRequest)
)

// EstimationHandler exposes the estimation workflow over HTTP. Actor identity
// arrives on every request via X-Actor-Name / X-Actor-Role, supplied by the
// workspace gateway in front of this service.

type EstimationHandler struct {
	usecase usecase.IEstimationUseCase
}

func NewEstimationHandler(uc usecase.IEstimationUseCase) *EstimationHandler {
	return &EstimationHandler{usecase: uc}
}

// InitiateEstimation opens a new estimation record in draft (sales only).
func (h *EstimationHandler) InitiateEstimation(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	var payload request.InitiateEstimationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimationPayload.HTTPStatus, errInvalidEstimationPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.Initiate(c.Request.Context(), actor, payload.ToInput(), c.GetHeader(headerIdempotencyKey))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimation(e, actor.Role))
}

// GetEstimation returns a single record, redacted for the caller's role.
func (h *EstimationHandler) GetEstimation(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	e, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimation(e, actor.Role))
}

// SubmitTechEffort appends one effort line item (tech only). The first input
// moves a draft record into tech_review.
func (h *EstimationHandler) SubmitTechEffort(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	var payload request.TechEffortRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimationPayload.HTTPStatus, errInvalidEstimationPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.SubmitTechEffort(c.Request.Context(), actor, c.Param("id"), payload.ToEffort())
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimation(e, actor.Role))
}

// ApproveFeasibility records tech sign-off (tech only).
func (h *EstimationHandler) ApproveFeasibility(c *gin.Context) {
	h.patchEstimation(c, h.usecase.ApproveFeasibility)
}

// ApproveForDiscussion records consultant sign-off (consultant only).
func (h *EstimationHandler) ApproveForDiscussion(c *gin.Context) {
	h.patchEstimation(c, h.usecase.ApproveForDiscussion)
}

// LockEstimation finalizes a consultant-approved record (consultant only).
func (h *EstimationHandler) LockEstimation(c *gin.Context) {
	h.patchEstimation(c, h.usecase.Lock)
}

// UpdateInternalEstimate patches the consultant-only pricing block.
func (h *EstimationHandler) UpdateInternalEstimate(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	var payload request.PricingPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimationPayload.HTTPStatus, errInvalidEstimationPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.UpdateInternalEstimate(c.Request.Context(), actor, c.Param("id"), payload.ToPatch())
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimation(e, actor.Role))
}

// SupersedeEstimation creates the draft successor of a locked record
// (consultant only).
func (h *EstimationHandler) SupersedeEstimation(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	var payload request.SupersedeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimationPayload.HTTPStatus, errInvalidEstimationPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.Supersede(c.Request.Context(), actor, c.Param("id"), payload.ChangeReason, payload.ToImpact(), c.GetHeader(headerIdempotencyKey))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[estimation][handler] superseded source_id=%s successor_id=%s", c.Param("id"), e.ID)
	c.JSON(http.StatusCreated, response.FromEstimation(e, actor.Role))
}

// GetEstimationByProject returns the most recent record for a project.
func (h *EstimationHandler) GetEstimationByProject(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	e, err := h.usecase.GetByProject(c.Request.Context(), actor, c.Param("project_id"))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimation(e, actor.Role))
}

// ListEstimationsByDesignVersion returns every record for a design version.
func (h *EstimationHandler) ListEstimationsByDesignVersion(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	list, err := h.usecase.GetByDesignVersion(c.Request.Context(), actor, c.Param("design_version_id"))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimations(list, actor.Role))
}

// CanDiscussWithClient answers the sales-side client-discussion gate.
func (h *EstimationHandler) CanDiscussWithClient(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	discussable, err := h.usecase.CanDiscussWithClient(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.DiscussableResponse{
		EstimationID: c.Param("id"),
		CanDiscuss:   discussable,
	})
}

func (h *EstimationHandler) patchEstimation(
	c *gin.Context,
	op func(ctx context.Context, actor entities.Actor, estimationID string) (entities.Estimation, error),
) {
	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	e, err := op(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapEstimationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimation(e, actor.Role))
}

func actorFromRequest(c *gin.Context) (entities.Actor, bool) {
	name := strings.TrimSpace(c.GetHeader(headerActorName))
	role := entities.Role(strings.TrimSpace(c.GetHeader(headerActorRole)))
	if name == "" || role == "" {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return entities.Actor{}, false
	}
	if !entities.KnownRole(role) {
		appErr := pkg.NewDomainErrorSimple("UNKNOWN_ROLE", "Unknown actor role", http.StatusForbidden)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return entities.Actor{}, false
	}
	return entities.Actor{Name: name, Role: role}, true
}

func mapEstimationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, workflow.ErrValidation), errors.Is(err, usecase.ErrInvalidEstimationID):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor role lacks permission for this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrEstimationNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATION_NOT_FOUND", "Estimation not found", http.StatusNotFound)
	case errors.Is(err, workflow.ErrLocked):
		return pkg.NewDomainErrorSimple("ESTIMATION_LOCKED", "Estimation is locked; supersede it instead", http.StatusConflict)
	case errors.Is(err, workflow.ErrPrecondition):
		return pkg.NewDomainError("PRECONDITION_FAILED", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrWriteConflict):
		return pkg.NewDomainErrorSimple("WRITE_CONFLICT", "Concurrent update detected, retry the request", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
