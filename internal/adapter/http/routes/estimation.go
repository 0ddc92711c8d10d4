package routes

import (
	"facility_estimation/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimations    = "/estimations"
	PathProjects       = "/projects"
	PathDesignVersions = "/design-versions"
)

func addEstimationRoutes(rg *gin.RouterGroup, estimationHandler *handlers.EstimationHandler) {
	estimations := rg.Group(PathEstimations)
	{
		estimations.POST("", estimationHandler.InitiateEstimation)
		estimations.GET("/:id", estimationHandler.GetEstimation)
		estimations.POST("/:id/efforts", estimationHandler.SubmitTechEffort)
		estimations.PATCH("/:id/feasibility", estimationHandler.ApproveFeasibility)
		estimations.PATCH("/:id/pricing", estimationHandler.UpdateInternalEstimate)
		estimations.PATCH("/:id/approve", estimationHandler.ApproveForDiscussion)
		estimations.PATCH("/:id/lock", estimationHandler.LockEstimation)
		estimations.POST("/:id/supersede", estimationHandler.SupersedeEstimation)
		estimations.GET("/:id/discussable", estimationHandler.CanDiscussWithClient)
	}

	projects := rg.Group(PathProjects)
	{
		projects.GET("/:project_id/estimation", estimationHandler.GetEstimationByProject)
	}

	designVersions := rg.Group(PathDesignVersions)
	{
		designVersions.GET("/:design_version_id/estimations", estimationHandler.ListEstimationsByDesignVersion)
	}
}
