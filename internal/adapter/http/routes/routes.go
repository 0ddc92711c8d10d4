package routes

import (
	"log"
	"strconv"

	_ "facility_estimation/docs" // swag-generated API docs
	"facility_estimation/internal/adapter/http/handlers"
	"facility_estimation/internal/adapter/persistence/repository"
	"facility_estimation/internal/infrastructure/config"
	"facility_estimation/internal/infrastructure/database"
	"facility_estimation/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB(cfg)

	estimationRepo := repository.NewEstimationDynamoRepository(ddb, cfg.EstimationsTable)
	estimationUseCase := usecase.NewEstimationUseCase(estimationRepo)
	estimationHandler := handlers.NewEstimationHandler(estimationUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimationRoutes(v1, estimationHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
