package main

import (
	_ "facility_estimation/docs"
	"facility_estimation/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Facility Estimation Service API
// @version         1.0
// @description     Estimation workflow service (role-gated approval pipeline) backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey ActorHeaders
// @in header
// @name X-Actor-Role
// @description Actor identity headers (X-Actor-Name, X-Actor-Role) supplied by the workspace gateway.

func main() {
	routes.Run()
}
