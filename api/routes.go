package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momconnect/hub/usecases"
)

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/api/metrics/", gin.WrapH(promhttp.Handler()))

	// creation only: changes are immutable through the public API, their
	// lifecycle belongs to the async pipeline
	r.POST("/api/v1/change/", handlePostChange(uc))
}
