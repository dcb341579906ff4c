package api

import (
	"net/http"

	"github.com/momconnect/hub/usecases"

	"github.com/gin-gonic/gin"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"up":      true,
			"version": uc.NewVersionUsecase().GetApiVersion(),
		})
	}
}
