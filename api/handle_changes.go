package api

import (
	"net/http"

	"github.com/momconnect/hub/dto"
	"github.com/momconnect/hub/usecases"

	"github.com/gin-gonic/gin"
)

func handlePostChange(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateChangeBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}

		usecase := uc.NewChangeUsecase()
		change, err := usecase.CreateChange(ctx,
			dto.AdaptCreateChangeInput(body, c.GetHeader("X-Requested-By")))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, dto.AdaptChangeDto(change))
	}
}
