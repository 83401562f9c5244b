package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"whoisgate/types"
	"whoisgate/utils"
)

// writeCheckError 把核心错误映射为稳定的API错误码
func writeCheckError(c *gin.Context, err error) {
	var resErr *types.ResolutionError
	if errors.As(err, &resErr) {
		utils.ErrorResponse(c, 404, "UNKNOWN_TLD", resErr.Error())
		return
	}

	var qErr *types.QueryError
	if errors.As(err, &qErr) {
		utils.ErrorResponse(c, 502, "UPSTREAM_FAILURE", qErr.Error())
		return
	}

	utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "internal server error")
}
