package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeSystemError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
