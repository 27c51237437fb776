package api

import (
	"net/http"

	"g38_lotto_minigame/internal/minigame/config"

	"github.com/gin-gonic/gin"
)

// RegisterVersionEndpoint 註冊版本信息端點
func RegisterVersionEndpoint(router *gin.Engine, version config.Version) {
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version)
	})
	router.GET("/api/v1/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version)
	})
}
