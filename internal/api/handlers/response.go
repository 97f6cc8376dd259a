package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/internal/services"
)

// respondError 按错误类型返回JSON错误
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if services.IsInvalidInput(err) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
