package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
)

const healthTimeout = 2 * time.Second

func HealthCheck(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), healthTimeout); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "Database is unreachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "VIP CRM is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
