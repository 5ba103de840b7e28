package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "v1"

type StatusHandler struct {
}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Status reports liveness and the API version for health checks.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "Available",
		"service": "learning-modules",
		"version": apiVersion,
	})
}
