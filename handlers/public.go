package handlers

import (
	"net/http"

	"taproom-admin-api/authz"
	"taproom-admin-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health is the liveness endpoint
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Taproom Admin API",
		"version": "1.0.0",
	})
}

// GetCapabilities returns the permission matrix and the order state machine
// for informational purposes
func GetCapabilities(c *gin.Context) {
	var transitions []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		transitions = append(transitions, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"roles":           authz.Matrix(),
		"order_lifecycle": transitions,
		"terminal_states": []string{"completed", "cancelled"},
	})
}
