package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// remoteError is the normalized shape for failed backend operations. The
// error is logged with context and surfaced as {status, message}; the view
// layer turns it into a transient notification.
func remoteError(c *gin.Context, message string, err error) {
	log.WithError(err).WithField("path", c.FullPath()).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  http.StatusInternalServerError,
		"message": message,
	})
}
