package handlers

import (
	"errors"
	"net/http"

	"taproom-admin-api/config"
	"taproom-admin-api/storage"

	"github.com/gin-gonic/gin"
)

// UploadFile stores a menu image. The 1 MB cap is enforced from the declared
// size before any bytes are written.
func UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field 'file' is required"})
		return
	}

	result, err := config.Media.Save(fh, c.PostForm("folder"))
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		remoteError(c, "Failed to store file", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "File uploaded",
		"path":       result.Path,
		"public_url": result.PublicURL,
	})
}

type DeleteFileRequest struct {
	Path string `json:"path" binding:"required"`
}

// DeleteFile removes a previously uploaded file
func DeleteFile(c *gin.Context) {
	var req DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.Media.Delete(req.Path); err != nil {
		if errors.Is(err, storage.ErrBadPath) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted", "path": req.Path})
}
