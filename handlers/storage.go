package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// allowedBuckets defines permitted buckets for media uploads.
var allowedBuckets = map[string]bool{
	"profiles": true,
	"listings": true,
}

// UploadFileHandler stores an uploaded image and returns its delivery URL.
func (h *HandlerBundle) UploadFileHandler(c *gin.Context) {
	if _, ok := authedUserID(c); !ok {
		return
	}

	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		utils.JSONError(c, http.StatusBadRequest, "invalid bucket; allowed values are 'profiles' and 'listings'", "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	// A unique temp name keeps concurrent uploads of the same client
	// filename from clobbering each other.
	tempFile, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	tempFilePath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempFilePath)

	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tempFilePath, "images/"+bucket)
	if err != nil {
		getLogger(c).Error("Failed to upload file", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload file", "")
		return
	}

	downloadURL, err := h.Storage.GetDownloadURL(c.Request.Context(), publicID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to construct download URL", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId":    publicID,
		"downloadURL": downloadURL,
	})
}

// DeleteFileHandler removes an uploaded asset by its public ID.
func (h *HandlerBundle) DeleteFileHandler(c *gin.Context) {
	if _, ok := authedUserID(c); !ok {
		return
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}

	if err := h.Storage.DeleteFile(c.Request.Context(), publicID); err != nil {
		getLogger(c).Error("Failed to delete file", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete file", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
