package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/upload"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

func (a *API) uploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	url, err := a.saver.Save(c, file)
	if err != nil {
		if _, ok := err.(*errors.ErrUploadTooLarge); ok {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		a.logger.Error("Failed to save upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "filename": file.Filename})
}

func (a *API) extractThumbnail(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	thumbnailURL, err := upload.ExtractThumbnail(c.Request.Context(), req.URL)
	if err != nil {
		// Pages without reachable metadata are common; treat as no thumbnail.
		a.logger.Warn("Thumbnail extraction failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"thumbnailUrl": ""})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thumbnailUrl": thumbnailURL})
}
