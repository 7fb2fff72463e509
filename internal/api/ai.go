package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/ai"
	"github.com/SBleeyouk/deepfake-daily/internal/entry"
)

func (a *API) generateHeadline(c *gin.Context) {
	var req struct {
		Comments      string         `json:"comments"`
		AttachmentURL string         `json:"attachmentURL"`
		Category      entry.Category `json:"category" binding:"required"`
		Tags          []string       `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headline, err := a.headlines.GenerateHeadline(c.Request.Context(), ai.HeadlineInput{
		Comments:      req.Comments,
		AttachmentURL: req.AttachmentURL,
		Category:      req.Category,
		Tags:          req.Tags,
	})
	if err != nil {
		a.logger.Error("Headline generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate headline"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"headline": headline})
}

func (a *API) correlations(c *gin.Context) {
	graph, err := a.graphs.Graph(c.Request.Context())
	if err != nil {
		a.logger.Error("Correlation analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze correlations"})
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (a *API) refreshCorrelations(c *gin.Context) {
	a.graphs.Refresh()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}
