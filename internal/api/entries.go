package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/ai"
	"github.com/SBleeyouk/deepfake-daily/internal/auth"
	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/internal/store"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

func (a *API) listEntries(c *gin.Context) {
	f := store.Filters{
		Category: entry.Category(c.Query("category")),
		Tag:      c.Query("tag"),
	}

	entries, err := a.store.List(c.Request.Context(), f)
	if err != nil {
		a.logger.Error("Failed to list entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}
	if entries == nil {
		entries = []entry.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (a *API) listTags(c *gin.Context) {
	tags, err := a.store.AllTags(c.Request.Context())
	if err != nil {
		a.logger.Error("Failed to get tags", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, tags)
}

func (a *API) getEntry(c *gin.Context) {
	e, err := a.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		a.logger.Error("Failed to get entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (a *API) createEntry(c *gin.Context) {
	var in entry.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !in.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	in.SubmittedBy = c.GetString(auth.ContextEmailKey)

	ctx := c.Request.Context()
	if in.Title == "" {
		headline, err := a.headlines.GenerateHeadline(ctx, ai.HeadlineInput{
			Comments:      in.Comments,
			AttachmentURL: in.AttachmentURL,
			Category:      in.Category,
			Tags:          in.Tags,
		})
		if err != nil {
			a.logger.Warn("Headline generation failed, using fallback", zap.Error(err))
			headline = "Untitled Entry"
		}
		in.Title = headline
	}

	e, err := a.store.Create(ctx, in)
	if err != nil {
		a.logger.Error("Failed to create entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	a.announcer.AnnounceEntry(e)

	c.JSON(http.StatusCreated, e)
}

func (a *API) updateEntry(c *gin.Context) {
	var in entry.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Category != nil && !in.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	e, err := a.store.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		a.logger.Error("Failed to update entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	c.JSON(http.StatusOK, e)
}
