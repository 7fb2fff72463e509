package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) login(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	token, err := a.auth.Login(req.Email)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Only @%s emails are allowed", a.auth.AllowedDomain()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": req.Email})
}
