package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleTestGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend is working!"})
}

// handleTestPost echoes any JSON document back.
func (s *Server) handleTestPost(c *gin.Context) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": body, "message": "Data received successfully"})
}
