package middleware

import (
	"net/http"
	"strings"

	"agentlinker/utils"

	"github.com/gin-gonic/gin"
)

// AgentAuthMiddleware authenticates dashboard requests with a bearer token
// and puts the agent ID on the context.
func AgentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		agentID, err := utils.ExtractAgentIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("agentID", agentID)
		c.Next()
	}
}

// AgentID returns the authenticated agent ID from the context.
func AgentID(c *gin.Context) string {
	return c.GetString("agentID")
}
