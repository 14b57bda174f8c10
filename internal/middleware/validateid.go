package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContextTechnicienID holds the validated :id path parameter.
const ContextTechnicienID = "technicien_id"

// ValidateIDParam rejects requests whose :id is not a positive integer.
func ValidateIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "invalid ID",
				"message": "ID must be a positive integer",
			})
			return
		}

		c.Set(ContextTechnicienID, id)
		c.Next()
	}
}

// TechnicienID returns the id stored by ValidateIDParam.
func TechnicienID(c *gin.Context) int {
	return c.GetInt(ContextTechnicienID)
}
