package response

import "github.com/gin-gonic/gin"

// Error writes the flat {"error": ...} body every failure in this API uses.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// Message writes a {"message": ...} confirmation body.
func Message(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"message": message})
}
