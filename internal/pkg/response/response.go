// Package response renders the JSON envelope every API handler replies with:
// {"success": true, "data": ...} on success and
// {"success": false, "error": {"code", "message"}} on failure. The error
// code is a stable machine-readable string (NOT_MAPPED, BLOCK_CONFLICT, ...)
// that clients branch on; the message is for humans and may change.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails adds a details payload, used by validation failures to
// carry per-field messages.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
