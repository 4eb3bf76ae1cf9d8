package response

import "github.com/gin-gonic/gin"

// The storefront client consumes flat JSON bodies (no envelope): error
// responses carry `error` (machine code) and `message` (human text),
// success bodies are endpoint-specific.

// Fail sends an error response with an error code and localized message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, gin.H{
		"error":   code,
		"message": GetMessage(code),
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"error":   code,
		"message": GetMessage(code),
		"fields":  fields,
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"error":   code,
		"message": GetMessage(code),
	})
}
