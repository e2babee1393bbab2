package http

import (
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool        `json:"success" example:"false"`
	Message string      `json:"message" example:"Error"`
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
}

type successResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Success message"`
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Success: false,
		Message: message,
	})
}

// newFailResponse is an error response that still carries data, such as the
// field errors of a rejected draft.
func newFailResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Success: false,
		Message: message,
		Data:    data,
	})
}

func newSuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
