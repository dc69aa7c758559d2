package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope every endpoint returns. Failed
// responses carry Error and never Data.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success returns a 200 response with a payload.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessMsg returns a success response with a payload and a human message.
func SuccessMsg(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, APIResponse{Success: true, Data: data, Message: message})
}

// Message returns a success response carrying only a human message.
func Message(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, APIResponse{Success: true, Message: message})
}

// Error returns a failed response with a stable, non-leaking message.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, APIResponse{Success: false, Error: message})
}
