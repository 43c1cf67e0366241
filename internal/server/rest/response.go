// Package rest exposes the plant-data service over JSON/HTTP using gin.
// Every response uses the {success, message, data} envelope.
package rest

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, JSONResponse{Success: true, Data: data})
}

// Error writes a failure envelope with the given message.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, JSONResponse{Success: false, Message: message})
}
