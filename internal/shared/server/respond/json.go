package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, data)
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, data)
}

// Message writes a success envelope carrying only a message.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: true, Message: msg})
}
